// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package ps2fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestCard builds a CardHandle directly over raw bytes, bypassing
// loadImage's file/mmap handling — only the on-disk decoding is under
// test here.
func openTestCard(t *testing.T, raw []byte) *CardHandle {
	t.Helper()
	sb, err := parseSuperBlock(raw)
	require.NoError(t, err)
	pr := newPageReader(raw, sb)
	fat, err := buildFatTable(pr, sb)
	require.NoError(t, err)
	return &CardHandle{
		img: &image{data: raw},
		sb:  sb,
		pr:  pr,
		fat: fat,
		dir: newDirReader(pr, fat, sb),
		fr:  newFileReader(pr, fat, sb),
	}
}

// rootDirWithOneChild builds a root directory cluster holding the
// mandatory self "." record (whose Length counts itself plus its real
// children, per findSubEntries' cap) followed by a single child entry.
func rootDirWithOneChild(childMode uint16, childLength, childCluster uint32, childName string) []byte {
	root := make([]byte, testClusterSize)
	copy(root[0:entrySize], makeEntryBytes(modeExists|modeDirectory, 2, 0, "."))
	copy(root[entrySize:2*entrySize], makeEntryBytes(childMode, childLength, childCluster, childName))
	return root
}

func buildSingleFileCard(t *testing.T) *CardHandle {
	t.Helper()
	root := rootDirWithOneChild(modeExists|modeFile, 5, 1, "HELLO.TXT")

	raw := buildTestImage(8, root, map[int][]byte{
		4: []byte("HELLO"),
	}, nil)
	return openTestCard(t, raw)
}

func TestCardListRootAndReadFile(t *testing.T) {
	c := buildSingleFileCard(t)

	entries, err := c.ListRoot()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "HELLO.TXT", entries[0].Name)

	data, err := c.ReadFile("HELLO.TXT")
	require.NoError(t, err)
	assert.Equal(t, []byte("HELLO"), data)
}

func TestCardLookupMissingEntry(t *testing.T) {
	c := buildSingleFileCard(t)
	_, err := c.Lookup("NOPE.TXT")
	require.Error(t, err)
	assert.True(t, IsLookupError(err))
}

func TestCardReadFileTruncatesToDeclaredLength(t *testing.T) {
	// Declares a 3-byte file backed by a cluster with more data than that.
	root := rootDirWithOneChild(modeExists|modeFile, 3, 1, "SHORT.TXT")
	raw := buildTestImage(8, root, map[int][]byte{
		4: []byte("HELLO"),
	}, nil)
	c := openTestCard(t, raw)

	data, err := c.ReadFile("SHORT.TXT")
	require.NoError(t, err)
	assert.Equal(t, []byte("HEL"), data)
}

func TestCardExport(t *testing.T) {
	c := buildSingleFileCard(t)
	dest := t.TempDir()

	var progressed []string
	err := c.Export("HELLO.TXT", dest, func(name string, n int) {
		progressed = append(progressed, name)
		assert.Equal(t, 5, n)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"HELLO.TXT"}, progressed)

	out, err := os.ReadFile(filepath.Join(dest, "HELLO.TXT"))
	require.NoError(t, err)
	assert.Equal(t, []byte("HELLO"), out)
}

func TestCardListAll(t *testing.T) {
	c := buildSingleFileCard(t)
	all, err := c.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/HELLO.TXT", all[0].Name)
}

// TestCardMultiClusterRootAndFile exercises a root directory and a file
// that each span more than one cluster — the case a purely
// absolute-indexed FAT walk gets wrong, since two entries per cluster
// (clusterSize/entrySize) is already enough for a real card's root to
// outgrow a single cluster. Root: cluster 0 holds "." + FIRST.TXT,
// chained to cluster 1 holding SECOND.TXT + BIG.FILE. BIG.FILE's data
// itself spans clusters 4 and 5.
func TestCardMultiClusterRootAndFile(t *testing.T) {
	root := make([]byte, testClusterSize)
	copy(root[0:entrySize], makeEntryBytes(modeExists|modeDirectory, 4, 0, "."))
	copy(root[entrySize:2*entrySize], makeEntryBytes(modeExists|modeFile, 5, 2, "FIRST.TXT"))

	secondRootCluster := make([]byte, testClusterSize)
	copy(secondRootCluster[0:entrySize], makeEntryBytes(modeExists|modeFile, 6, 3, "SECOND.TXT"))
	copy(secondRootCluster[entrySize:2*entrySize], makeEntryBytes(modeExists|modeFile, 1524, 4, "BIG.FILE"))

	fatOverrides := map[int]uint32{
		0: fatAllocatedBit | 1,           // root cluster 0 -> root cluster 1
		1: fatAllocatedBit | fatChainEnd, // root cluster 1 ends
		2: fatAllocatedBit | fatChainEnd, // FIRST.TXT: single cluster
		3: fatAllocatedBit | fatChainEnd, // SECOND.TXT: single cluster
		4: fatAllocatedBit | 5,           // BIG.FILE cluster 0 -> cluster 1
		5: fatAllocatedBit | fatChainEnd, // BIG.FILE cluster 1 ends
	}

	raw := buildTestImage(10, root, map[int][]byte{
		testAllocOffset + 1: secondRootCluster,                  // relative cluster 1
		testAllocOffset + 2: []byte("FIRST"),                    // relative cluster 2
		testAllocOffset + 3: []byte("SECOND"),                   // relative cluster 3
		testAllocOffset + 4: bytesRepeat('A', testClusterSize),  // relative cluster 4
		testAllocOffset + 5: bytesRepeat('B', 500),              // relative cluster 5
	}, fatOverrides)
	c := openTestCard(t, raw)

	entries, err := c.ListRoot()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	assert.Equal(t, []string{"FIRST.TXT", "SECOND.TXT", "BIG.FILE"}, names)

	first, err := c.ReadFile("FIRST.TXT")
	require.NoError(t, err)
	assert.Equal(t, []byte("FIRST"), first)

	second, err := c.ReadFile("SECOND.TXT")
	require.NoError(t, err)
	assert.Equal(t, []byte("SECOND"), second)

	big, err := c.ReadFile("BIG.FILE")
	require.NoError(t, err)
	require.Len(t, big, 1524)
	assert.Equal(t, bytesRepeat('A', testClusterSize), big[:testClusterSize])
	assert.Equal(t, bytesRepeat('B', 500), big[testClusterSize:])
}

func bytesRepeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
