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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawSuperBlockSize(t *testing.T) {
	assert.Equal(t, superBlockSize, int(unsafe.Sizeof(rawSuperBlock{})))
}

func TestParseSuperBlock(t *testing.T) {
	img := buildTestImage(8, nil, nil, nil)

	sb, err := parseSuperBlock(img)
	require.NoError(t, err)

	assert.Equal(t, uint16(testPageLen), sb.PageLen)
	assert.Equal(t, uint16(testPagesPerClu), sb.PagesPerCluster)
	assert.Equal(t, uint32(testAllocOffset), sb.AllocOffset)
	assert.Equal(t, uint32(0), sb.RootdirCluster)
	assert.Equal(t, []uint32{testIFCCluster}, sb.IFCList)
	assert.Equal(t, uint32(testSpareSize), sb.SpareSize)
	assert.Equal(t, uint32(testRawPageLen), sb.RawPageSize)
	assert.Equal(t, uint32(testClusterSize), sb.ClusterSize)
	assert.Equal(t, uint32(testE), sb.FatEntriesPerCluster)
}

func TestParseSuperBlockRejectsShortBuffer(t *testing.T) {
	_, err := parseSuperBlock(make([]byte, 10))
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestParseSuperBlockRejectsBadMagic(t *testing.T) {
	buf := make([]byte, superBlockSize)
	copy(buf, []byte("not a memory card at all...."))
	_, err := parseSuperBlock(buf)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}
