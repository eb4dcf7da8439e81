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

import "encoding/binary"

// These constants describe the tiny synthetic card geometry shared by
// this package's tests: 512-byte pages, two pages per cluster (1024-byte
// clusters, 256 FAT entries per cluster), one indirect FAT cluster
// pointing at one FAT cluster, a data area starting at cluster 3.
const (
	testPageLen     = 512
	testSpareSize   = (testPageLen / 128) * 4
	testRawPageLen  = testPageLen + testSpareSize
	testPagesPerClu = 2
	testClusterSize = testPageLen * testPagesPerClu
	testE           = testClusterSize / 4
	testAllocOffset = 3
	testIFCCluster  = 1
	testFATCluster  = 2
)

func putLE32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

// buildTestImage assembles a minimal but fully valid raw card image with
// a root directory containing the given entries (512 bytes each, caller
// supplied) and the data clusters referenced by those entries already
// placed at their physical location.
//
// clusterData maps absolute (physical) cluster number -> logical
// (non-spare) cluster bytes; clusterData entries are zero-padded to
// clusterSize. fatOverrides maps relative cluster number -> raw FAT
// dword, letting tests wire up chains spanning more than one cluster —
// the FAT itself is always indexed and walked in relative cluster
// space, exactly as entry.Cluster and SuperBlock.RootdirCluster are;
// sb.AllocOffset is added only when a relative cluster number is
// translated into a physical page read.
func buildTestImage(numClusters int, rootDirClusterData []byte, clusterData map[int][]byte, fatOverrides map[int]uint32) []byte {
	raw := make([]byte, testRawPageLen*testPagesPerClu*numClusters)

	writeCluster := func(idx int, logical []byte) {
		base := idx * testPagesPerClu * testRawPageLen
		for p := 0; p < testPagesPerClu; p++ {
			srcOff := p * testPageLen
			dstOff := base + p*testRawPageLen
			end := srcOff + testPageLen
			if end > len(logical) {
				end = len(logical)
			}
			if srcOff < len(logical) {
				copy(raw[dstOff:], logical[srcOff:end])
			}
		}
	}

	// cluster 0: superblock
	sbBuf := make([]byte, testClusterSize)
	copy(sbBuf, []byte(superBlockMagic))
	// Version field follows at offset 28, left zero.
	putLE32r := func(off int, v uint32) { binary.LittleEndian.PutUint32(sbBuf[off:], v) }
	putLE16 := func(off int, v uint16) { binary.LittleEndian.PutUint16(sbBuf[off:], v) }
	putLE16(40, testPageLen)        // PageLen
	putLE16(42, testPagesPerClu)    // PagesPerCluster
	putLE16(44, 16)                 // PagesPerBlock
	putLE32r(48, uint32(numClusters)) // ClustersPerCard
	putLE32r(52, testAllocOffset)    // AllocOffset
	putLE32r(56, uint32(numClusters)) // AllocEnd
	putLE32r(60, 0)                  // RootdirCluster (relative)
	// IFCList starts at offset 80
	putLE32r(80, testIFCCluster)
	writeCluster(0, sbBuf)

	// cluster 1: indirect FAT cluster -> points to FAT cluster 2
	ifcBuf := make([]byte, testClusterSize)
	putLE32(ifcBuf, 0, testFATCluster)
	writeCluster(1, ifcBuf)

	// cluster 2: FAT cluster, one dword per relative cluster 0..E-1
	fatBuf := make([]byte, testClusterSize)
	for i := 0; i < numClusters; i++ {
		putLE32(fatBuf, i*4, 0xFFFFFFFF) // default: end-of-chain/free
	}
	for idx, v := range fatOverrides {
		putLE32(fatBuf, idx*4, v)
	}
	writeCluster(2, fatBuf)

	// cluster 3 (absolute): root directory
	rootBuf := make([]byte, testClusterSize)
	copy(rootBuf, rootDirClusterData)
	writeCluster(testAllocOffset, rootBuf)

	for idx, data := range clusterData {
		buf := make([]byte, testClusterSize)
		copy(buf, data)
		writeCluster(idx, buf)
	}

	return raw
}
