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

const (
	fatAllocatedBit uint32 = 0x80000000
	fatUnallocated  uint32 = 0xFFFFFFFF
	fatChainEnd     uint32 = 0x7FFFFFFF

	// maxChainLength bounds cluster-chain walks so a corrupt or
	// maliciously looped FAT can't hang a read.
	maxChainLength = 1 << 20
)

// fatTable is the fully materialized cluster-allocation table, kept as
// the same two-level structure the reference decoder walks directly:
// a list of FAT clusters, each holding E raw dwords. Looking up cluster
// n means indexing fat[(n / E) mod E][n mod E] — the outer modulo is
// only ever visible on the very largest card geometries, where the
// indirect-FAT page itself has exactly E slots and wraps.
type fatTable struct {
	clusters [][]uint32 // clusters[i][j], each inner slice has e entries
	e        uint32
}

// buildFatTable reads every indirect-FAT cluster referenced from
// sb.IFCList, then reads every FAT cluster those point to, and keeps
// the result as the two-level table value()/next() index into.
func buildFatTable(pr *pageReader, sb *SuperBlock) (*fatTable, error) {
	e := sb.FatEntriesPerCluster
	if e == 0 {
		return nil, formatErrorf("invalid SuperBlock: zero FAT entries per cluster")
	}

	var fatClusterNums []uint32
	for _, ifcCluster := range sb.IFCList {
		raw, err := pr.readCluster(ifcCluster)
		if err != nil {
			return nil, formatErrorf("failed to read indirect FAT cluster %d: %v", ifcCluster, err)
		}
		for i := uint32(0); i < e; i++ {
			v := binary.LittleEndian.Uint32(raw[i*4:])
			if v == 0 {
				continue
			}
			fatClusterNums = append(fatClusterNums, v)
		}
	}
	if len(fatClusterNums) == 0 {
		return nil, formatErrorf("SuperBlock indirect FAT list is empty")
	}

	clusters := make([][]uint32, len(fatClusterNums))
	for i, fc := range fatClusterNums {
		raw, err := pr.readCluster(fc)
		if err != nil {
			return nil, formatErrorf("failed to read FAT cluster %d: %v", fc, err)
		}
		entries := make([]uint32, e)
		for j := uint32(0); j < e; j++ {
			entries[j] = binary.LittleEndian.Uint32(raw[j*4:])
		}
		clusters[i] = entries
	}

	return &fatTable{clusters: clusters, e: e}, nil
}

// value returns the raw FAT dword for relative cluster n, per
// fat[(n / e) mod e][n mod e].
func (t *fatTable) value(n uint32) (uint32, error) {
	outer := (n / t.e) % t.e
	inner := n % t.e
	if int(outer) >= len(t.clusters) {
		return 0, formatErrorf("cluster %d out of range of FAT (%d FAT clusters)", n, len(t.clusters))
	}
	return t.clusters[outer][inner], nil
}

// next returns the next cluster in n's chain, and whether n was the last
// (chain-terminating) cluster.
func (t *fatTable) next(n uint32) (next uint32, isEnd bool, err error) {
	raw, err := t.value(n)
	if err != nil {
		return 0, false, err
	}
	// A chain's final cluster carries the allocated bit with an
	// all-ones payload: masking it off yields fatChainEnd regardless
	// of whether the raw dword happens to equal fatUnallocated too —
	// that collision is intentional in the on-disk format and is only
	// ever resolved by context (we only call next on clusters already
	// known to be part of a live chain).
	v := raw &^ fatAllocatedBit
	if v == fatChainEnd {
		return 0, true, nil
	}
	return v, false, nil
}

// chain walks the cluster chain starting at the relative cluster start,
// returning every cluster index visited in order, start first.
func (t *fatTable) chain(start uint32) ([]uint32, error) {
	clusters := make([]uint32, 0, 8)
	n := start
	for i := 0; ; i++ {
		if i >= maxChainLength {
			return nil, formatErrorf("cluster chain starting at %d exceeds maximum length", start)
		}
		clusters = append(clusters, n)
		next, isEnd, err := t.next(n)
		if err != nil {
			return nil, err
		}
		if isEnd {
			break
		}
		n = next
	}
	return clusters, nil
}
