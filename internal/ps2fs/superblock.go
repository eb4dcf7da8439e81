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
	"bytes"
	"encoding/binary"
)

// superBlockMagic is the fixed 28-byte prefix every valid card image
// starts with. Trailing space is significant.
const superBlockMagic = "Sony PS2 Memory Card Format "

// superBlockSize is the fixed on-disk size of the superblock structure.
const superBlockSize = 340

// rawSuperBlock mirrors the PS2 memory-card SuperBlock layout byte for
// byte. Reserved/unused fields are kept so the struct size matches the
// on-disk layout exactly; only the fields SuperBlock needs are exported
// from the decoder above this one.
type rawSuperBlock struct {
	Magic            [28]byte
	Version          [12]byte
	PageLen          uint16
	PagesPerCluster  uint16
	PagesPerBlock    uint16
	_                uint16 // unknown, ignored
	ClustersPerCard  uint32
	AllocOffset      uint32
	AllocEnd         uint32
	RootdirCluster   uint32
	_                uint32 // backup_block1, ignored
	_                uint32 // backup_block2, ignored
	_                [8]byte // unknown[2], ignored
	IFCList          [32]uint32
	BadBlockList     [32]uint32 // ignored
	CardType         byte
	CardFlags        byte
	_                [2]byte // ignored
}

// SuperBlock holds the card geometry decoded from the fixed-size header
// at the start of every PS2 memory-card image.
type SuperBlock struct {
	PageLen          uint16
	PagesPerCluster  uint16
	PagesPerBlock    uint16
	ClustersPerCard  uint32
	AllocOffset      uint32
	RootdirCluster   uint32
	IFCList          []uint32

	SpareSize         uint32
	RawPageSize       uint32
	ClusterSize       uint32
	FatEntriesPerCluster uint32
}

// parseSuperBlock validates and decodes the superblock at the start of
// buf, per spec.md §4.2: length >= 340 bytes, and the fixed 28-byte ASCII
// magic at the front.
func parseSuperBlock(buf []byte) (*SuperBlock, error) {
	if len(buf) < superBlockSize {
		return nil, formatErrorf("SuperBlock length invalid: image is only %d bytes", len(buf))
	}
	if !bytes.HasPrefix(buf, []byte(superBlockMagic)) {
		return nil, formatErrorf("not a valid SuperBlock")
	}

	var raw rawSuperBlock
	if err := binary.Read(bytes.NewReader(buf[:superBlockSize]), binary.LittleEndian, &raw); err != nil {
		return nil, formatErrorf("failed to decode SuperBlock: %v", err)
	}

	sb := &SuperBlock{
		PageLen:         raw.PageLen,
		PagesPerCluster: raw.PagesPerCluster,
		PagesPerBlock:   raw.PagesPerBlock,
		ClustersPerCard: raw.ClustersPerCard,
		AllocOffset:     raw.AllocOffset,
		RootdirCluster:  raw.RootdirCluster,
	}

	// Trailing zero entries in the indirect-FAT list mark "unused" slots.
	for _, v := range raw.IFCList {
		if v == 0 {
			break
		}
		sb.IFCList = append(sb.IFCList, v)
	}

	sb.SpareSize = (uint32(sb.PageLen) / 128) * 4
	sb.RawPageSize = uint32(sb.PageLen) + sb.SpareSize
	sb.ClusterSize = uint32(sb.PageLen) * uint32(sb.PagesPerCluster)
	sb.FatEntriesPerCluster = sb.ClusterSize / 4

	return sb, nil
}
