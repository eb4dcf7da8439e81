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
package ps2icon

import (
	"bytes"
	"encoding/binary"
	"io"
)

// bmpFileHeader is the on-disk BITMAPFILEHEADER, written here instead of
// parsed: WriteBMP is the encoder side of the format this module's
// teacher only ever read.
type bmpFileHeader struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

// bmpDIBHeader is a BITMAPINFOHEADER.
type bmpDIBHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

const bmpCompressionNone = 0

// WriteBMP writes rgb (RGBTextureSize bytes of packed RGB888, row-major
// top-to-bottom as decoded from the icon texture) as a 24-bit uncompressed
// BMP image to w.
func WriteBMP(w io.Writer, rgb []byte) error {
	if len(rgb) != RGBTextureSize {
		return decodeErrorf("WriteBMP: expected %d bytes of RGB888 data, got %d", RGBTextureSize, len(rgb))
	}

	rowSize := TextureWidth * 3
	padding := (4 - rowSize%4) % 4
	paddedRowSize := rowSize + padding
	pixelDataSize := paddedRowSize * TextureHeight

	fh := bmpFileHeader{
		Signature:  [2]byte{'B', 'M'},
		FileSize:   uint32(14 + 40 + pixelDataSize),
		DataOffset: 14 + 40,
	}
	dh := bmpDIBHeader{
		HeaderSize:   40,
		Width:        TextureWidth,
		Height:       TextureHeight,
		Planes:       1,
		BitsPerPixel: 24,
		Compression:  bmpCompressionNone,
		ImageSize:    uint32(pixelDataSize),
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, fh); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, dh); err != nil {
		return err
	}

	// BMP rows are stored bottom-up, and BGR rather than RGB.
	pad := make([]byte, padding)
	for y := TextureHeight - 1; y >= 0; y-- {
		row := rgb[y*rowSize : y*rowSize+rowSize]
		for x := 0; x < TextureWidth; x++ {
			r, g, b := row[x*3], row[x*3+1], row[x*3+2]
			buf.WriteByte(b)
			buf.WriteByte(g)
			buf.WriteByte(r)
		}
		buf.Write(pad)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
