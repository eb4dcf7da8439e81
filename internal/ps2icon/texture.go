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

import "encoding/binary"

// loadTexture returns the raw RGB555 texture bytes (128*128*2), either
// read directly from buf or RLE-decompressed from it, starting at
// offset.
func loadTexture(buf []byte, offset int, compressed bool) ([]byte, error) {
	if !compressed {
		if offset+textureSize > len(buf) {
			return nil, decodeErrorf("Icon truncated reading uncompressed texture")
		}
		return buf[offset : offset+textureSize], nil
	}
	tex, err := decompressTexture(buf, offset)
	if err != nil {
		return nil, err
	}
	if len(tex) != textureSize {
		return nil, decodeErrorf("Icon compressed texture decodes to %d bytes, want %d", len(tex), textureSize)
	}
	return tex, nil
}

// decompressTexture implements the icon texture's simple run-length
// scheme over 16-bit pixel words: a code with the high bit set starts a
// literal run of (0x8000 - (code ^ 0x8000)) words copied verbatim; a
// code with the high bit clear repeats the single word that follows it
// that many times.
func decompressTexture(buf []byte, offset int) ([]byte, error) {
	le := binary.LittleEndian
	if offset+4 > len(buf) {
		return nil, decodeErrorf("Icon truncated reading compressed texture size")
	}
	compressedSize := int(le.Uint32(buf[offset:]))
	offset += 4

	out := make([]byte, 0, textureSize)
	rleOffset := 0
	for rleOffset < compressedSize {
		if offset+rleOffset+2 > len(buf) {
			return nil, decodeErrorf("Icon truncated reading RLE code")
		}
		code := le.Uint16(buf[offset+rleOffset:])
		rleOffset += 2

		if code&0x8000 != 0 {
			nextWords := int(0x8000 - (code ^ 0x8000))
			n := nextWords * 2
			start := offset + rleOffset
			if start+n > len(buf) {
				return nil, decodeErrorf("Icon truncated reading literal RLE run")
			}
			out = append(out, buf[start:start+n]...)
			rleOffset += n
			continue
		}

		times := int(code)
		if times > 0 {
			start := offset + rleOffset
			if start+2 > len(buf) {
				return nil, decodeErrorf("Icon truncated reading repeated RLE pixel")
			}
			pixel := buf[start : start+2]
			for i := 0; i < times; i++ {
				out = append(out, pixel...)
			}
			rleOffset += 2
		}
	}
	return out, nil
}

// decodeTexture expands a packed RGB555 texture to RGB888, one byte per
// channel, by shifting each 5-bit channel into the top of its byte.
func decodeTexture(rgb555 []byte) []byte {
	le := binary.LittleEndian
	out := make([]byte, 0, RGBTextureSize)
	for i := 0; i+2 <= len(rgb555); i += 2 {
		v := le.Uint16(rgb555[i:])
		r := byte(v&0x1F) << 3
		g := byte((v>>5)&0x1F) << 3
		b := byte((v>>10)&0x1F) << 3
		out = append(out, r, g, b)
	}
	return out
}
