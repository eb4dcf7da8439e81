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
	"encoding/binary"
	"math"
)

const (
	iconMagic          uint32 = 0x010000
	animHeaderMagic    uint32 = 0x01
	texTypeHasTexture         = 0b100
	texTypeCompressed         = 0b1000
)

const (
	iconHeaderSize    = 5 * 4  // 5 uint32
	vertexRecordSize  = 3*2 + 2 // 3 int16 + 1 uint16
	normalRecordSize  = 3*2 + 2
	uvRecordSize      = 2 * 2 // 2 int16
	colorRecordSize   = 4 // 4 bytes
	animHeaderSize    = 4 + 4 + 4 + 4 + 4 // uint32,uint32,float32,uint32,uint32
	frameDataSize     = 4 * 4             // 4 uint32
	frameKeySize      = 2 * 4             // 2 float32
)

// Vertex4 is a single animated vertex or normal sample: x, y, z and a
// fourth on-disk component (a weight/padding value, kept for fidelity).
type Vertex4 struct {
	X, Y, Z, W float64
}

// UV is a 2D texture coordinate sample.
type UV struct {
	U, V float64
}

// RGBA8 is a packed 8-bit-per-channel vertex color.
type RGBA8 struct {
	R, G, B, A uint8
}

// Frame is one keyframe header of the icon's animation track. KeyCount-1
// 2-float keys follow it in the source stream; the decoder skips over
// them without storing them.
type Frame struct {
	KeyCount int
	Fields   [4]uint32 // raw frame_data fields, index 1 is KeyCount
}

// Icon is a decoded .icn animated 3D save icon: per-vertex animation
// shapes, a shared normal/UV/color stream, an animation timeline, and
// (when present) a 128x128 texture expanded to RGB888.
type Icon struct {
	AnimationShapes int
	TexType         uint32
	VertexCount     int

	// VertexData[vertex][shape] holds the animated vertex position for
	// that shape; VertexData has VertexCount entries, each with
	// AnimationShapes samples.
	VertexData [][]Vertex4
	NormalData []Vertex4
	UVData     []UV
	ColorData  []RGBA8

	FrameLength int32
	AnimSpeed   float32
	PlayOffset  uint32
	FrameCount  int
	Frames      []Frame

	// Texture holds the decoded RGB888 texture (128*128*3 bytes) when
	// TexType has the texture bit set; nil otherwise.
	Texture []byte

	// Warnings collects non-fatal anomalies encountered while decoding
	// (e.g. a zero-key animation frame) rather than aborting the parse.
	Warnings []string
}

const (
	TextureWidth     = 128
	TextureHeight    = 128
	textureSize      = TextureWidth * TextureHeight * 2 // RGB555, 2 bytes/pixel
	RGBTextureSize   = TextureWidth * TextureHeight * 3
)

// ParseIcon decodes a .icn animated icon model from buf.
func ParseIcon(buf []byte) (*Icon, error) {
	if len(buf) < iconHeaderSize {
		return nil, decodeErrorf("Icon length invalid: only %d bytes", len(buf))
	}

	le := binary.LittleEndian
	offset := 0
	magic := le.Uint32(buf[offset:])
	animShapes := le.Uint32(buf[offset+4:])
	texType := le.Uint32(buf[offset+8:])
	// buf[offset+12:] (field index 3) is present on disk but unused.
	vertexCount := le.Uint32(buf[offset+16:])
	offset += iconHeaderSize

	if magic != iconMagic {
		return nil, decodeErrorf("not a valid Icon")
	}

	icon := &Icon{
		AnimationShapes: int(animShapes),
		TexType:         texType,
		VertexCount:     int(vertexCount),
	}

	icon.VertexData = make([][]Vertex4, vertexCount)
	for v := range icon.VertexData {
		icon.VertexData[v] = make([]Vertex4, animShapes)
	}
	icon.NormalData = make([]Vertex4, vertexCount)
	icon.UVData = make([]UV, vertexCount)
	icon.ColorData = make([]RGBA8, vertexCount)

	for i := uint32(0); i < vertexCount; i++ {
		for s := uint32(0); s < animShapes; s++ {
			if offset+vertexRecordSize > len(buf) {
				return nil, decodeErrorf("Icon truncated reading vertex %d of shape %d", i, s)
			}
			x := int16(le.Uint16(buf[offset:]))
			y := int16(le.Uint16(buf[offset+2:]))
			z := int16(le.Uint16(buf[offset+4:]))
			w := le.Uint16(buf[offset+6:])
			icon.VertexData[i][s] = Vertex4{X: float64(x), Y: float64(y), Z: float64(z), W: float64(w)}
			offset += vertexRecordSize
		}

		if offset+normalRecordSize > len(buf) {
			return nil, decodeErrorf("Icon truncated reading normal %d", i)
		}
		nx := int16(le.Uint16(buf[offset:]))
		ny := int16(le.Uint16(buf[offset+2:]))
		nz := int16(le.Uint16(buf[offset+4:]))
		nw := le.Uint16(buf[offset+6:])
		icon.NormalData[i] = Vertex4{X: float64(nx), Y: float64(ny), Z: float64(nz), W: float64(nw)}
		offset += normalRecordSize

		if offset+uvRecordSize > len(buf) {
			return nil, decodeErrorf("Icon truncated reading uv %d", i)
		}
		u := int16(le.Uint16(buf[offset:]))
		v := int16(le.Uint16(buf[offset+2:]))
		icon.UVData[i] = UV{U: float64(u), V: float64(v)}
		offset += uvRecordSize

		if offset+colorRecordSize > len(buf) {
			return nil, decodeErrorf("Icon truncated reading color %d", i)
		}
		icon.ColorData[i] = RGBA8{R: buf[offset], G: buf[offset+1], B: buf[offset+2], A: buf[offset+3]}
		offset += colorRecordSize
	}

	if offset+animHeaderSize > len(buf) {
		return nil, decodeErrorf("Icon truncated reading animation header")
	}
	animMagic := le.Uint32(buf[offset:])
	frameLength := int32(le.Uint32(buf[offset+4:]))
	animSpeed := math.Float32frombits(le.Uint32(buf[offset+8:]))
	playOffset := le.Uint32(buf[offset+12:])
	frameCount := le.Uint32(buf[offset+16:])
	offset += animHeaderSize

	if animMagic != animHeaderMagic {
		return nil, decodeErrorf("not a valid animation header")
	}

	icon.FrameLength = frameLength
	icon.AnimSpeed = animSpeed
	icon.PlayOffset = playOffset
	icon.FrameCount = int(frameCount)
	icon.Frames = make([]Frame, 0, frameCount)

	for i := uint32(0); i < frameCount; i++ {
		if offset+frameDataSize > len(buf) {
			return nil, decodeErrorf("Icon truncated reading frame %d", i)
		}
		var fields [4]uint32
		for j := 0; j < 4; j++ {
			fields[j] = le.Uint32(buf[offset+j*4:])
		}
		offset += frameDataSize

		keyCount := int(fields[1])
		icon.Frames = append(icon.Frames, Frame{KeyCount: keyCount, Fields: fields})

		if keyCount == 0 {
			icon.Warnings = append(icon.Warnings, "frame with zero key count; skipping extra key data")
			continue
		}
		skip := frameKeySize * (keyCount - 1)
		if offset+skip > len(buf) {
			return nil, decodeErrorf("Icon truncated skipping keys for frame %d", i)
		}
		offset += skip
	}

	if icon.TexType&texTypeHasTexture != 0 {
		tex, err := loadTexture(buf, offset, icon.TexType&texTypeCompressed != 0)
		if err != nil {
			return nil, err
		}
		icon.Texture = decodeTexture(tex)
	}

	return icon, nil
}
