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
)

const iconSysSize = 964

var iconSysMagic = []byte("PS2D")

// Color4 is an RGBA quadruple of float components. IconSys does not use
// it: background corner colors stay raw [4]uint32 fields from the
// icon.sys record, and light and ambient colors stay [4]float32.
type Color4 struct {
	R, G, B, A float64
}

// rawIconSys mirrors the 964-byte icon.sys record exactly.
type rawIconSys struct {
	Magic             [4]byte
	_                 [2]byte
	SubtitleLineBreak uint16
	_                 [4]byte
	BgTransparency    uint32
	BgColorUpperLeft  [4]uint32
	BgColorUpperRight [4]uint32
	BgColorLowerLeft  [4]uint32
	BgColorLowerRight [4]uint32
	LightDir1         [4]float32
	LightDir2         [4]float32
	LightDir3         [4]float32
	LightColor1       [4]float32
	LightColor2       [4]float32
	LightColor3       [4]float32
	Ambient           [4]float32
	Subtitle          [68]byte
	IconFileNormal    [64]byte
	IconFileCopy      [64]byte
	IconFileDelete    [64]byte
	_                 [512]byte
}

// IconSys is the decoded icon.sys metadata record that accompanies every
// save-file directory: background gradient, lighting rig, title, and the
// three icon model filenames (normal/copy/delete presentations).
type IconSys struct {
	SubtitleLine1, SubtitleLine2 string
	BackgroundTransparency       uint32
	BackgroundColors             [4][4]uint32 // upper-left, upper-right, lower-left, lower-right
	LightDirections              [3][4]float32
	LightColors                  [3][4]float32
	Ambient                      [4]float32
	IconFileNormal               string
	IconFileCopy                 string
	IconFileDelete               string
}

// ParseIconSys decodes a 964-byte icon.sys record.
func ParseIconSys(buf []byte) (*IconSys, error) {
	if len(buf) != iconSysSize {
		return nil, decodeErrorf("IconSys length invalid: got %d bytes, want %d", len(buf), iconSysSize)
	}
	if !bytes.HasPrefix(buf, iconSysMagic) {
		return nil, decodeErrorf("not a valid IconSys")
	}

	var raw rawIconSys
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &raw); err != nil {
		return nil, wrapDecodeErrorf(err, "failed to decode IconSys")
	}

	subtitle := zeroTerminate(raw.Subtitle[:])
	breakAt := int(raw.SubtitleLineBreak)
	if breakAt > len(subtitle) {
		breakAt = len(subtitle)
	}
	line1, err := decodeSJIS(subtitle[:breakAt])
	if err != nil {
		return nil, err
	}
	line2, err := decodeSJIS(subtitle[breakAt:])
	if err != nil {
		return nil, err
	}

	return &IconSys{
		SubtitleLine1:          line1,
		SubtitleLine2:          line2,
		BackgroundTransparency: raw.BgTransparency,
		BackgroundColors: [4][4]uint32{
			raw.BgColorUpperLeft,
			raw.BgColorUpperRight,
			raw.BgColorLowerLeft,
			raw.BgColorLowerRight,
		},
		LightDirections: [3][4]float32{raw.LightDir1, raw.LightDir2, raw.LightDir3},
		LightColors:     [3][4]float32{raw.LightColor1, raw.LightColor2, raw.LightColor3},
		Ambient:         raw.Ambient,
		IconFileNormal:  string(zeroTerminate(raw.IconFileNormal[:])),
		IconFileCopy:    string(zeroTerminate(raw.IconFileCopy[:])),
		IconFileDelete:  string(zeroTerminate(raw.IconFileDelete[:])),
	}, nil
}

func zeroTerminate(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
