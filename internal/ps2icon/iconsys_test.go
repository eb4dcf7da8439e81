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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawIconSysSize(t *testing.T) {
	assert.Equal(t, iconSysSize, int(unsafe.Sizeof(rawIconSys{})))
}

func buildIconSysBytes(t *testing.T, title string, lineBreak uint16, normal, copyName, del string) []byte {
	t.Helper()
	buf := make([]byte, iconSysSize)
	copy(buf, iconSysMagic)
	binary.LittleEndian.PutUint16(buf[6:], lineBreak)
	binary.LittleEndian.PutUint32(buf[12:], 0x80) // bg transparency
	copy(buf[192:260], title)
	copy(buf[260:324], normal)
	copy(buf[324:388], copyName)
	copy(buf[388:452], del)
	return buf
}

func TestParseIconSys(t *testing.T) {
	buf := buildIconSysBytes(t, "HELLO WORLD", 5, "icon.icn", "icon.icn", "icon.icn")
	sys, err := ParseIconSys(buf)
	require.NoError(t, err)

	assert.Equal(t, "HELLO", sys.SubtitleLine1)
	assert.Equal(t, " WORLD", sys.SubtitleLine2)
	assert.Equal(t, uint32(0x80), sys.BackgroundTransparency)
	assert.Equal(t, "icon.icn", sys.IconFileNormal)
	assert.Equal(t, "icon.icn", sys.IconFileCopy)
	assert.Equal(t, "icon.icn", sys.IconFileDelete)
}

func TestParseIconSysRejectsWrongLength(t *testing.T) {
	_, err := ParseIconSys(make([]byte, 10))
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}

func TestParseIconSysRejectsBadMagic(t *testing.T) {
	buf := make([]byte, iconSysSize)
	copy(buf, "NOPE")
	_, err := ParseIconSys(buf)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
}
