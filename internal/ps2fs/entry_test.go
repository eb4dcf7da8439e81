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
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawEntrySize(t *testing.T) {
	assert.Equal(t, entrySize, int(unsafe.Sizeof(rawEntry{})))
}

func makeEntryBytes(mode uint16, length uint32, cluster uint32, name string) []byte {
	buf := make([]byte, entrySize)
	binary.LittleEndian.PutUint16(buf[0:], mode)
	binary.LittleEndian.PutUint32(buf[4:], length)
	binary.LittleEndian.PutUint32(buf[16:], cluster)
	copy(buf[64:], name)
	return buf
}

func TestDecodeEntry(t *testing.T) {
	buf := makeEntryBytes(modeExists|modeFile, 12345, 9, "HELLO.TXT")
	e, err := decodeEntry(buf)
	require.NoError(t, err)

	assert.Equal(t, "HELLO.TXT", e.Name)
	assert.Equal(t, uint32(12345), e.Length)
	assert.Equal(t, uint32(9), e.Cluster)
	assert.True(t, e.Exists())
	assert.True(t, e.IsFile())
	assert.False(t, e.IsDir())
}

func TestDecodeEntryModeFlags(t *testing.T) {
	buf := makeEntryBytes(modeExists|modeDirectory|modeHidden|modeProtected, 0, 0, "SAVEDIR")
	e, err := decodeEntry(buf)
	require.NoError(t, err)

	assert.True(t, e.IsDir())
	assert.True(t, e.Hidden())
	assert.True(t, e.Protected())
}

func TestDecodeEntryRejectsShortBuffer(t *testing.T) {
	_, err := decodeEntry(make([]byte, 10))
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}

func TestZeroTerminate(t *testing.T) {
	buf := make([]byte, 32)
	copy(buf, "BASLUS-12345")
	assert.Equal(t, "BASLUS-12345", zeroTerminate(buf))
}
