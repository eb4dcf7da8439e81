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
	"time"
)

const entrySize = 512

const (
	modeExists    uint16 = 0x8000
	modeDirectory uint16 = 0x0020
	modeFile      uint16 = 0x0010
	modeHidden    uint16 = 0x2000
	modeProtected uint16 = 0x0008
)

// rawTOD mirrors the 8-byte timestamp embedded in every directory entry.
type rawTOD struct {
	_       byte // unused
	Sec     byte
	Min     byte
	Hour    byte
	Day     byte
	Month   byte
	Year    uint16
}

// rawEntry mirrors the fixed 512-byte on-disk directory entry exactly,
// per the Python struct format "<H2xL8sL4x8s4x28x32s416x".
type rawEntry struct {
	Mode      uint16
	_         [2]byte
	Length    uint32
	Created   rawTOD
	Cluster   uint32
	_         [4]byte
	Modified  rawTOD
	_         [4]byte
	_         [28]byte // unused
	Name      [32]byte
	_         [416]byte // unused (padding out to 512)
}

// Entry describes one directory record: a file or subdirectory, its
// size, its starting cluster, and its timestamps.
type Entry struct {
	Name       string
	Mode       uint16
	Length     uint32
	Cluster    uint32
	Created    time.Time
	Modified   time.Time
}

// IsDir reports whether the entry is a subdirectory.
func (e *Entry) IsDir() bool { return e.Mode&modeDirectory != 0 }

// IsFile reports whether the entry is a regular file.
func (e *Entry) IsFile() bool { return e.Mode&modeFile != 0 }

// Exists reports whether the EXISTS bit is set; cleared entries are
// slots freed by deletion and must be skipped by directory listings.
func (e *Entry) Exists() bool { return e.Mode&modeExists != 0 }

// Hidden reports whether the entry's hidden bit is set.
func (e *Entry) Hidden() bool { return e.Mode&modeHidden != 0 }

// Protected reports whether the entry's copy-protected bit is set.
func (e *Entry) Protected() bool { return e.Mode&modeProtected != 0 }

func todToTime(t rawTOD) time.Time {
	if t.Year == 0 {
		return time.Time{}
	}
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Min), int(t.Sec), 0, time.UTC)
}

func decodeEntry(buf []byte) (*Entry, error) {
	if len(buf) < entrySize {
		return nil, formatErrorf("directory entry length invalid: %d bytes", len(buf))
	}

	var raw rawEntry
	if err := binary.Read(bytes.NewReader(buf[:entrySize]), binary.LittleEndian, &raw); err != nil {
		return nil, formatErrorf("failed to decode directory entry: %v", err)
	}

	return &Entry{
		Name:     zeroTerminate(raw.Name[:]),
		Mode:     raw.Mode,
		Length:   raw.Length,
		Cluster:  raw.Cluster,
		Created:  todToTime(raw.Created),
		Modified: todToTime(raw.Modified),
	}, nil
}

// zeroTerminate returns the portion of b before the first NUL byte,
// decoded as ASCII — directory entry names are always plain ASCII.
func zeroTerminate(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
