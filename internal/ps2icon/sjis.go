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
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// StrictText, when true, makes decodeSJIS fail on bytes that don't
// round-trip through Shift-JIS instead of substituting the Unicode
// replacement character. Most callers want the lenient default: save
// icon titles occasionally carry junk bytes past the first NUL that
// would otherwise abort an entire listing.
var StrictText = false

// decodeSJIS decodes a zero-terminated Shift-JIS byte string, as found
// in icon.sys title fields, to UTF-8. The ideographic space U+3000 used
// by Japanese titles as a word separator is normalized to a regular
// ASCII space so titles render sanely in terminal output.
func decodeSJIS(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	// The decoder itself substitutes U+FFFD for invalid sequences.
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", wrapDecodeErrorf(err, "invalid Shift-JIS text")
	}
	if StrictText && bytes.ContainsRune(out, utf8.RuneError) {
		return "", decodeErrorf("invalid Shift-JIS text")
	}
	return strings.ReplaceAll(string(out), "　", " "), nil
}
