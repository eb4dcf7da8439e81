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
	"io"
	"os"

	"github.com/stefanoscafiti/ps2mc/pkg/reader"
)

// image is the owned byte buffer backing a CardHandle. It is produced
// either by mmap'ing the whole card file read-only, or — when mmap isn't
// available for the given path — by buffering the full contents into a
// plain byte slice.
type image struct {
	data   []byte
	closer func() error
}

func (im *image) Close() error {
	if im.closer == nil {
		return nil
	}
	err := im.closer()
	im.closer = nil
	return err
}

// loadImage reads the entire card image into memory. The card is small
// (tens of MB at most), so streaming is not required: the whole buffer is
// addressed directly by the superblock/FAT/directory decoders.
func loadImage(path string) (*image, error) {
	if im, err := mmapImage(path); err == nil {
		return im, nil
	}

	// Fall back to a buffered whole-file read for paths mmap can't map
	// (pipes, some virtual filesystems, or platforms other than Linux
	// and macOS).
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(err, "failed to open card image %q", path)
	}
	defer f.Close()
	return bufferImage(f)
}

func bufferImage(f *os.File) (*image, error) {
	br := reader.NewBufferedReadSeeker(f, 256*1024)
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, ioErrorf(err, "failed to read card image")
	}
	return &image{data: data}, nil
}
