//go:build linux
// +build linux

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
package fuse

import (
	"context"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/stefanoscafiti/ps2mc/internal/ps2fs"
)

// CardFS exposes an open memory-card image as a read-only filesystem
// tree, mirroring the card's own directory structure rather than the
// single flat directory a byte-range recovery listing would produce.
type CardFS struct {
	card *ps2fs.CardHandle
}

func NewCardFS(card *ps2fs.CardHandle) *CardFS {
	return &CardFS{card: card}
}

func (c *CardFS) Root() (fs.Node, error) {
	return &Dir{fs: c, path: ""}, nil
}

// Dir implements fs.Node and fs.HandleReadDirAller for one card directory.
type Dir struct {
	fs   *CardFS
	path string
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	children, err := d.fs.card.List(d.path)
	if err != nil {
		return nil, fuse.ENOENT
	}
	for _, e := range children {
		if e.Name != name {
			continue
		}
		childPath := d.path + "/" + name
		if e.IsDir() {
			return &Dir{fs: d.fs, path: childPath}, nil
		}
		return &File{fs: d.fs, path: childPath, size: e.Length}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	children, err := d.fs.card.List(d.path)
	if err != nil {
		return nil, err
	}

	dirEntries := make([]fuse.Dirent, len(children))
	for i, e := range children {
		typ := fuse.DT_File
		if e.IsDir() {
			typ = fuse.DT_Dir
		}
		dirEntries[i] = fuse.Dirent{Inode: uint64(i) + 1, Name: e.Name, Type: typ}
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name < dirEntries[j].Name })
	return dirEntries, nil
}

// File implements fs.Node and fs.HandleReader for one card file. Data is
// read in full on first access and served out of memory afterward —
// the card images this mounts are small enough that this costs nothing.
type File struct {
	fs   *CardFS
	path string
	size uint32

	data []byte
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.size)
	a.Mtime = time.Now()
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if f.data == nil {
		data, err := f.fs.card.ReadFile(f.path)
		if err != nil {
			return err
		}
		f.data = data
	}

	offset := req.Offset
	size := req.Size
	if offset >= int64(len(f.data)) {
		resp.Data = []byte{}
		return nil
	}
	end := offset + int64(size)
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	resp.Data = f.data[offset:end]
	return nil
}
