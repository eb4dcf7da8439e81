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

// Package ps2fs decodes PlayStation 2 memory-card images: the superblock,
// the indirect/direct FAT chains, and the directory tree and file data
// they describe.
package ps2fs

import "strings"

// CardHandle is an open, read-only PS2 memory-card image. The zero value
// is not usable; construct one with Open.
type CardHandle struct {
	img *image
	sb  *SuperBlock
	pr  *pageReader
	fat *fatTable
	dir *dirReader
	fr  *fileReader
}

// Open loads the card image at path, parses its superblock and FAT, and
// returns a handle ready for directory and file access. The returned
// handle owns path's underlying file descriptor or mapping and must be
// closed with Close.
func Open(path string) (*CardHandle, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	sb, err := parseSuperBlock(img.data)
	if err != nil {
		img.Close()
		return nil, err
	}

	pr := newPageReader(img.data, sb)

	fat, err := buildFatTable(pr, sb)
	if err != nil {
		img.Close()
		return nil, err
	}

	return &CardHandle{
		img: img,
		sb:  sb,
		pr:  pr,
		fat: fat,
		dir: newDirReader(pr, fat, sb),
		fr:  newFileReader(pr, fat, sb),
	}, nil
}

// Close releases the underlying image. It is safe to call more than
// once.
func (c *CardHandle) Close() error {
	return c.img.Close()
}

// SuperBlock returns the card's decoded geometry.
func (c *CardHandle) SuperBlock() *SuperBlock {
	return c.sb
}

// ListRoot returns the direct children of the card's root directory.
func (c *CardHandle) ListRoot() ([]*Entry, error) {
	root, err := c.dir.rootEntry()
	if err != nil {
		return nil, err
	}
	return c.dir.findSubEntries(root)
}

// List returns the direct children of the directory at path ("" or "/"
// for the root).
func (c *CardHandle) List(path string) ([]*Entry, error) {
	e, err := c.dir.lookup(path)
	if err != nil {
		return nil, err
	}
	if !e.IsDir() {
		return nil, formatErrorf("%q is not a directory", path)
	}
	return c.dir.findSubEntries(e)
}

// Lookup resolves a "/"-separated path to its Entry.
func (c *CardHandle) Lookup(path string) (*Entry, error) {
	return c.dir.lookup(path)
}

// ReadFile returns the full contents of the file at path.
func (c *CardHandle) ReadFile(path string) ([]byte, error) {
	e, err := c.dir.lookup(path)
	if err != nil {
		return nil, err
	}
	return c.fr.readData(e)
}

// ReadFileEntry returns the full contents of an already-resolved file
// entry, avoiding a second path lookup when the caller already holds it
// (e.g. after a List call).
func (c *CardHandle) ReadFileEntry(e *Entry) ([]byte, error) {
	return c.fr.readData(e)
}

// ListAll walks the entire tree under the root and returns every entry,
// with Name rewritten to its full "/"-rooted path.
func (c *CardHandle) ListAll() ([]*Entry, error) {
	var out []*Entry
	var walk func(prefix string, dir *Entry) error
	walk = func(prefix string, dir *Entry) error {
		children, err := c.dir.findSubEntries(dir)
		if err != nil {
			return err
		}
		for _, child := range children {
			full := prefix + "/" + child.Name
			clone := *child
			clone.Name = full
			out = append(out, &clone)
			if child.IsDir() {
				if err := walk(full, child); err != nil {
					return err
				}
			}
		}
		return nil
	}
	root, err := c.dir.rootEntry()
	if err != nil {
		return nil, err
	}
	if err := walk("", root); err != nil {
		return nil, err
	}
	return out, nil
}

// Export writes the file or directory tree at path into destDir on the
// host filesystem, preserving relative structure. progress, if non-nil,
// is called once per file copied with the number of bytes written.
func (c *CardHandle) Export(path, destDir string, progress func(name string, n int)) error {
	e, err := c.dir.lookup(path)
	if err != nil {
		return err
	}
	return c.exportEntry(strings.TrimSuffix(path, "/"), e, destDir, progress)
}

func (c *CardHandle) exportEntry(relPath string, e *Entry, destDir string, progress func(string, int)) error {
	if e.IsDir() {
		children, err := c.dir.findSubEntries(e)
		if err != nil {
			return err
		}
		for _, child := range children {
			childPath := relPath + "/" + child.Name
			if relPath == "" {
				childPath = child.Name
			}
			if err := c.exportEntry(childPath, child, destDir, progress); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := c.fr.readData(e)
	if err != nil {
		return err
	}
	if err := writeExportedFile(destDir, relPath, data); err != nil {
		return err
	}
	if progress != nil {
		progress(relPath, len(data))
	}
	return nil
}
