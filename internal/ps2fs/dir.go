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

import "strings"

// dirReader resolves directory contents by walking cluster chains through
// the FAT and decoding the fixed-size entries packed into each cluster.
type dirReader struct {
	pr  *pageReader
	fat *fatTable
	sb  *SuperBlock
}

func newDirReader(pr *pageReader, fat *fatTable, sb *SuperBlock) *dirReader {
	return &dirReader{pr: pr, fat: fat, sb: sb}
}

// readEntryCluster decodes every directory entry packed into the cluster
// chain starting at the given *relative* cluster. The FAT is indexed and
// walked entirely in relative cluster space; sb.AllocOffset is added only
// when translating a chain member into a physical page read.
func (d *dirReader) readEntryCluster(relCluster uint32) ([]*Entry, error) {
	clusters, err := d.fat.chain(relCluster)
	if err != nil {
		return nil, err
	}

	perCluster := int(d.sb.ClusterSize) / entrySize
	entries := make([]*Entry, 0, perCluster*len(clusters))
	for _, c := range clusters {
		raw, err := d.pr.readCluster(c + d.sb.AllocOffset)
		if err != nil {
			return nil, err
		}
		for off := 0; off+entrySize <= len(raw); off += entrySize {
			e, err := decodeEntry(raw[off : off+entrySize])
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// findSubEntries returns the live (EXISTS-set), non-dot child entries of
// the directory whose own entry is dir, collecting at most dir.Length of
// them — entries beyond that count are unpacked padding, not children.
func (d *dirReader) findSubEntries(dir *Entry) ([]*Entry, error) {
	if !dir.IsDir() {
		return nil, formatErrorf("%q is not a directory", dir.Name)
	}

	all, err := d.readEntryCluster(dir.Cluster)
	if err != nil {
		return nil, err
	}

	capped := make([]*Entry, 0, dir.Length)
	for _, e := range all {
		if uint32(len(capped)) >= dir.Length {
			break
		}
		capped = append(capped, e)
	}

	out := make([]*Entry, 0, len(capped))
	for _, e := range capped {
		if !e.Exists() {
			continue
		}
		if e.Name == "." || e.Name == ".." {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// rootEntry returns the pseudo-entry for the card's root directory. Its
// cluster is given directly by the SuperBlock rather than by a "." entry
// in a parent directory, but its length (the live child count) still
// comes from the "." record that is always the first entry packed into
// the root directory's own cluster — exactly as any other directory's
// length is carried in its own entry record.
func (d *dirReader) rootEntry() (*Entry, error) {
	all, err := d.readEntryCluster(d.sb.RootdirCluster)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, formatErrorf("root directory cluster %d has no entries", d.sb.RootdirCluster)
	}

	root := *all[0]
	root.Name = "/"
	return &root, nil
}

// lookup resolves a "/"-separated path (relative to the root) to its
// Entry, descending one path component at a time.
func (d *dirReader) lookup(path string) (*Entry, error) {
	cur, err := d.rootEntry()
	if err != nil {
		return nil, err
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return cur, nil
	}

	for _, part := range strings.Split(path, "/") {
		children, err := d.findSubEntries(cur)
		if err != nil {
			return nil, err
		}
		var next *Entry
		for _, c := range children {
			if c.Name == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil, lookupErrorf("no such entry: %q", path)
		}
		cur = next
	}
	return cur, nil
}
