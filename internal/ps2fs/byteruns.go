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

// ByteRun describes one contiguous span of a file's data as it actually
// sits inside the raw card image. Cluster chains are not necessarily
// contiguous, so a file's data can take more than one run.
type ByteRun struct {
	Offset    uint64 // logical offset within the file
	ImgOffset uint64 // physical offset within the raw image
	Length    uint64
}

// clusterByteOffset returns the physical offset of cluster n's first
// byte in the raw image, including the spare region of every page that
// precedes it.
func (p *pageReader) clusterByteOffset(n uint32) uint64 {
	return uint64(p.rawPageSize) * uint64(n) * uint64(p.pagesPerCluster)
}

func (p *pageReader) clusterByteLen() uint64 {
	return uint64(p.rawPageSize) * uint64(p.pagesPerCluster)
}

// FileByteRuns resolves path to its on-disk byte runs: the physical
// image ranges its cluster chain occupies, merging adjacent clusters
// into a single run and clamping the final run to the file's declared
// length.
func (c *CardHandle) FileByteRuns(path string) ([]ByteRun, error) {
	e, err := c.dir.lookup(path)
	if err != nil {
		return nil, err
	}
	if e.IsDir() {
		return nil, formatErrorf("%q is a directory", path)
	}

	clusters, err := c.fat.chain(e.Cluster)
	if err != nil {
		return nil, err
	}

	clusterLen := c.pr.clusterByteLen()

	var runs []ByteRun
	var logical uint64
	remaining := uint64(e.Length)
	for i, cl := range clusters {
		n := clusterLen
		if n > remaining {
			n = remaining
		}

		imgOff := c.pr.clusterByteOffset(cl + c.sb.AllocOffset)
		if i > 0 && len(runs) > 0 {
			last := &runs[len(runs)-1]
			if last.ImgOffset+last.Length == imgOff {
				last.Length += n
				logical += n
				remaining -= n
				continue
			}
		}
		runs = append(runs, ByteRun{Offset: logical, ImgOffset: imgOff, Length: n})
		logical += n
		remaining -= n
	}
	return runs, nil
}
