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

// pageReader translates logical page/cluster indices into byte ranges
// of the raw card image, skipping the per-page spare (ECC) region.
type pageReader struct {
	data            []byte
	pageSize        uint32
	rawPageSize     uint32
	pagesPerCluster uint32
	clusterSize     uint32
}

func newPageReader(data []byte, sb *SuperBlock) *pageReader {
	return &pageReader{
		data:            data,
		pageSize:        uint32(sb.PageLen),
		rawPageSize:     sb.RawPageSize,
		pagesPerCluster: uint32(sb.PagesPerCluster),
		clusterSize:     sb.ClusterSize,
	}
}

// readPage returns the data portion of page n; the spare/ECC bytes that
// follow each page on disk are not part of the returned slice.
func (p *pageReader) readPage(n uint32) ([]byte, error) {
	start := uint64(p.rawPageSize) * uint64(n)
	end := start + uint64(p.pageSize)
	if end > uint64(len(p.data)) {
		return nil, formatErrorf("page %d is out of bounds", n)
	}
	return p.data[start:end], nil
}

// readCluster concatenates the pagesPerCluster consecutive pages that
// make up cluster n. n is interpreted exactly as the caller passes it —
// relative or absolute is a decision made by the FAT/directory layer.
func (p *pageReader) readCluster(n uint32) ([]byte, error) {
	buf := make([]byte, 0, p.clusterSize)
	first := n * p.pagesPerCluster
	for i := uint32(0); i < p.pagesPerCluster; i++ {
		page, err := p.readPage(first + i)
		if err != nil {
			return nil, err
		}
		buf = append(buf, page...)
	}
	return buf, nil
}
