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

// fileReader materializes a file entry's data by walking its cluster
// chain and truncating the final cluster down to the entry's declared
// byte length.
type fileReader struct {
	pr  *pageReader
	fat *fatTable
	sb  *SuperBlock
}

func newFileReader(pr *pageReader, fat *fatTable, sb *SuperBlock) *fileReader {
	return &fileReader{pr: pr, fat: fat, sb: sb}
}

// readData returns the full contents of a file entry.
func (f *fileReader) readData(e *Entry) ([]byte, error) {
	if !e.IsFile() {
		return nil, formatErrorf("%q is not a regular file", e.Name)
	}
	if e.Length == 0 {
		return []byte{}, nil
	}

	clusters, err := f.fat.chain(e.Cluster)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, f.sb.ClusterSize*uint32(len(clusters)))
	for _, c := range clusters {
		data, err := f.pr.readCluster(c + f.sb.AllocOffset)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}

	if uint32(len(out)) > e.Length {
		out = out[:e.Length]
	} else if uint32(len(out)) < e.Length {
		return nil, formatErrorf("%q: cluster chain shorter than declared length (%d < %d)", e.Name, len(out), e.Length)
	}
	return out, nil
}
