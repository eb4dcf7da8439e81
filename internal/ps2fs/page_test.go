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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuperBlock() *SuperBlock {
	return &SuperBlock{
		PageLen:              testPageLen,
		PagesPerCluster:      testPagesPerClu,
		SpareSize:            testSpareSize,
		RawPageSize:          testRawPageLen,
		ClusterSize:          testClusterSize,
		FatEntriesPerCluster: testE,
		AllocOffset:          testAllocOffset,
	}
}

func TestPageReaderSkipsSpareBytes(t *testing.T) {
	sb := testSuperBlock()
	data := make([]byte, testRawPageLen*2)
	copy(data[0:], bytes.Repeat([]byte{0xAA}, testPageLen))
	copy(data[testPageLen:], bytes.Repeat([]byte{0xEE}, testSpareSize)) // spare for page 0
	copy(data[testRawPageLen:], bytes.Repeat([]byte{0xBB}, testPageLen))

	pr := newPageReader(data, sb)

	p0, err := pr.readPage(0)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, testPageLen), p0)

	p1, err := pr.readPage(1)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xBB}, testPageLen), p1)
}

func TestPageReaderReadClusterConcatenatesPages(t *testing.T) {
	sb := testSuperBlock()
	data := make([]byte, testRawPageLen*testPagesPerClu)
	copy(data[0:], bytes.Repeat([]byte{0x01}, testPageLen))
	copy(data[testRawPageLen:], bytes.Repeat([]byte{0x02}, testPageLen))

	pr := newPageReader(data, sb)
	cluster, err := pr.readCluster(0)
	require.NoError(t, err)
	require.Len(t, cluster, testClusterSize)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, testPageLen), cluster[:testPageLen])
	assert.Equal(t, bytes.Repeat([]byte{0x02}, testPageLen), cluster[testPageLen:])
}

func TestPageReaderOutOfBounds(t *testing.T) {
	sb := testSuperBlock()
	pr := newPageReader(make([]byte, testRawPageLen), sb)
	_, err := pr.readPage(5)
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
}
