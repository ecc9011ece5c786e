// Package lineindex maps byte offsets in a source buffer to 1-based line
// numbers. Regex-based extractors (JS/TS, Markdown, RST, AsciiDoc) work
// against match offsets rather than a parsed tree, so they need this to
// attach Location data the way the AST-based Python extractor gets for
// free from tree-sitter node positions.
package lineindex

import "sort"

// Index holds the byte offset of the start of every line in a buffer.
type Index struct {
	offsets []int
}

// Build computes line-start offsets in a single pass.
func Build(data []byte) *Index {
	offsets := make([]int, 0, 64)
	offsets = append(offsets, 0)
	for i, c := range data {
		if c == '\n' && i+1 < len(data) {
			offsets = append(offsets, i+1)
		}
	}
	return &Index{offsets: offsets}
}

// LineAt returns the 1-based line number containing byteOffset.
func (idx *Index) LineAt(byteOffset int) int {
	if len(idx.offsets) == 0 {
		return 1
	}
	i := sort.Search(len(idx.offsets), func(i int) bool {
		return idx.offsets[i] > byteOffset
	})
	return i
}

// LineCount returns the total number of lines in the buffer.
func (idx *Index) LineCount() int {
	return len(idx.offsets)
}
