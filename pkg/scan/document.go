// Package scan implements the single-pass partitioning of a raw document
// into an ordered, gap-free, non-overlapping sequence of typed blocks.
package scan

import "sort"

// Document is an immutable input text plus a cached index of line-start
// offsets. The index is built once, in O(n), and every position lookup is a
// binary search. Blocks hold views into the document's text and never copy
// it; they are valid for the document's lifetime.
type Document struct {
	text       string
	lineStarts []int
}

// NewDocument wraps text in a Document and builds its line index.
func NewDocument(text string) *Document {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, lineStarts: starts}
}

// Text returns the full document text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// LineCount returns the number of lines, counting a trailing fragment
// without a newline as a line. The empty document has one (empty) line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineOf returns the 1-based line number containing offset. Offsets past
// the end of the text report the last line boundary, so LineOf(Len()) is
// the line a subsequent block would start on.
func (d *Document) LineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	// First line start strictly greater than offset; the line index is the
	// one before it.
	i := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	return i
}

// Slice returns the text in [start, end) as a view into the document.
func (d *Document) Slice(start, end int) string {
	return d.text[start:end]
}

// isLineStart reports whether offset is the first byte of a line.
func (d *Document) isLineStart(offset int) bool {
	if offset == 0 {
		return true
	}
	if offset >= len(d.text) {
		return offset == len(d.text) && d.text[offset-1] == '\n'
	}
	return d.text[offset-1] == '\n'
}

// nextLineStart returns the first line-start offset strictly after offset,
// or the document length when none exists.
func (d *Document) nextLineStart(offset int) int {
	i := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	if i < len(d.lineStarts) {
		return d.lineStarts[i]
	}
	return len(d.text)
}
