package scan

import (
	"fmt"
	"strings"

	"github.com/chemscan/chemscan/pkg/pattern"
)

// CharSpan is a half-open byte range [Start, End) into a document.
type CharSpan struct {
	Start int
	End   int
}

func (s CharSpan) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// LineSpan is a 1-based line range. Start is the line the span begins on;
// End is Start plus the number of newlines inside the span, so a block that
// ends with a newline reports the line the next block starts on.
type LineSpan struct {
	Start int
	End   int
}

func (s LineSpan) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Block is a claimed, typed, positioned span of the source document. Its
// text is a borrowed view into the owning document, never a copy.
type Block struct {
	// Index is the block's position in its table.
	Index int

	// Type is the coarse classification (Block or Spacer).
	Type pattern.TopLevelType

	// Subtype names the pattern that claimed the span.
	Subtype string

	// Chars is the byte span within the document.
	Chars CharSpan

	// Lines is the line span within the document.
	Lines LineSpan

	doc *Document
}

// Text returns the block's backing slice of the document.
func (b Block) Text() string {
	return b.doc.Slice(b.Chars.Start, b.Chars.End)
}

// Document returns the owning document.
func (b Block) Document() *Document {
	return b.doc
}

// BlockTable is the ordered result of partitioning one document. Spans are
// strictly increasing, contiguous, and cover the whole document.
type BlockTable struct {
	doc    *Document
	blocks []Block
}

// Document returns the partitioned document.
func (t *BlockTable) Document() *Document {
	return t.doc
}

// Len returns the number of blocks.
func (t *BlockTable) Len() int {
	return len(t.blocks)
}

// At returns the i-th block.
func (t *BlockTable) At(i int) Block {
	return t.blocks[i]
}

// Blocks returns the blocks in document order. The returned slice must not
// be modified.
func (t *BlockTable) Blocks() []Block {
	return t.blocks
}

// Restore concatenates every block's backing slice in order. For a valid
// table this reproduces the document text exactly.
func (t *BlockTable) Restore() string {
	var sb strings.Builder
	sb.Grow(t.doc.Len())
	for _, b := range t.blocks {
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// Validate checks the partition invariant: non-empty, strictly increasing,
// contiguous spans whose union is [0, document length).
func (t *BlockTable) Validate() error {
	cursor := 0
	for i, b := range t.blocks {
		if b.Chars.Start != cursor {
			return fmt.Errorf("block %d (%s) starts at %d, want %d", i, b.Subtype, b.Chars.Start, cursor)
		}
		if b.Chars.End <= b.Chars.Start {
			return fmt.Errorf("block %d (%s) has empty span %s", i, b.Subtype, b.Chars)
		}
		cursor = b.Chars.End
	}
	if cursor != t.doc.Len() {
		return fmt.Errorf("partition covers [0,%d), document has %d bytes", cursor, t.doc.Len())
	}
	return nil
}
