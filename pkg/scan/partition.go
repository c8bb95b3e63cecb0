package scan

import (
	"fmt"
	"regexp"

	"github.com/chemscan/chemscan/pkg/pattern"
)

// Partitioner scans a document once against a mode's expanded pattern tree
// and produces a BlockTable. It holds no per-document state, so a single
// Partitioner is safe for concurrent use across documents.
type Partitioner struct {
	mode   string
	leaves []*pattern.Spec
}

// NewPartitioner flattens the expanded tree into its pre-order, depth-first
// leaf sequence. That sequence is the match priority: earlier leaves win
// ties at equal start offsets.
func NewPartitioner(mode string, root *pattern.Group) *Partitioner {
	return &Partitioner{mode: mode, leaves: root.Leaves()}
}

// candidate caches one leaf's earliest match at or after the last cursor it
// was searched from. A cached match is reusable while its start has not been
// passed by the cursor.
type candidate struct {
	start, end int
	matched    bool
	searched   bool
}

// Partition splits the document into a total, non-overlapping sequence of
// blocks. At every cursor position the leaf with the earliest line-anchored
// match wins; ties on the start offset go to the earlier-declared leaf. The
// cursor always advances to the end of the emitted block, which guarantees
// termination.
//
// It fails with *UnmatchedRegionError when no leaf claims a non-empty prefix
// of the remaining text, and with *InvalidPatternError when the winning
// match is empty.
func (p *Partitioner) Partition(doc *Document) (*BlockTable, error) {
	table := &BlockTable{doc: doc}
	if doc.Len() == 0 {
		return table, nil
	}

	memo := make([]candidate, len(p.leaves))
	cursor := 0

	for cursor < doc.Len() {
		best := -1
		for i := range p.leaves {
			c := &memo[i]
			if !c.searched || (c.matched && c.start < cursor) {
				c.start, c.end, c.matched = findLineAnchored(doc, p.leaves[i].Regexp, cursor)
				c.searched = true
			}
			if !c.matched {
				continue
			}
			if c.start == cursor {
				// Nothing can start earlier, and later leaves lose the tie.
				best = i
				break
			}
			if best < 0 || c.start < memo[best].start {
				best = i
			}
		}

		if best < 0 || memo[best].start > cursor {
			return nil, &UnmatchedRegionError{Offset: cursor, Line: doc.LineOf(cursor), Mode: p.mode}
		}

		win := memo[best]
		leaf := p.leaves[best]
		if win.end == win.start {
			return nil, &InvalidPatternError{Subtype: leaf.Subtype, Offset: cursor}
		}

		table.blocks = append(table.blocks, Block{
			Index:   len(table.blocks),
			Type:    leaf.Type,
			Subtype: leaf.Subtype,
			Chars:   CharSpan{Start: win.start, End: win.end},
			Lines:   lineSpanOf(doc, win.start, win.end),
			doc:     doc,
		})
		cursor = win.end
		memo[best].searched = false
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("mode %q: partition invariant violated: %w", p.mode, err)
	}
	return table, nil
}

// findLineAnchored returns the earliest match of re at or after from whose
// start lies on a line boundary. Matches beginning mid-line are skipped and
// the search resumes at the following line start.
func findLineAnchored(doc *Document, re *regexp.Regexp, from int) (start, end int, ok bool) {
	pos := from
	if !doc.isLineStart(pos) {
		pos = doc.nextLineStart(pos)
	}
	text := doc.Text()
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return 0, 0, false
		}
		s, e := pos+loc[0], pos+loc[1]
		if doc.isLineStart(s) {
			return s, e, true
		}
		next := doc.nextLineStart(s)
		if next <= pos {
			// No line start remains past the skipped match; rescanning the
			// same position would loop forever on empty-capable patterns.
			return 0, 0, false
		}
		pos = next
	}
	return 0, 0, false
}

// lineSpanOf computes the 1-based line span for [start, end): the starting
// line plus the number of newlines inside the span.
func lineSpanOf(doc *Document, start, end int) LineSpan {
	first := doc.LineOf(start)
	newlines := 0
	text := doc.Text()
	for i := start; i < end; i++ {
		if text[i] == '\n' {
			newlines++
		}
	}
	return LineSpan{Start: first, End: first + newlines}
}
