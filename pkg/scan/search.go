package scan

import (
	"strings"

	"github.com/chemscan/chemscan/pkg/pattern"
)

// Filter selects blocks from a table. Zero-value fields are skipped; the
// remaining criteria are ANDed together.
type Filter struct {
	// Type restricts matches to one top-level type.
	Type pattern.TopLevelType

	// Subtype restricts matches to an exact subtype name.
	Subtype string

	// Contains requires every listed substring to appear in the block text.
	Contains []string

	// NotContains requires every listed substring to be absent.
	NotContains []string
}

// Filter returns the blocks matching f, in table order.
func (t *BlockTable) Filter(f Filter) []Block {
	var out []Block
	for _, b := range t.blocks {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

func (f Filter) matches(b Block) bool {
	if f.Type != "" && b.Type != f.Type {
		return false
	}
	if f.Subtype != "" && b.Subtype != f.Subtype {
		return false
	}
	if len(f.Contains) > 0 || len(f.NotContains) > 0 {
		text := b.Text()
		for _, s := range f.Contains {
			if !strings.Contains(text, s) {
				return false
			}
		}
		for _, s := range f.NotContains {
			if strings.Contains(text, s) {
				return false
			}
		}
	}
	return true
}
