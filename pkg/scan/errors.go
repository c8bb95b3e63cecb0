package scan

import "fmt"

// UnmatchedRegionError reports that no pattern claimed a non-empty prefix of
// the remaining text. It indicates a configuration gap for the mode/input
// combination; re-parsing would fail identically, so it is never retried.
type UnmatchedRegionError struct {
	// Offset is the cursor position no pattern could claim.
	Offset int

	// Line is the 1-based line number at Offset.
	Line int

	// Mode names the mode whose patterns were tried.
	Mode string
}

func (e *UnmatchedRegionError) Error() string {
	return fmt.Sprintf("mode %q: no pattern matches at offset %d (line %d)", e.Mode, e.Offset, e.Line)
}

// InvalidPatternError reports a pattern that matched a zero-length span,
// which would stall the scan.
type InvalidPatternError struct {
	// Subtype names the offending pattern.
	Subtype string

	// Offset is the position of the empty match.
	Offset int
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("pattern %q matched an empty span at offset %d", e.Subtype, e.Offset)
}
