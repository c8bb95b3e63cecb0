// Package pattern defines the declarative pattern model for chemscan modes:
// leaf patterns, nested groups, and blueprint templates, plus the expansion
// step that turns a declarative tree into a flat, priority-ordered catalogue
// of compiled patterns.
package pattern

import (
	"regexp"
	"strings"
)

// TopLevelType classifies a pattern at the coarsest level.
type TopLevelType string

const (
	// TypeBlock marks a span of meaningful program output.
	TypeBlock TopLevelType = "Block"

	// TypeSpacer marks a run of blank or whitespace-only lines.
	TypeSpacer TopLevelType = "Spacer"
)

// IsValid reports whether the top-level type is one of the known values.
func (t TopLevelType) IsValid() bool {
	return t == TypeBlock || t == TypeSpacer
}

// Flags control how a pattern source is compiled.
type Flags struct {
	// Multiline makes ^ and $ match at line boundaries.
	Multiline bool

	// DotAll makes . match newlines.
	DotAll bool

	// IgnoreCase makes matching case-insensitive.
	IgnoreCase bool
}

// inlinePrefix renders the flags as a regexp inline group, e.g. "(?ms)".
// Returns the empty string when no flag is set.
func (f Flags) inlinePrefix() string {
	var letters strings.Builder
	if f.Multiline {
		letters.WriteByte('m')
	}
	if f.DotAll {
		letters.WriteByte('s')
	}
	if f.IgnoreCase {
		letters.WriteByte('i')
	}
	if letters.Len() == 0 {
		return ""
	}
	return "(?" + letters.String() + ")"
}

// Compile compiles source with the flags applied as an inline prefix.
func (f Flags) Compile(source string) (*regexp.Regexp, error) {
	return regexp.Compile(f.inlinePrefix() + source)
}

// Spec is one concrete named pattern within a mode. After expansion the
// Regexp field is populated and the value is never mutated again.
type Spec struct {
	// Subtype uniquely names the pattern within its mode.
	Subtype string

	// Type is the top-level classification for blocks this pattern claims.
	Type TopLevelType

	// Source is the uncompiled pattern text as declared.
	Source string

	// Flags are the compile flags declared for this pattern.
	Flags Flags

	// Comment is free-form documentation carried from the configuration.
	Comment string

	// Regexp is the compiled pattern. Nil until expansion.
	Regexp *regexp.Regexp
}

// Variant is one blueprint entry: a subtype name and the literal marker
// fragment substituted between the blueprint's beginning and ending.
type Variant struct {
	Subtype string
	Marker  string
}

// Blueprint is a pattern template shared by multiple subtypes that differ
// only in a literal marker text. Expansion produces one Spec per variant,
// in declaration order, at the blueprint's position in its group.
type Blueprint struct {
	// Beginning and Ending are the shared pattern fragments around the marker.
	Beginning string
	Ending    string

	// Flags apply to every expanded variant.
	Flags Flags

	// Variants are the subtype/marker pairs, in declaration order.
	Variants []Variant
}

// Node is a member of a Group: a *Spec, a *Group, or a *Blueprint.
// After expansion only *Spec and *Group remain.
type Node interface {
	node()
}

func (*Spec) node()      {}
func (*Group) node()     {}
func (*Blueprint) node() {}

// Group is an ordered sequence of members. Declaration order encodes match
// priority: earlier members are tried first, pre-order and depth-first.
type Group struct {
	// Name identifies the group in the configuration tree.
	Name string

	// Members are the ordered children.
	Members []Node
}

// Leaves returns the group's leaf patterns in pre-order, depth-first
// declaration order. It is only meaningful on an expanded tree.
func (g *Group) Leaves() []*Spec {
	var out []*Spec
	g.walk(func(s *Spec) {
		out = append(out, s)
	})
	return out
}

func (g *Group) walk(fn func(*Spec)) {
	for _, m := range g.Members {
		switch n := m.(type) {
		case *Spec:
			fn(n)
		case *Group:
			n.walk(fn)
		case *Blueprint:
			// Unexpanded blueprints carry no leaves.
		}
	}
}
