// Package render projects a BlockTable into HTML fragments and assembles
// full HTML documents. Rendering is lossless: stripping every added tag and
// unescaping entities from the concatenated fragments reproduces the source
// document byte for byte. Extracted values are exposed only through data
// attributes so they never leak into the text content.
package render

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/chemscan/chemscan/pkg/pattern"
	"github.com/chemscan/chemscan/pkg/scan"
)

// Renderer turns one block's backing slice into an HTML fragment.
type Renderer interface {
	Fragment(b scan.Block) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(b scan.Block) string

func (f RendererFunc) Fragment(b scan.Block) string {
	return f(b)
}

// Table maps subtype names to renderers. Subtypes without a specialized
// entry fall back to a default per top-level type. A Table is built at
// startup and read-only afterwards.
type Table struct {
	byName map[string]Renderer
	block  Renderer
	spacer Renderer
}

// NewTable creates a renderer table with the default block and spacer
// renderers installed as fallbacks.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]Renderer),
		block:  RendererFunc(defaultBlockFragment),
		spacer: RendererFunc(spacerFragment),
	}
}

// With registers a specialized renderer for a subtype and returns the table
// for chaining during mode construction.
func (t *Table) With(subtype string, r Renderer) *Table {
	t.byName[subtype] = r
	return t
}

// For resolves the renderer for a block.
func (t *Table) For(b scan.Block) Renderer {
	if r, ok := t.byName[b.Subtype]; ok {
		return r
	}
	if b.Type == pattern.TypeSpacer {
		return t.spacer
	}
	return t.block
}

// Fragments renders every block in table order.
func Fragments(bt *scan.BlockTable, rt *Table) []string {
	out := make([]string, 0, bt.Len())
	for _, b := range bt.Blocks() {
		out = append(out, rt.For(b).Fragment(b))
	}
	return out
}

func defaultBlockFragment(b scan.Block) string {
	return fmt.Sprintf("<div class=\"block\" data-subtype=%q><pre>%s</pre></div>",
		html.EscapeString(b.Subtype), html.EscapeString(b.Text()))
}

func spacerFragment(b scan.Block) string {
	return "<pre class=\"spacer\">" + html.EscapeString(b.Text()) + "</pre>"
}

// WithCaption returns a renderer that wraps the default block fragment and
// attaches extracted values as data attributes on the enclosing div. The
// extract function may return nil when the block text does not carry the
// expected value; the fragment then degrades to the default one.
func WithCaption(extract func(text string) map[string]string) Renderer {
	return RendererFunc(func(b scan.Block) string {
		var attrs strings.Builder
		if values := extract(b.Text()); len(values) > 0 {
			for _, k := range sortedKeys(values) {
				fmt.Fprintf(&attrs, " data-%s=%q", k, html.EscapeString(values[k]))
			}
		}
		return fmt.Sprintf("<div class=\"block\" data-subtype=%q%s><pre>%s</pre></div>",
			html.EscapeString(b.Subtype), attrs.String(), html.EscapeString(b.Text()))
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
