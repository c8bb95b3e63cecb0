package render

import (
	"html"
	"strings"

	"github.com/chemscan/chemscan/pkg/scan"
)

// Options control full HTML document assembly.
type Options struct {
	// Title is the document title. Empty falls back to "chemscan".
	Title string

	// IncludeCSS embeds the default stylesheet in a <style> tag.
	IncludeCSS bool

	// IncludeJS embeds the default script in a <script> tag.
	IncludeJS bool

	// TOCSidebar adds the left table-of-contents sidebar container.
	TOCSidebar bool

	// CommentSidebar adds the color-comment sidebar container.
	CommentSidebar bool
}

// DefaultOptions enables every document feature.
func DefaultOptions() Options {
	return Options{
		IncludeCSS:     true,
		IncludeJS:      true,
		TOCSidebar:     true,
		CommentSidebar: true,
	}
}

// Page assembles a standalone HTML document from the table's fragments. The
// content area holds exactly one fragment per block, in table order; the
// sidebars are empty containers populated by the embedded script.
func Page(bt *scan.BlockTable, rt *Table, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "chemscan"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	if opts.IncludeCSS {
		sb.WriteString("<style>\n")
		sb.WriteString(DefaultCSS)
		sb.WriteString("</style>\n")
	}
	sb.WriteString("</head>\n<body>\n<div class=\"container\">\n")

	if opts.TOCSidebar {
		sb.WriteString("<div class=\"sidebar\"><div class=\"toc\"></div></div>\n")
	}
	if opts.CommentSidebar {
		sb.WriteString("<div class=\"comment-sidebar\"></div>\n")
	}

	sb.WriteString("<div class=\"content\">\n")
	for _, frag := range Fragments(bt, rt) {
		sb.WriteString(frag)
		sb.WriteByte('\n')
	}
	sb.WriteString("</div>\n</div>\n")

	if opts.IncludeJS {
		sb.WriteString("<script>\n")
		sb.WriteString(DefaultJS)
		sb.WriteString("</script>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
