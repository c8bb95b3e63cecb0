package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chemscan/chemscan/pkg/export"
	"github.com/chemscan/chemscan/pkg/pattern"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minSubtypeWidth  = 12
	minLocWidth      = 11
	minRefWidth      = 20
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableFormatter formats block rows as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable renders the rows with a header, one line per block.
func (t *TableFormatter) FormatTable(rows []export.Row) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.columnWidths(rows)

	var sb strings.Builder
	sb.WriteString(t.formatHeader(widths))
	sb.WriteByte('\n')
	sb.WriteString(t.styles.Separator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths))))
	sb.WriteByte('\n')

	for _, row := range rows {
		sb.WriteString(t.formatRow(row, widths))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type columnWidths struct {
	index   int
	kind    int
	subtype int
	chars   int
	lines   int
	ref     int
}

func (t *TableFormatter) columnWidths(rows []export.Row) columnWidths {
	w := columnWidths{
		index:   len("IDX"),
		kind:    len("Spacer"),
		subtype: minSubtypeWidth,
		chars:   minLocWidth,
		lines:   minLocWidth,
		ref:     minRefWidth,
	}
	for _, r := range rows {
		w.index = max(w.index, len(fmt.Sprint(r.Index)))
		w.subtype = max(w.subtype, len(r.Subtype))
		w.chars = max(w.chars, len(charsCell(r)))
		w.lines = max(w.lines, len(linesCell(r)))
		w.ref = max(w.ref, len(r.Ref))
	}

	total := t.totalWidth(w)
	if total > t.termWidth {
		w.ref = max(minRefWidth, w.ref-(total-t.termWidth))
	}
	return w
}

func (t *TableFormatter) totalWidth(w columnWidths) int {
	return w.index + w.kind + w.subtype + w.chars + w.lines + w.ref + tablePadding*5
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	return t.styles.Header.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		w.index, "IDX",
		w.kind, "TYPE",
		w.subtype, "SUBTYPE",
		w.chars, "CHARS",
		w.lines, "LINES",
		w.ref, "REF",
	))
}

func (t *TableFormatter) formatRow(r export.Row, w columnWidths) string {
	typeStyle := t.styles.TypeBlock
	if r.Type == string(pattern.TypeSpacer) {
		typeStyle = t.styles.TypeSpacer
	}

	ref := truncateRunes(r.Ref, w.ref)

	return fmt.Sprintf("%-*d  %s  %s  %s  %s  %s",
		w.index, r.Index,
		typeStyle.Render(fmt.Sprintf("%-*s", w.kind, r.Type)),
		t.styles.Subtype.Render(fmt.Sprintf("%-*s", w.subtype, r.Subtype)),
		t.styles.Location.Render(fmt.Sprintf("%-*s", w.chars, charsCell(r))),
		t.styles.Location.Render(fmt.Sprintf("%-*s", w.lines, linesCell(r))),
		t.styles.Ref.Render(ref),
	)
}

// truncateRunes cuts s to at most limit bytes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func charsCell(r export.Row) string {
	return fmt.Sprintf("%d:%d", r.CharStart, r.CharEnd)
}

func linesCell(r export.Row) string {
	return fmt.Sprintf("%d-%d", r.LineStart, r.LineEnd)
}
