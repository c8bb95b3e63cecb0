// Package export projects a BlockTable into flat rows for CSV and JSON
// output. Row order always equals block order.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chemscan/chemscan/pkg/scan"
)

// previewLimit caps the Ref column width.
const previewLimit = 60

// Row is the tabular projection of one block.
type Row struct {
	// Index is the block's position in the table.
	Index int `json:"index"`

	// Type is the top-level classification.
	Type string `json:"type"`

	// Subtype names the pattern that claimed the block.
	Subtype string `json:"subtype"`

	// Ref is a short reference to the block content: its first non-blank
	// line, truncated.
	Ref string `json:"ref"`

	// CharStart and CharEnd are the half-open byte span.
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`

	// LineStart and LineEnd are the 1-based line span.
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`
}

// Rows projects every block of the table, in order.
func Rows(t *scan.BlockTable) []Row {
	return RowsOf(t.Blocks())
}

// RowsOf projects an arbitrary block selection, e.g. a filtered one. Blocks
// keep the index they had in their table.
func RowsOf(blocks []scan.Block) []Row {
	out := make([]Row, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Row{
			Index:     b.Index,
			Type:      string(b.Type),
			Subtype:   b.Subtype,
			Ref:       preview(b.Text()),
			CharStart: b.Chars.Start,
			CharEnd:   b.Chars.End,
			LineStart: b.Lines.Start,
			LineEnd:   b.Lines.End,
		})
	}
	return out
}

// preview returns the first non-blank line of text, truncated to at most
// previewLimit bytes on a rune boundary.
func preview(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return truncateRunes(line, previewLimit)
	}
	return ""
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

// WriteCSV writes the rows with a header record.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"index", "type", "subtype", "ref",
		"char_start", "char_end", "line_start", "line_end",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Index),
			r.Type,
			r.Subtype,
			r.Ref,
			strconv.Itoa(r.CharStart),
			strconv.Itoa(r.CharEnd),
			strconv.Itoa(r.LineStart),
			strconv.Itoa(r.LineEnd),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
