// Package pretty provides Lipgloss-based styled output for block tables.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for CLI output.
type Styles struct {
	Header    lipgloss.Style
	Separator lipgloss.Style

	TypeBlock  lipgloss.Style
	TypeSpacer lipgloss.Style
	Subtype    lipgloss.Style
	Location   lipgloss.Style
	Ref        lipgloss.Style

	Title lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		TypeBlock:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		TypeSpacer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Subtype:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Ref:        lipgloss.NewStyle(),

		Title: lipgloss.NewStyle().Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:     plain,
		Separator:  plain,
		TypeBlock:  plain,
		TypeSpacer: plain,
		Subtype:    plain,
		Location:   plain,
		Ref:        plain,
		Title:      plain,
		Dim:        plain,
	}
}

// ColorEnabled resolves a --color mode ("auto", "always", "never") against
// the writer's terminal status.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
