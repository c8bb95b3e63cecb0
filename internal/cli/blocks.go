package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chemscan/chemscan/internal/ui/pretty"
	"github.com/chemscan/chemscan/pkg/export"
	"github.com/chemscan/chemscan/pkg/mode"
	"github.com/chemscan/chemscan/pkg/pattern"
	"github.com/chemscan/chemscan/pkg/scan"
)

type blocksFlags struct {
	modeName    string
	format      string
	kind        string
	subtype     string
	contains    []string
	notContains []string
}

func newBlocksCommand() *cobra.Command {
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks <input>",
		Short: "Partition an output file and list its blocks",
		Long: `Partition an output file and print its block table.

Each row carries the block's type, subtype, character span, and line span,
in document order. Filters narrow the listing without re-indexing: the
remaining rows keep their original positions.

Examples:
  chemscan blocks run.out                              # styled table
  chemscan blocks run.out --format csv                 # machine-readable
  chemscan blocks run.out --subtype BlockOrcaTimings
  chemscan blocks run.out --contains "SCF" --not-contains "WARNING"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.modeName, "mode", "orca", "extraction mode")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, csv, json")
	cmd.Flags().StringVar(&flags.kind, "type", "", "filter by top-level type: Block, Spacer")
	cmd.Flags().StringVar(&flags.subtype, "subtype", "", "filter by exact subtype name")
	cmd.Flags().StringSliceVar(&flags.contains, "contains", nil, "require substrings in the block text")
	cmd.Flags().StringSliceVar(&flags.notContains, "not-contains", nil, "require substrings to be absent")

	return cmd
}

func runBlocks(cmd *cobra.Command, input string, flags *blocksFlags) error {
	m, err := mode.DefaultRegistry.Load(flags.modeName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	table, err := m.Partition(scan.NewDocument(string(content)))
	if err != nil {
		return err
	}

	kind := pattern.TopLevelType(flags.kind)
	if flags.kind != "" && !kind.IsValid() {
		return fmt.Errorf("unknown type %q (want Block or Spacer)", flags.kind)
	}

	filter := scan.Filter{
		Type:        kind,
		Subtype:     flags.subtype,
		Contains:    flags.contains,
		NotContains: flags.notContains,
	}
	rows := export.RowsOf(table.Filter(filter))

	out := cmd.OutOrStdout()
	switch flags.format {
	case "csv":
		return export.WriteCSV(out, rows)
	case "json":
		return export.WriteJSON(out, rows)
	case "table":
		colorMode, _ := cmd.Flags().GetString("color")
		styles := pretty.NewStyles(pretty.ColorEnabled(colorMode, out))
		formatter := pretty.NewTableFormatter(styles, terminalWidth(out))
		_, err := fmt.Fprint(out, formatter.FormatTable(rows))
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, csv, or json)", flags.format)
	}
}

// terminalWidth returns the width of the terminal behind w, or 0 when w is
// not a terminal.
func terminalWidth(w any) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
