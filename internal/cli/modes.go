package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chemscan/chemscan/pkg/mode"
)

func newModesCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List registered extraction modes",
		Long: `List every registered extraction mode. With --verbose, also list each
mode's subtype names in match-priority order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModes(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list subtypes per mode")

	return cmd
}

func runModes(cmd *cobra.Command, verbose bool) error {
	out := cmd.OutOrStdout()
	for _, name := range mode.DefaultRegistry.Names() {
		m, err := mode.DefaultRegistry.Load(name)
		if err != nil {
			return err
		}
		if !verbose {
			fmt.Fprintln(out, name)
			continue
		}
		fmt.Fprintf(out, "%s:\n", name)
		for _, subtype := range m.Subtypes() {
			fmt.Fprintf(out, "  %s\n", subtype)
		}
	}
	return nil
}
