// Package cli provides the Cobra command structure for chemscan.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chemscan/chemscan/internal/logging"
	"github.com/chemscan/chemscan/pkg/mode"
	"github.com/chemscan/chemscan/pkg/pattern"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root chemscan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string
	var modeFiles []string

	rootCmd := &cobra.Command{
		Use:   "chemscan",
		Short: "Convert computational-chemistry output into typed, positioned blocks",
		Long: `chemscan partitions plain-text output of computational-chemistry
programs (ORCA, GPAW) into an ordered sequence of typed, positioned blocks.

The block sequence can be inspected as a table, exported as CSV or JSON,
or rendered into a standalone HTML document with per-block fragments.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			return registerModeFiles(modeFiles)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringSliceVar(&modeFiles, "modes-file", nil,
		"additional mode configuration files to register")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newBlocksCommand())
	rootCmd.AddCommand(newModesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// registerModeFiles loads user-supplied mode configurations into the
// default registry before any subcommand runs.
func registerModeFiles(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read mode file: %w", err)
		}
		f, err := pattern.DecodeFile(data)
		if err != nil {
			return err
		}
		if err := mode.DefaultRegistry.RegisterFile(f, nil); err != nil {
			return err
		}
		logging.Default().Debug("registered mode",
			logging.FieldMode, f.Mode,
			logging.FieldPath, path,
		)
	}
	return nil
}
