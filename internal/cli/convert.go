package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chemscan/chemscan/internal/logging"
	"github.com/chemscan/chemscan/pkg/render"
	"github.com/chemscan/chemscan/pkg/runner"
)

type convertFlags struct {
	output     string
	outDir     string
	modeName   string
	jobs       int
	title      string
	noCSS      bool
	noJS       bool
	noTOC      bool
	noComments bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input>...",
		Short: "Convert output files into HTML documents",
		Long: `Convert one or more output files into standalone HTML documents.

A single input may be written to an explicit path with -o; multiple inputs
are written next to their sources or into --out-dir, one .html per input.

Examples:
  chemscan convert run.out                       # run.html next to input
  chemscan convert run.out -o report.html        # explicit output path
  chemscan convert *.out --out-dir html/         # batch conversion
  chemscan convert run.out --mode gpaw           # GPAW output`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (single input only)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for output documents")
	cmd.Flags().StringVar(&flags.modeName, "mode", "orca", "extraction mode: orca, gpaw, or a registered custom mode")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.title, "title", "", "HTML document title")
	cmd.Flags().BoolVar(&flags.noCSS, "no-css", false, "omit the embedded stylesheet")
	cmd.Flags().BoolVar(&flags.noJS, "no-js", false, "omit the embedded script")
	cmd.Flags().BoolVar(&flags.noTOC, "no-toc", false, "omit the table-of-contents sidebar")
	cmd.Flags().BoolVar(&flags.noComments, "no-comments", false, "omit the comment sidebar")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	logger := logging.Default()

	if flags.output != "" && len(args) > 1 {
		return errors.New("-o is only valid with a single input; use --out-dir for batches")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := runner.Options{
		Inputs:   args,
		Output:   flags.output,
		OutDir:   flags.outDir,
		ModeName: flags.modeName,
		Jobs:     flags.jobs,
		HTML: render.Options{
			Title:          flags.title,
			IncludeCSS:     !flags.noCSS,
			IncludeJS:      !flags.noJS,
			TOCSidebar:     !flags.noTOC,
			CommentSidebar: !flags.noComments,
		},
	}

	logger.Debug("starting conversion",
		logging.FieldFiles, len(args),
		logging.FieldMode, flags.modeName,
		logging.FieldJobs, flags.jobs,
	)

	result, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	var firstErr error
	for _, f := range result.Files {
		if f.Err != nil {
			logger.Error("conversion failed",
				logging.FieldInput, f.Input,
				logging.FieldError, f.Err,
			)
			if firstErr == nil {
				firstErr = f.Err
			}
			continue
		}
		logger.Info("converted",
			logging.FieldInput, f.Input,
			logging.FieldOutput, f.Output,
			logging.FieldBlocks, f.Blocks,
		)
	}

	logger.Debug("conversion finished",
		logging.FieldConverted, result.Converted,
		logging.FieldFailed, result.Failed,
	)

	if firstErr != nil {
		return fmt.Errorf("%d of %d files failed: %w", result.Failed, len(result.Files), firstErr)
	}
	return nil
}
