// Package runner converts multiple output files concurrently. Documents are
// independent, so conversion parallelizes at one document per worker with no
// cross-document coordination.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/chemscan/chemscan/pkg/fsutil"
	"github.com/chemscan/chemscan/pkg/mode"
	"github.com/chemscan/chemscan/pkg/render"
	"github.com/chemscan/chemscan/pkg/scan"
)

// Options configure a conversion run.
type Options struct {
	// Inputs are the files to convert.
	Inputs []string

	// Output is the destination path when converting a single input.
	Output string

	// OutDir receives one .html file per input when converting several.
	OutDir string

	// ModeName selects the extraction mode.
	ModeName string

	// Jobs is the worker count; 0 means one per CPU.
	Jobs int

	// HTML controls document assembly.
	HTML render.Options

	// Registry resolves the mode; nil uses the default registry.
	Registry *mode.Registry
}

// FileOutcome is the result of converting one input file.
type FileOutcome struct {
	// Input is the source path.
	Input string

	// Output is the written document path, empty on failure.
	Output string

	// Blocks is the number of blocks extracted.
	Blocks int

	// Err holds the conversion failure, if any.
	Err error
}

// Result aggregates a whole run. Files preserves input order regardless of
// worker completion order.
type Result struct {
	Files     []FileOutcome
	Converted int
	Failed    int
}

// Run converts every input with a bounded worker pool. The mode is resolved
// once up front; an unknown mode fails the whole run before any file is
// read.
func Run(ctx context.Context, opts Options) (*Result, error) {
	registry := opts.Registry
	if registry == nil {
		registry = mode.DefaultRegistry
	}
	m, err := registry.Load(opts.ModeName)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(opts.Inputs))}
	if len(opts.Inputs) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(opts.Inputs) {
		jobs = len(opts.Inputs)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, m, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range opts.Inputs {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(opts.Inputs))
	for outcome := range outCh {
		outcomes[outcome.Input] = outcome
	}

	for _, path := range opts.Inputs {
		if outcome, ok := outcomes[path]; ok {
			result.Files = append(result.Files, outcome)
			if outcome.Err != nil {
				result.Failed++
			} else {
				result.Converted++
			}
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, m *mode.Mode, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := convertOne(ctx, path, m, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func convertOne(ctx context.Context, path string, m *mode.Mode, opts Options) FileOutcome {
	outcome := FileOutcome{Input: path}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Err = fmt.Errorf("read input: %w", err)
		return outcome
	}

	doc := scan.NewDocument(string(content))
	table, err := m.Partition(doc)
	if err != nil {
		outcome.Err = fmt.Errorf("partition %s: %w", path, err)
		return outcome
	}

	htmlOpts := opts.HTML
	if htmlOpts.Title == "" {
		htmlOpts.Title = filepath.Base(path)
	}
	page := render.Page(table, m.Renderers, htmlOpts)

	out := outputPath(path, opts)
	if err := fsutil.WriteAtomic(ctx, out, []byte(page), 0); err != nil {
		outcome.Err = fmt.Errorf("write output: %w", err)
		return outcome
	}

	outcome.Output = out
	outcome.Blocks = table.Len()
	return outcome
}

// outputPath picks the destination for one input: the explicit Output for a
// single-file run, otherwise <OutDir>/<input base>.html.
func outputPath(input string, opts Options) string {
	if opts.Output != "" && len(opts.Inputs) == 1 {
		return opts.Output
	}
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+".html")
}
