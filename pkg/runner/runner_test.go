package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemscan/chemscan/pkg/mode"
	"github.com/chemscan/chemscan/pkg/render"
)

const orcaFixture = `                                 Program Version 5.0.3 -  RELEASE  -

-------------------------
FINAL SINGLE POINT ENERGY      -113.982432138
-------------------------
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "job.out", orcaFixture)
	output := filepath.Join(dir, "job.html")

	result, err := Run(context.Background(), Options{
		Inputs:   []string{input},
		Output:   output,
		ModeName: "orca",
		HTML:     render.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Files, 1)
	assert.Equal(t, input, result.Files[0].Input)
	assert.Equal(t, output, result.Files[0].Output)
	assert.Positive(t, result.Files[0].Blocks)

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
	assert.Contains(t, string(page), `data-energy-eh="-113.982432138"`)
	assert.Contains(t, string(page), "<title>job.out</title>")
}

func TestRun_MultipleFilesKeepInputOrder(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()

	var inputs []string
	for _, name := range []string{"c.out", "a.out", "b.out"} {
		inputs = append(inputs, writeFixture(t, dir, name, orcaFixture))
	}

	result, err := Run(context.Background(), Options{
		Inputs:   inputs,
		OutDir:   outDir,
		ModeName: "orca",
		Jobs:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Converted)
	require.Len(t, result.Files, 3)
	for i, outcome := range result.Files {
		assert.Equal(t, inputs[i], outcome.Input)
		require.NoError(t, outcome.Err)
	}

	assert.FileExists(t, filepath.Join(outDir, "c.html"))
	assert.FileExists(t, filepath.Join(outDir, "a.html"))
	assert.FileExists(t, filepath.Join(outDir, "b.html"))
}

func TestRun_UnknownModeFailsBeforeConversion(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "job.out", orcaFixture)

	_, err := Run(context.Background(), Options{
		Inputs:   []string{input},
		ModeName: "vasp",
	})
	require.Error(t, err)

	var unknown *mode.UnknownModeError
	require.ErrorAs(t, err, &unknown)
}

func TestRun_MissingInputIsPerFileFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.out", orcaFixture)
	missing := filepath.Join(dir, "missing.out")

	result, err := Run(context.Background(), Options{
		Inputs:   []string{good, missing},
		OutDir:   dir,
		ModeName: "orca",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Files, 2)
	require.NoError(t, result.Files[0].Err)
	require.Error(t, result.Files[1].Err)
	assert.Contains(t, result.Files[1].Err.Error(), "read input")
}

func TestRun_NoInputs(t *testing.T) {
	result, err := Run(context.Background(), Options{ModeName: "orca"})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Converted)
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "job.out", orcaFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		Inputs:   []string{input},
		OutDir:   dir,
		ModeName: "orca",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "explicit output for single input",
			input: "run.out",
			opts:  Options{Inputs: []string{"run.out"}, Output: "custom.html"},
			want:  "custom.html",
		},
		{
			name:  "explicit output ignored for multiple inputs",
			input: "a/run.out",
			opts:  Options{Inputs: []string{"a/run.out", "a/other.out"}, Output: "custom.html"},
			want:  filepath.Join("a", "run.html"),
		},
		{
			name:  "out dir with extension stripped",
			input: "a/run.out",
			opts:  Options{Inputs: []string{"a/run.out"}, OutDir: "www"},
			want:  filepath.Join("www", "run.html"),
		},
		{
			name:  "no extension",
			input: "a/output",
			opts:  Options{Inputs: []string{"a/output"}, OutDir: "www"},
			want:  filepath.Join("www", "output.html"),
		},
		{
			name:  "defaults beside the input",
			input: "a/run.out",
			opts:  Options{Inputs: []string{"a/run.out"}},
			want:  filepath.Join("a", "run.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.input, tt.opts))
		})
	}
}
