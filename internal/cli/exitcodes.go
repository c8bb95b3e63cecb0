package cli

import (
	"errors"

	"github.com/chemscan/chemscan/pkg/mode"
	"github.com/chemscan/chemscan/pkg/pattern"
	"github.com/chemscan/chemscan/pkg/scan"
)

// Exit codes for chemscan.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseError indicates a document could not be partitioned.
	ExitParseError = 1

	// ExitInvalidUsage indicates invalid command-line usage, including an
	// unknown mode name.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a malformed mode configuration.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var configErr *pattern.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	var unknownMode *mode.UnknownModeError
	if errors.As(err, &unknownMode) {
		return ExitInvalidUsage
	}

	var unmatched *scan.UnmatchedRegionError
	if errors.As(err, &unmatched) {
		return ExitParseError
	}

	var invalid *scan.InvalidPatternError
	if errors.As(err, &invalid) {
		return ExitParseError
	}

	return ExitInternalError
}
