package cli

import (
	"errors"
)

// Exit codes for otvalidate.
const (
	// ExitSuccess indicates every check came out as expected.
	ExitSuccess = 0

	// ExitCheckFailed indicates at least one transformation was not as expected.
	ExitCheckFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitCaseFileError indicates a case file could not be loaded.
	ExitCaseFileError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrCheckFailed is returned when a case or transformation did not match expectations.
	ErrCheckFailed = errors.New("check failed")

	// ErrUsage is returned for malformed flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrCaseFile is returned when a case file cannot be loaded.
	ErrCaseFile = errors.New("case file error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrCaseFile):
		return ExitCaseFileError
	default:
		return ExitInternalError
	}
}
