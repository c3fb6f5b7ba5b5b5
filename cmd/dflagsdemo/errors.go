package main

import (
	"errors"
	"fmt"

	"github.com/apstndb/dflags"
)

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
	exitCodeUsage   = 2
)

// ExitCodeError carries the exit code for err. A nil err means the failure
// was already reported and only the code matters.
type ExitCodeError struct {
	exitCode int
	err      error
}

func (e *ExitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code: %d", e.exitCode)
	}
	return e.err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.err
}

// NewExitCodeError wraps err with exitCode. It returns nil for exitCodeSuccess.
func NewExitCodeError(exitCode int, err error) error {
	if exitCode == exitCodeSuccess {
		return nil
	}

	return &ExitCodeError{
		exitCode: exitCode,
		err:      err,
	}
}

// GetExitCode returns the appropriate exit code based on the error type.
// An ExitCodeError provides its own code; flag problems, fatal or not, are
// usage errors; anything else is a generic error.
func GetExitCode(err error) int {
	if err == nil {
		return exitCodeSuccess
	}

	var exitCodeErr *ExitCodeError
	if errors.As(err, &exitCodeErr) {
		return exitCodeErr.exitCode
	}

	var (
		unknownErr   *dflags.UnknownFlagError
		ambiguousErr *dflags.AmbiguousFlagError
		missingErr   *dflags.MissingValueError
	)
	if dflags.IsFatal(err) ||
		errors.As(err, &unknownErr) ||
		errors.As(err, &ambiguousErr) ||
		errors.As(err, &missingErr) {
		return exitCodeUsage
	}

	return exitCodeError
}
