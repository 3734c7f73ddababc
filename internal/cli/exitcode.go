package cli

import (
	"errors"
	"fmt"

	"github.com/avivsinai/inboxview/internal/export"
)

// Exit codes returned by inboxview.
const (
	// ExitSuccess covers normal runs and "nothing to show" outcomes: no
	// export root, no matching conversation, index out of range.
	ExitSuccess = 0

	// ExitError indicates a general error, including a malformed export.
	ExitError = 1

	// ExitUsage indicates invalid arguments or flags were provided.
	ExitUsage = 2

	// ExitNotFound indicates the export directory itself does not exist.
	ExitNotFound = 3

	// ExitTimeout indicates -follow stopped at its -timeout.
	ExitTimeout = 4
)

// ExitCodeError wraps an error with a specific exit code.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess (0) if err is nil.
// Returns the wrapped code if err is or wraps an *ExitCodeError.
// Returns ExitError (1) for all other errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// WithExitCode wraps an error with a specific exit code.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitCodeError{Code: code, Err: err}
}

// UsageError creates an error with ExitUsage code.
func UsageError(format string, args ...any) error {
	return &ExitCodeError{
		Code: ExitUsage,
		Err:  fmt.Errorf(format, args...),
	}
}

// NotFoundError creates an error with ExitNotFound code.
func NotFoundError(format string, args ...any) error {
	return &ExitCodeError{
		Code: ExitNotFound,
		Err:  fmt.Errorf(format, args...),
	}
}

// TimeoutError creates an error with ExitTimeout code.
func TimeoutError(format string, args ...any) error {
	return &ExitCodeError{
		Code: ExitTimeout,
		Err:  fmt.Errorf(format, args...),
	}
}

// nothingToShow reports whether err only means the export has no
// conversation to print: no export root, no matching shard, or an -index
// past the last match.
func nothingToShow(err error) bool {
	var rangeErr *export.IndexOutOfRangeError
	return errors.Is(err, export.ErrNoExport) ||
		errors.Is(err, export.ErrNoMatch) ||
		errors.As(err, &rangeErr)
}

// pipelineExit attaches the exit code for a failed pipeline run. Nothing to
// show exits ExitSuccess with the message on stdout. Errors that already carry
// a code keep it; everything else, a malformed export included, is ExitError.
func pipelineExit(err error) error {
	if err == nil {
		return nil
	}
	if nothingToShow(err) {
		return WithExitCode(ExitSuccess, err)
	}
	return err
}
