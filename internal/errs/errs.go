// Package errs defines coded errors so the process exit code can distinguish
// bad input from a run that failed partway.
package errs

import (
	"errors"
	"fmt"
	"io"

	"github.com/praxis-labs/praxis/internal/branding"
)

// Code classifies an error for exit-code mapping and log filtering.
type Code string

const (
	// CodeUsage covers malformed invocations: missing arguments, bad flags.
	CodeUsage Code = "usage"
	// CodeUnknownExercise is a requested identifier the catalog has no entry for.
	CodeUnknownExercise Code = "unknown-exercise"
	// CodeCatalog is a defect in the catalog itself: parse failure, schema
	// violation, predecessor cycle, unregistered template.
	CodeCatalog Code = "catalog"
	// CodeConflict is a workspace whose marker does not match the expected
	// state and no overwrite approval was available.
	CodeConflict Code = "conflict"
	// CodeWorkspace is an I/O failure while touching workspace files.
	CodeWorkspace Code = "workspace"
	// CodeRender is a failure producing artifact bytes.
	CodeRender Code = "render"
	// CodeToolchain is a failed external collaborator invocation.
	CodeToolchain Code = "toolchain"
	// CodeConfig is a failure reading or writing the user config file.
	CodeConfig Code = "config"
	// CodeInterrupted is a run cancelled by signal or closed input.
	CodeInterrupted Code = "interrupted"
)

// Error carries a code alongside the message and optional cause.
type Error struct {
	Code  Code
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns a coded error wrapping a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode maps an error to the process exit status. Usage errors and
// unknown identifiers exit 2 so callers can tell bad input from a run
// that failed partway (exit 1).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CodeOf(err) {
	case CodeUsage, CodeUnknownExercise:
		return 2
	default:
		return 1
	}
}

// Print writes a one-line error report suitable for stderr.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s: %v\n", branding.CLIName(), err)
}
