package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A derivative check failed or an expression could not be evaluated
	ExitCommandError = 2 // Bad arguments, unreadable files, database errors
)

// ExitError carries the process exit code for a failed command.
// Commands return it from RunE; main maps it to os.Exit via GetExitCode.
type ExitError struct {
	Code    int    // ExitFailure or ExitCommandError
	Message string // What the command was doing
	Err     error  // Underlying error, may be nil
}

// Error returns the message, followed by the wrapped error if there is one.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped error to errors.Is and errors.As, so callers can
// still match dual.ErrDomain or store.ErrRunNotFound through the exit code.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// A nil error is ExitSuccess. Errors that are not an ExitError, such as
// cobra's own argument errors, map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or JSON.
// In JSON mode every command prints exactly one Response line, so output can
// be piped to jq; logs go to stderr through slog.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for command output.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success writes data. In text mode text is printed instead.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprint(f.Writer, text)
	return err
}

// Failure writes data with an error status.
func (f *OutputFormatter) Failure(data any, text, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "error", Data: data, Error: message})
	}
	_, err := fmt.Fprint(f.Writer, text)
	return err
}
