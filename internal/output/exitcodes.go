package output

import "errors"

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitRemoteError = 3
	ExitConflict    = 4
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError creates an error for local system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewRemoteError wraps a failure reported by the generation service.
// The message is the cause's text, unchanged, so the operator sees exactly
// what the service said.
func NewRemoteError(cause error) *ExitError {
	return &ExitError{Code: ExitRemoteError, Message: cause.Error(), Cause: cause}
}

// NewConflictError creates an error for conflict situations (exit code 4).
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
