package cli

import "errors"

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: server errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: A board, column, card or checklist item id that is not on the
	// loaded page, or a 404 from the server.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A page that cannot be parsed or lacks the ids a request needs.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Negative positions, non-numeric ids, blank names, or a request
	// the server rejected as invalid.
	ExitValidation = 5
)

// CodedError carries the exit code a failed command should end with. The
// message has already been shown to the user.
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitError
}
