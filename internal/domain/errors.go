package domain

import "errors"

// ErrMissingCodeBlock means an argument that should have contained a
// delimited code block did not. The error reporter turns it into the
// fixed "use backticks" help message.
var ErrMissingCodeBlock = errors.New("missing code block")

// ExecutionError marks a command that ran and failed, as opposed to one
// that could not be invoked at all. It selects the acknowledgment
// controller's failure path instead of the generic error reporter.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }

func (e *ExecutionError) Unwrap() error { return e.Err }
