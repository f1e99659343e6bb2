package lua

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrUnknownOption is raised by vim.set and vim.get for names that are
	// not settings.
	ErrUnknownOption = errors.New("unknown option")
)
