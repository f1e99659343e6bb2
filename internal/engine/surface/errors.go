package surface

import "errors"

// Errors returned by checked surface operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid text range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrReadOnly indicates an edit was attempted on a read-only surface.
	ErrReadOnly = errors.New("surface is read-only")

	// ErrBadPattern indicates a search pattern failed to compile.
	ErrBadPattern = errors.New("invalid search pattern")
)
