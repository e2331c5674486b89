package errors

import "errors"

var (
	ErrNotFound = errors.New("allocation not found")

	ErrInvalidID = errors.New("invalid allocation ID format")

	ErrTimeConflict = errors.New("allocation window conflicts with an existing allocation")

	ErrInvalidTransition = errors.New("invalid allocation status transition")
)
