package apperr

import "errors"

var (
	// ErrNotFound marks a legitimate empty result (missing profile, no
	// matching transaction). Handlers render it as an empty state, not as
	// a backend failure.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a hard uniqueness/constraint conflict.
	ErrConflict = errors.New("conflict")

	// ErrStaleStatus means a conditional status update matched zero rows:
	// another session changed the record since it was read.
	ErrStaleStatus = errors.New("status changed since read")

	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)
