package repositories

import "errors"

var (
	// ErrNotFound is returned by deletes that matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate wraps unique constraint violations.
	ErrDuplicate = errors.New("duplicate record")
)
