package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates a unique constraint violation on the
	// users email column.
	ErrDuplicateEmail = errors.New("email address already registered")
)
