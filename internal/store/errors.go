package store

import "errors"

var (
	// ErrInvalidDatabase indicates one of the required tables is missing.
	ErrInvalidDatabase = errors.New("store: database is missing required tables")

	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidIdentifier indicates a table or column name that is not a
	// plain SQL identifier.
	ErrInvalidIdentifier = errors.New("store: invalid identifier")
)
