package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique name is already taken.
	ErrDuplicate = errors.New("record already exists")
	// ErrInvalid is returned for records that fail validation before hitting
	// the database.
	ErrInvalid = errors.New("invalid record")
)
