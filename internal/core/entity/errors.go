package entity

import "errors"

var (
	// ErrNotFound is returned when an update or delete references an id
	// that is not in the collection.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a created record's id collides with
	// an existing record.
	ErrDuplicate = errors.New("duplicate record id")
)
