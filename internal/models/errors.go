package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates an entity with the same key already exists
	ErrDuplicate = errors.New("duplicate")

	// ErrConflict indicates a guarded update matched no row because the
	// entity is no longer in the expected state
	ErrConflict = errors.New("state conflict")
)
