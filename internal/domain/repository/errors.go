package repository

import "errors"

var (
	// ErrNotFound signals that the targeted row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate signals a store-level uniqueness violation. Services
	// translate it into the same Conflict their pre-checks produce, so
	// concurrent writers racing past a check still surface one error.
	ErrDuplicate = errors.New("repository: duplicate")
)
