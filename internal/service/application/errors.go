package application

import "errors"

// Sentinel errors for the application service layer.
var (
	// ErrNotFound means no application matches the given identifier.
	ErrNotFound = errors.New("application not found")

	// ErrDuplicateID means the store's unique index rejected a generated
	// application identifier. Identifier generation is probabilistic;
	// callers surface this as a conflict, never as an impossibility.
	ErrDuplicateID = errors.New("application id already exists")
)
