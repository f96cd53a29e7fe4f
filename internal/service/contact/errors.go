package contact

import "errors"

var (
	// ErrNotFound is returned when no message matches the identifier.
	ErrNotFound = errors.New("contact message not found")

	// ErrDuplicateID is returned by repositories when an insert hits the
	// message_id unique index.
	ErrDuplicateID = errors.New("duplicate message id")
)
