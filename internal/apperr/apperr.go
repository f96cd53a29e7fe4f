// Package apperr defines the error taxonomy shared by services and the API
// layer. Operational errors (validation, conflict, not-found, auth) carry a
// message safe to show the caller; anything unclassified is treated as
// internal and must never leak its details past the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP translation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindForbidden
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// E is a classified application error. Fields is only populated for
// validation errors.
type E struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error // wrapped cause, never shown to the caller
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

// Validation builds a 400-class error with field detail.
func Validation(fields []FieldError) *E {
	return &E{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Conflict builds a 429-class duplicate-submission error.
func Conflict(msg string) *E {
	return &E{Kind: KindConflict, Message: msg}
}

// NotFound builds a 404-class error.
func NotFound(msg string) *E {
	return &E{Kind: KindNotFound, Message: msg}
}

// Auth builds a 401-class error.
func Auth(msg string) *E {
	return &E{Kind: KindAuth, Message: msg}
}

// Forbidden builds a 403-class error.
func Forbidden(msg string) *E {
	return &E{Kind: KindForbidden, Message: msg}
}

// Internal wraps an unclassified error. The message shown to callers is
// always generic; err is kept for server-side logging.
func Internal(err error) *E {
	return &E{Kind: KindInternal, Message: "Something went wrong", Err: err}
}

// From extracts an *E from err, classifying unknown errors as internal.
func From(err error) *E {
	var e *E
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// HTTPStatus maps an error kind to its HTTP status code. Conflicts map to
// 429 (duplicate-submission throttling), matching the public API contract.
func (e *E) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Operational reports whether the error message is safe to surface verbatim.
func (e *E) Operational() bool { return e.Kind != KindInternal }
