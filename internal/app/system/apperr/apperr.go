// Package apperr defines the error taxonomy the API boundary translates
// internal outcomes into, and its mapping onto HTTP status codes.
//
// The kinds form a closed set. Handlers build errors with the constructors
// below and hand them to httpjson.Error, which writes the status and the
// message verbatim; callers never fabricate their own message for a
// condition a lower layer already described.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status-code mapping.
type Kind int

const (
	// KindInternal is the zero value: store failures and anything
	// unexpected. Details are logged, never returned to the caller.
	KindInternal Kind = iota
	// KindValidation is a missing or malformed required field. Caller
	// error, no retry.
	KindValidation
	// KindNotFound covers a missing entity or a missing chain parent.
	KindNotFound
	// KindForbidden means authenticated but not authorized: a membership
	// or ownership predicate failed.
	KindForbidden
	// KindConflict covers state conflicts such as inviting an existing
	// member or a cross-container reorder batch.
	KindConflict
	// KindUnauthenticated means the bearer credential was missing or
	// invalid.
	KindUnauthenticated
)

// Error carries a kind and a user-visible message.
type Error struct {
	Kind    Kind
	Message string
	// Err is the underlying cause, for logs only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation reports a caller input error.
func Validation(message string) *Error { return New(KindValidation, message) }

// NotFound reports a missing entity or chain parent.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Forbidden reports a failed membership or ownership predicate.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// Conflict reports a state conflict.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Internal wraps an unexpected failure. The message shown to callers is
// generic; cause goes to the logs.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-visible message from err. Non-taxonomy errors
// collapse to a generic message so internals never leak.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
