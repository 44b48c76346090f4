package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejection without committing to a transport. The API
// layer maps kinds onto HTTP status codes.
type ErrorKind string

const (
	KindInvalid  ErrorKind = "invalid"   // caller must fix the input
	KindNotFound ErrorKind = "not_found" // referenced record does not exist
	KindConflict ErrorKind = "conflict"  // transition precondition failed
)

// Error is a typed rejection raised before any state is mutated.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Invalidf builds a validation error.
func Invalidf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a state-conflict error. Callers should include the current
// status so the other side can reconcile.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification of err, or "" for untyped (storage)
// errors, which propagate unmodified.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return ""
}
