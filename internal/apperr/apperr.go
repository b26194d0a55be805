// Package apperr carries the error kinds the service layer reports.
// Handlers map a kind to an HTTP status; nothing in here is fatal.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	AccessDenied
	Unauthenticated
	Conflict
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // per-field validation detail, may be nil
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds a Validation error with per-field messages.
func Invalid(msg string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: msg, Fields: fields}
}

// KindOf extracts the kind from err, defaulting to Internal for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
