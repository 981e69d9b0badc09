package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The transport layer maps each kind to a
// status code.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInUse      Kind = "in_use"
	KindInternal   Kind = "internal"
)

// Error is the only error type the service returns. Message is safe to show
// to a user; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a service error, or KindInternal for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalid(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func notFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func inUse(message string) *Error {
	return &Error{Kind: KindInUse, Message: message}
}

func internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: "failed to " + op, Err: err}
}
