// Package apperr defines the error taxonomy shared by services and handlers.
// Services return *Error values; handlers translate the kind into an HTTP
// status without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindMissingField
	KindDuplicateReference
	KindUnknownReference
	KindInvalidField
	KindAlreadyExists
	KindNotFound
	KindSelfReferenceForbidden
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindDuplicateReference:
		return "duplicate_reference"
	case KindUnknownReference:
		return "unknown_reference"
	case KindInvalidField:
		return "invalid_field"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindSelfReferenceForbidden:
		return "self_reference_forbidden"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

type Error struct {
	Kind  Kind
	Field string // offending field or collection, may be empty
	Msg   string
	Err   error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Field(kind Kind, field, msg string) *Error {
	return &Error{Kind: kind, Field: field, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
