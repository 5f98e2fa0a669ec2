// Package apperr classifies domain errors so the HTTP boundary can map each
// failure to a status code without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: malformed or out-of-range input.
	KindValidation
	// KindAuthentication: no or invalid session.
	KindAuthentication
	// KindAuthorization: authenticated but not permitted.
	KindAuthorization
	// KindNotFound: referenced entity absent.
	KindNotFound
	// KindConflict: violates a uniqueness or state invariant.
	KindConflict
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

func Authenticationf(format string, args ...any) *Error {
	return &Error{kind: KindAuthentication, msg: fmt.Sprintf(format, args...)}
}

func Authorizationf(format string, args ...any) *Error {
	return &Error{kind: KindAuthorization, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown for errors that did not
// originate in a domain service.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
