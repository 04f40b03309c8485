// Package apperr defines the error kinds shared by the services and the HTTP
// boundary. Match them with errors.Is; the message is safe to show to clients.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email, password or role")
	ErrUnauthenticated    = errors.New("user not authorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)

// Error carries a client-facing message for one of the sentinel kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newf(ErrForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

func Unauthenticated(format string, args ...any) error {
	return newf(ErrUnauthenticated, format, args...)
}

// Message returns the client-facing text of err. Unknown errors yield "".
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	for _, kind := range []error{ErrValidation, ErrDuplicateEmail, ErrInvalidCredentials, ErrUnauthenticated, ErrForbidden, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}
