package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error; it decides the HTTP status.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindAlreadyExists Kind = "already_exists"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidState  Kind = "invalid_state"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindIntegrity     Kind = "integrity_violation"
	KindUnexpected    Kind = "unexpected"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// ErrBusiness builds an invalid-data error identified only by its code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalidData, Code: code}
}

func New(kind Kind, code, format string, args ...any) error {
	return BusinessError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(code, format string, args ...any) error {
	return New(KindNotFound, code, format, args...)
}

func ErrAlreadyExists(code, format string, args ...any) error {
	return New(KindAlreadyExists, code, format, args...)
}

func ErrInvalidData(code, format string, args ...any) error {
	return New(KindInvalidData, code, format, args...)
}

func ErrInvalidState(code, format string, args ...any) error {
	return New(KindInvalidState, code, format, args...)
}

func ErrForbidden(code, format string, args ...any) error {
	return New(KindForbidden, code, format, args...)
}

func ErrUnauthorized(code, format string, args ...any) error {
	return New(KindUnauthorized, code, format, args...)
}

// ErrIntegrity wraps a storage constraint failure. The cause is kept for
// logging and never rendered to clients.
func ErrIntegrity(code string, cause error) error {
	return BusinessError{
		Kind:    KindIntegrity,
		Code:    code,
		Message: "a database constraint violation occurred",
		Err:     cause,
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnexpected
}
