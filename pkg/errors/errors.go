// Package errors augments the standard errors package
// with an error type that can wrap a cause after construction,
// so sentinel errors declared in status packages can carry
// context without resorting to fmt.Errorf("%w", err).
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New creates an Error with a fixed message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error with an optional wrapped cause.
type Error struct {
	msg string
	err error
}

// Error message. The wrapped cause, if any, is appended.
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

// Unwrap the nested cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a cause under this error. A new Error value is returned, so
// sentinels declared at package level are never mutated.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// Is reports whether this error or its cause matches target.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return other.msg == e.msg
	}
	return stderr.Is(e.err, target)
}

// As is a shortcut to the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is is a shortcut to the standard library errors.Is.
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
