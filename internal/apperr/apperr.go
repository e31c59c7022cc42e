// Package apperr classifies request failures so the HTTP layer can pick a
// status code without knowing which package produced the error.
package apperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindTooLarge
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// TooLarge reports a request body over the configured size limit.
func TooLarge(msg string) error {
	return &Error{Kind: KindTooLarge, Msg: msg}
}

func IsValidation(err error) bool { return is(err, KindValidation) }

func IsNotFound(err error) bool { return is(err, KindNotFound) }

func IsTooLarge(err error) bool { return is(err, KindTooLarge) }

func is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
