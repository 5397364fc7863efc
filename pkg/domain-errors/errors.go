// Package domainerrors carries coded errors across layers. Services return
// them, transports map the code to a response, and the message stays safe to
// show to the caller.
package domainerrors

import (
	"errors"
)

// Code classifies a domain error.
type Code string

const (
	// Expected outcomes: rendered as user messages, never treated as faults.
	CodeNotFound       Code = "not_found"
	CodeDuplicateEmail Code = "duplicate_email"
	CodeAlreadyDone    Code = "already_done"
	CodeNotRegistered  Code = "not_registered"
	CodeValidation     Code = "validation_error"
	CodeBadRequest     Code = "bad_request"

	// Operational faults: the operation aborted without partial persistence.
	CodeCorruptData Code = "corrupt_data"
	CodeIOFailure   Code = "io_failure"
	CodeInternal    Code = "internal_error"
)

// Error is a coded domain error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// Is reports whether the outermost coded error in err's chain carries code.
func Is(err error, code Code) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// HasCode reports whether any coded error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message returns the caller-safe message of the outermost coded error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// IsFault reports whether err is an operational fault rather than an
// expected outcome.
func IsFault(err error) bool {
	switch CodeOf(err) {
	case CodeCorruptData, CodeIOFailure, CodeInternal:
		return true
	default:
		return false
	}
}
