// Package errors defines the coded errors shared by the CLI and the HTTP
// API.
//
// Every failure a user can act on carries a [Code]. Codes group into a
// [Class], which decides the CLI exit status and the HTTP status:
//
//	err := errors.New(errors.ErrCodeInvalidDiagram, "duplicate component id %q", id)
//	errors.ClassOf(err) == errors.ClassValidation
//
// Relationships that cannot be routed are not errors. They come back as
// failed route results with a warning.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDiagram   Code = "INVALID_DIAGRAM"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeCancelled   Code = "CANCELLED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Class groups codes by how a caller should react to them.
type Class int

const (
	ClassInternal    Class = iota // bug or environment failure; also uncoded errors
	ClassValidation               // the input is wrong and must be fixed
	ClassNotFound                 // a named file or resource does not exist
	ClassUnsupported              // valid input asking for something not implemented
	ClassCancelled                // the caller gave up
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:     ClassValidation,
	ErrCodeInvalidDiagram:   ClassValidation,
	ErrCodeInvalidPlacement: ClassValidation,
	ErrCodeInvalidFormat:    ClassValidation,
	ErrCodeInvalidConfig:    ClassValidation,
	ErrCodeInvalidPath:      ClassValidation,
	ErrCodeNotFound:         ClassNotFound,
	ErrCodeFileNotFound:     ClassNotFound,
	ErrCodeUnsupported:      ClassUnsupported,
	ErrCodeCancelled:        ClassCancelled,
	ErrCodeInternal:         ClassInternal,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// ClassOf classifies err by its code. Uncoded errors are internal.
func ClassOf(err error) Class {
	return classes[GetCode(err)]
}

// IsValidation reports whether err is the caller's fault.
func IsValidation(err error) bool {
	return ClassOf(err) == ClassValidation
}

// UserMessage returns the message of a coded error without its code, or
// err's text otherwise.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
