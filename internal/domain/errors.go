package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so expected I/O and service errors
// are distinguishable from programming errors.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindExtraction ErrorKind = "extraction"
	KindImage      ErrorKind = "image"
	KindAPI        ErrorKind = "api"
	KindIO         ErrorKind = "io"
	KindConfig     ErrorKind = "config"
)

// Error is a typed pipeline error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// ValidationError creates a validation error.
func ValidationError(msg string, cause error) *Error {
	return newError(KindValidation, msg, cause)
}

// ExtractionError creates a document extraction error.
func ExtractionError(msg string, cause error) *Error {
	return newError(KindExtraction, msg, cause)
}

// ImageError creates an image decoding/processing error.
func ImageError(msg string, cause error) *Error {
	return newError(KindImage, msg, cause)
}

// APIError creates a remote service error.
func APIError(msg string, cause error) *Error {
	return newError(KindAPI, msg, cause)
}

// IOError creates a filesystem error.
func IOError(msg string, cause error) *Error {
	return newError(KindIO, msg, cause)
}

// ConfigError creates a configuration error.
func ConfigError(msg string, cause error) *Error {
	return newError(KindConfig, msg, cause)
}

// KindOf returns the kind of err if it is a pipeline Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
