package types

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable category a caller can branch on to pick the message
// it shows. Callers should never match on Message.
type ErrorKind string

// Parse error kinds
const (
	ErrIO                         ErrorKind = "IO_ERROR"
	ErrUnverifiablePaymentRequest ErrorKind = "UNVERIFIABLE_PAYMENT_REQUEST"
	ErrInvalidPaymentRequest      ErrorKind = "INVALID_PAYMENT_REQUEST"
	ErrInvalidAddress             ErrorKind = "INVALID_ADDRESS"
	ErrInvalidURI                 ErrorKind = "INVALID_URI"
	ErrInvalidTransaction         ErrorKind = "INVALID_TRANSACTION"
	ErrUnclassifiable             ErrorKind = "UNCLASSIFIABLE"
)

// ParseError is the single failure value handed to a sink.
//
// Message carries the lower-level detail text. Input echoes the offending
// text or declared MIME type for the kinds where the original input is what
// a caller needs to render (INVALID_URI, INVALID_ADDRESS, UNCLASSIFIABLE).
type ParseError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message,omitempty"`
	Input   string    `json:"input,omitempty"`
	Cause   error     `json:"-"`
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Message != "" && e.Input != "":
		return fmt.Sprintf("%s: %s (input %q)", e.Kind, e.Message, e.Input)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Input != "":
		return fmt.Sprintf("%s: %q", e.Kind, e.Input)
	default:
		return string(e.Kind)
	}
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewParseError builds a ParseError whose message is taken from cause.
func NewParseError(kind ErrorKind, input string, cause error) *ParseError {
	pe := &ParseError{Kind: kind, Input: input, Cause: cause}
	if cause != nil {
		pe.Message = cause.Error()
	}
	return pe
}

// IsKind reports whether err is (or wraps) a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of a structured parse error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return ""
	}
	return pe.Kind
}
