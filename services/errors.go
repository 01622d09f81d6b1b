package services

import "errors"

// Code classifies a service failure for the transport layer.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeConflict     Code = "conflict"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal"
)

// Error is the taxonomy every service operation reports through. The
// message is safe to show to the caller.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalidInput(msg string) *Error { return &Error{Code: CodeInvalidInput, Message: msg} }
func conflict(msg string) *Error     { return &Error{Code: CodeConflict, Message: msg} }
func notFound(msg string) *Error     { return &Error{Code: CodeNotFound, Message: msg} }
func internal(msg string) *Error     { return &Error{Code: CodeInternal, Message: msg} }

// CodeOf extracts the taxonomy code from err, defaulting to internal for
// anything the services did not classify (store failures and the like).
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
