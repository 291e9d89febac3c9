package common

import (
	"errors"
	"fmt"
)

// Code classifies an Error so callers can decide how to surface it.
type Code string

const (
	CodeValidation           Code = "validation"
	CodeInvalidLength        Code = "invalid_length"
	CodeChecksumMismatch     Code = "checksum_mismatch"
	CodeDuplicateApplication Code = "duplicate_application"
	CodeNotFound             Code = "not_found"
	CodeStoreUnavailable     Code = "store_unavailable"
	CodeInvalidTransition    Code = "invalid_transition"
	CodeForbidden            Code = "forbidden"
	CodeUnauthorized         Code = "unauthorized"
	CodeRateLimited          Code = "rate_limited"
)

// Error is the application error carried from repositories up to handlers.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NewValidationError reports per-field problems with user input.
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// Is reports whether any error in err's chain is an *Error with the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" when there is none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
