// Package domainerrors provides coded errors shared across layers. Handlers
// translate codes to HTTP statuses at the boundary; everything below wraps
// with %w and keeps the code intact.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for boundary translation and test assertions.
type Code string

const (
	// CodeValidation marks caller input that fails schema constraints. It is
	// surfaced before any network call is made.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks a request body that could not be decoded at all.
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized marks a missing or invalid caller identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks a missing persisted record.
	CodeNotFound Code = "not_found"
	// CodeTransport marks a network failure, timeout, or non-2xx status from
	// the reservation backend.
	CodeTransport Code = "transport_error"
	// CodeParse marks malformed XML at either parse level. A malformed
	// document is a protocol mismatch worth alerting on, never a default.
	CodeParse Code = "parse_error"
	// CodeMapping marks a backend field that is present but not coercible to
	// its expected type.
	CodeMapping Code = "mapping_error"
	// CodeMissingData marks an expected result element that is absent where a
	// single record was required.
	CodeMissingData Code = "missing_data"
	// CodeInternal is the catch-all for everything else.
	CodeInternal Code = "internal_error"
)

// Error is a coded error. Message is safe to log; handlers decide what the
// caller sees.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error wrapping a cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an error code to the status returned at the boundary.
// Every upstream failure kind collapses to 500 so no protocol diagnostics
// leak to the caller.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTransport, CodeParse, CodeMapping, CodeMissingData, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
