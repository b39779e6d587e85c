// Package errors defines the uniform error shape every remote call in
// the client surfaces. The backend reports failures as a JSON body with
// a human-readable "detail" string; this package carries that detail
// together with the HTTP status and a stable machine code, so callers
// present one notification per failed action without re-parsing bodies.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// ClientError is the interface for errors surfaced to the presentation
// layer. Every remote failure is normalized into one of these.
type ClientError interface {
	error
	HTTPCode() int     // HTTP status of the failed response, 0 for transport errors
	ErrorCode() string // Stable machine code, e.g. "SESSION_EXPIRED"
	Detail() string    // Human-readable message, server-supplied when available
}

// APIError is the basic ClientError implementation.
type APIError struct {
	httpCode  int
	errorCode string
	detail    string
}

// NewAPIError creates a new APIError.
func NewAPIError(httpCode int, errorCode, detail string) *APIError {
	return &APIError{
		httpCode:  httpCode,
		errorCode: errorCode,
		detail:    detail,
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.detail
}

// HTTPCode returns the HTTP status code of the failed response.
func (e *APIError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the stable machine code.
func (e *APIError) ErrorCode() string {
	return e.errorCode
}

// Detail returns the human-readable message.
func (e *APIError) Detail() string {
	return e.detail
}

// WithDetail returns a copy of the error carrying a different detail
// message. Used to replace an empty server body with the per-endpoint
// fallback text.
func (e *APIError) WithDetail(detail string) *APIError {
	return &APIError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		detail:    detail,
	}
}

// Is matches errors by machine code, so WithDetail copies still compare
// equal to their sentinel under errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)

	return ok && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context.
func (e *APIError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Predefined error values.
var (
	// ErrSessionExpired marks a 401. The HTTP wrapper handles it
	// globally by clearing the stored session; it is never shown as a
	// generic failure.
	ErrSessionExpired = NewAPIError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired. Please log in again.",
	)

	// ErrInvalidListPayload marks a list endpoint returning something
	// other than a JSON array. Callers must degrade to an empty list.
	ErrInvalidListPayload = NewAPIError(
		0,
		"INVALID_LIST_PAYLOAD",
		"Invalid data format received from server",
	)

	// ErrNotAuthenticated marks an operation that needs a token while
	// the session is anonymous.
	ErrNotAuthenticated = NewAPIError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"You must be logged in to perform this action",
	)

	// ErrValidationFailed marks client-side input validation failures,
	// reported before any network call is made.
	ErrValidationFailed = NewAPIError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)

	// ErrSellerOnly marks seller operations attempted by a customer
	// session.
	ErrSellerOnly = NewAPIError(
		http.StatusForbidden,
		"SELLER_ONLY",
		"This action is available to sellers only",
	)
)
