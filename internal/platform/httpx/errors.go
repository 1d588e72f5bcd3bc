// Package httpx provides HTTP response utilities.
package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	detail := ""
	if status != http.StatusInternalServerError {
		detail = err.Error()
	}
	Problem(w, status, http.StatusText(status), detail)
}

// StatusFor returns the HTTP status matching err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, shared.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized), errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage extracts a message that is safe to show to an administrator.
// Internal failures collapse into a generic message; the result is a catalog
// key that views translate.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	switch StatusFor(err) {
	case http.StatusNotFound:
		return "The requested record was not found."
	case http.StatusBadRequest:
		return "Some filters are invalid."
	case http.StatusForbidden, http.StatusUnauthorized:
		return "You are not allowed to view this page."
	case http.StatusGatewayTimeout:
		return "The request took too long. Please try again."
	default:
		return "Something went wrong while loading data."
	}
}
