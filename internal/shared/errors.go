package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
	// ErrUnauthenticated occurs when a route needs a signed in admin.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrInvalidFilter occurs when a listing filter cannot be applied.
	ErrInvalidFilter = errors.New("invalid filter")
)
