package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap them with context using fmt.Errorf("...: %w", err), and the API
// layer maps them to HTTP responses with errors.Is().

var (
	// ErrNotFound signifies that a requested resource could not be located, or
	// that it belongs to another user. Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller may not perform the action.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error on the server. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
