package errors

import "errors"

// Sentinel errors shared by the service, conversation and API layers.
// Callers wrap them with fmt.Errorf("...: %w", ...) and the API layer maps
// them to HTTP status codes with errors.Is.

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is returned when client input breaks a business rule,
	// e.g. an empty reply request or an unknown gender value.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation clashes with current state.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission is returned when the caller may not perform an action.
	ErrPermission = errors.New("permission denied")

	// ErrInternal hides implementation details from clients.
	ErrInternal = errors.New("internal server error")

	// ErrUpstream marks a failed exchange with the reply service: transport
	// failure, non-2xx status or an undecodable body.
	ErrUpstream = errors.New("reply service unavailable")

	// ErrNoSession is returned when a request carries no conversation.
	ErrNoSession = errors.New("no conversation bound to request")
)
