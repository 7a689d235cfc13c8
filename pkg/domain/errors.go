package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Callers branch on these with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamError       = errors.New("upstream error")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// DomainError is a classified failure carrying a human-readable message.
type DomainError struct {
	Err     error
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewValidationError reports a malformed request payload.
func NewValidationError(message string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: message}
}

// NewNotFoundError reports that the named resource does not exist, e.g. "user"
// or "league or team".
func NewNotFoundError(what string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: what + " not found"}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(message string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewUpstreamUnavailableError reports that a remote service did not answer in time.
func NewUpstreamUnavailableError(service string, cause error) *DomainError {
	return &DomainError{Err: ErrUpstreamUnavailable, Message: service + " unavailable", Cause: cause}
}

// NewUpstreamError reports that a remote service answered with a failure.
func NewUpstreamError(service, message string) *DomainError {
	return &DomainError{Err: ErrUpstreamError, Message: service + ": " + message}
}

// NewStoreUnavailableError wraps a persistence failure.
func NewStoreUnavailableError(cause error) *DomainError {
	return &DomainError{Err: ErrStoreUnavailable, Message: "store unavailable", Cause: cause}
}

// IsNotFound reports whether err is classified as ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusCode maps an error to a stable numeric status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstreamError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code maps an error to a stable string classification.
func Code(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, ErrUpstreamError):
		return "UPSTREAM_ERROR"
	case errors.Is(err, ErrStoreUnavailable):
		return "STORE_UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}

// Message returns the client-facing message for err. Unclassified errors are
// not leaked to callers.
func Message(err error) string {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Message
	}
	return "internal error"
}
