// Package apperror defines the domain errors shared by every layer of the site.
//
// Services and clients return these; only the handler package knows how they
// map onto HTTP status codes (see handler/response.go).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream unavailable")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // human-readable message, safe to show to a visitor
	Field   string // optional: which input field was rejected
	Status  int    // optional: upstream HTTP status for ErrUpstream
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized is returned when credentials are missing or wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Upstream reports a failed call to a third-party API. status is the HTTP
// status the upstream returned, or 0 when the request never completed.
func Upstream(service string, status int, cause error) *AppError {
	msg := fmt.Sprintf("%s request failed", service)
	switch {
	case status != 0:
		msg = fmt.Sprintf("%s returned status %d", service, status)
	case cause != nil:
		msg = fmt.Sprintf("%s request failed: %v", service, cause)
	}
	return &AppError{
		Err:     ErrUpstream,
		Message: msg,
		Status:  status,
	}
}
