package utils

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// ErrorKind classifies failures surfaced to API callers.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindFulfillment
)

// AppError carries a caller-safe message. Err holds the underlying cause and
// is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusCode maps the kind onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewFulfillmentError(message string, details map[string]any, cause error) *AppError {
	return &AppError{Kind: KindFulfillment, Message: message, Details: details, Err: cause}
}

func NewInternalError(cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: cause}
}

// AsAppError unwraps err into an AppError, treating anything unknown as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
