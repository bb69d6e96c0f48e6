package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeBadRequest          ErrorType = "BAD_REQUEST"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeConflict            ErrorType = "CONFLICT"
	ErrorTypeUnauthenticated     ErrorType = "UNAUTHENTICATED"
	ErrorTypeDeliveryFailure     ErrorType = "DELIVERY_FAILURE"
	ErrorTypeRateLimited         ErrorType = "RATE_LIMITED"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

// TypedError is implemented by every error the HTTP layer knows how to present.
type TypedError interface {
	error
	ErrorType() ErrorType
	Status() int
}

// AppError carries a client-facing message, its taxonomy type and optional
// extension fields rendered next to the message.
type AppError struct {
	Message    string
	Type       ErrorType
	Extensions map[string]interface{}
	cause      error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) ErrorType() ErrorType { return e.Type }

func (e *AppError) Unwrap() error { return e.cause }

// Is reports equality by type and message so that wrapped copies of the
// predefined errors still match them.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

func (e *AppError) Status() int {
	switch e.Type {
	case ErrorTypeBadRequest:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Wrap returns a copy of e that records cause for server-side logging.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

func NewTypedError(message string, code ErrorType, extraExtensions map[string]interface{}) *AppError {
	extensions := map[string]interface{}{}
	for k, v := range extraExtensions {
		extensions[k] = v
	}

	return &AppError{
		Message:    message,
		Type:       code,
		Extensions: extensions,
	}
}

func InternalServerError(message string, args ...any) error {
	return ErrSomethingWentWrong.Wrap(fmt.Errorf(message, args...))
}

// AsTypedError unwraps err to the first TypedError in its chain.
func AsTypedError(err error) (TypedError, bool) {
	var typed TypedError
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}
