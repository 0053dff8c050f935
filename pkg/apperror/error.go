package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP code.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConfiguration Kind = "configuration"
	KindRateLimit     Kind = "rate_limit"
	KindInvalidState  Kind = "invalid_state"
	KindIntegration   Kind = "integration"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindInternal      Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
		Err:     err,
	}
}

func newKind(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return newKind(KindValidation, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return newKind(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return newKind(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return newKind(KindNotFound, http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return newKind(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// Validation is returned for bad input shape or range (past datetimes, missing rejection reason).
func Validation(message string) *AppError {
	return BadRequest(message)
}

// Configuration is returned when an external service has no credentials. Not retried.
func Configuration(message string, err error) *AppError {
	return newKind(KindConfiguration, http.StatusServiceUnavailable, message, err)
}

// RateLimited means an upstream quota was exceeded; the caller should retry later.
func RateLimited(message string, err error) *AppError {
	return newKind(KindRateLimit, http.StatusTooManyRequests, message, err)
}

// InvalidState is returned when an operation is illegal for the entity's current state.
func InvalidState(message string) *AppError {
	return newKind(KindInvalidState, http.StatusConflict, message, nil)
}

// Integration wraps unclassified failures of external collaborators.
func Integration(message string, err error) *AppError {
	return newKind(KindIntegration, http.StatusBadGateway, message, err)
}

// KindOf reports the Kind of err, or KindInternal for errors that are not AppErrors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindInvalidState
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusServiceUnavailable:
		return KindConfiguration
	case http.StatusBadGateway:
		return KindIntegration
	default:
		return KindInternal
	}
}
