package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// FieldError carries a single validation failure message.
type FieldError struct {
	Msg string `json:"msg"`
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Errors     []FieldError
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError batches field errors into a single 400 response.
func NewValidationError(fieldErrors ...FieldError) error {
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    "validation failed",
		HTTPStatus: http.StatusBadRequest,
		Errors:     fieldErrors,
	}
}

// NewInvalidCredentials is deliberately generic: callers must not be able
// to tell a missing account from a wrong password.
func NewInvalidCredentials() error {
	return &DomainError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "invalid credentials",
		HTTPStatus: http.StatusBadRequest,
		Errors:     []FieldError{{Msg: "invalid credentials"}},
	}
}

func NewMissingToken() error {
	return NewDomainError("MISSING_TOKEN", "no token, authorization denied", http.StatusUnauthorized)
}

func NewInvalidToken() error {
	return NewDomainError("INVALID_TOKEN", "token is not valid", http.StatusUnauthorized)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden)
}

func NewAlreadyLiked() error {
	return NewDomainError("ALREADY_LIKED", "post already liked", http.StatusBadRequest)
}

func NewNotLiked() error {
	return NewDomainError("NOT_LIKED", "post has not yet been liked", http.StatusBadRequest)
}

func NewUpstreamUnavailable(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_UNAVAILABLE",
		Message:    "upstream service unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
