package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewAuthenticationRequired signals that no identity could be resolved for the caller.
func NewAuthenticationRequired(message string) error {
	return NewDomainError("AUTHENTICATION_REQUIRED", message, http.StatusUnauthorized, nil)
}

// NewAuthorizationDenied signals a resolved identity with an insufficient role.
func NewAuthorizationDenied(message string) error {
	return NewDomainError("AUTHORIZATION_DENIED", message, http.StatusForbidden, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewStoreError wraps a failed read or write against the data store.
func NewStoreError(operation string, err error) error {
	return &DomainError{
		Code:       "STORE_OPERATION_FAILED",
		Message:    fmt.Sprintf("store operation failed: %s", operation),
		HTTPStatus: http.StatusInternalServerError,
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

// IsAuthenticationRequired reports whether err carries the AUTHENTICATION_REQUIRED code.
func IsAuthenticationRequired(err error) bool {
	return hasCode(err, "AUTHENTICATION_REQUIRED")
}

// IsAuthorizationDenied reports whether err carries the AUTHORIZATION_DENIED code.
func IsAuthorizationDenied(err error) bool {
	return hasCode(err, "AUTHORIZATION_DENIED")
}

func hasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
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
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
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
