// Package errors provides standardized error handling for the adjustment
// intake pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseDeleteFailed     ErrorCode = "DATABASE_DELETE_FAILED"
	ErrCodeDatabaseQueryFailed      ErrorCode = "DATABASE_QUERY_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeRouteNotFound    ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return New(ErrCodeValidationFailed, "request payload validation failed", details)
}

// NewConfigurationError reports a required environment value that is unset.
// It is raised before any I/O is attempted against the missing target.
func NewConfigurationError(key string) *StandardError {
	return New(ErrCodeConfigurationMissing,
		fmt.Sprintf("required configuration %s is not set", key), "")
}

// NewPersistenceError wraps a storage failure with its underlying cause text.
func NewPersistenceError(code ErrorCode, op string, cause error) *StandardError {
	return New(code, fmt.Sprintf("storage operation %s failed", op), cause.Error())
}

// NewNotificationError wraps an email transport failure.
func NewNotificationError(cause error) *StandardError {
	return New(ErrCodeNotificationSendFailed, "notification email send failed", cause.Error())
}

// CodeOf extracts the ErrorCode from err, or empty string for foreign errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// PublicMessage renders the message reported to the caller: the sanitized
// message with the raw cause text appended. Acceptable for an internal tool;
// hardening item for anything public-facing.
func PublicMessage(err error) string {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		if stdErr.Details != "" {
			return fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)
		}
		return stdErr.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the response status used by the router's
// failure boundary. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
