package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTransport indicates the backend could not be reached.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeUnauthorized indicates the backend rejected the credentials (HTTP 401).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeRejected indicates a business or validation rejection from the backend (other 4xx).
	ErrCodeRejected ErrorCode = "rejected"
	// ErrCodeUpstream indicates the backend failed (5xx).
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeMalformed indicates a response or persisted value that does not decode.
	ErrCodeMalformed ErrorCode = "malformed"
	// ErrCodeValidation indicates invalid form input caught before calling the backend.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the backend HTTP status when the error came from a response (optional)
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transport creates a new Transport error wrapping a network failure.
func Transport(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: "Unable to reach the server. Please try again.",
		Cause:   cause,
	}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// Rejected creates a new Rejected error for a 4xx response.
func Rejected(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRejected,
		Message: message,
		Status:  status,
	}
}

// Upstream creates a new Upstream error for a 5xx response.
func Upstream(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: message,
		Status:  status,
	}
}

// Malformed creates a new Malformed error.
func Malformed(message string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformed,
		Message: message,
		Cause:   cause,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// FromStatus maps a non-2xx backend status to the matching error code.
// The message is the backend's own message when it provided one.
func FromStatus(status int, message string) *AppError {
	switch {
	case status == 401:
		if message == "" {
			message = "Your session has expired. Please sign in again."
		}
		return &AppError{Code: ErrCodeUnauthorized, Message: message, Status: status}
	case status >= 500:
		if message == "" {
			message = "The server encountered an error. Please try again later."
		}
		return Upstream(status, message)
	default:
		if message == "" {
			message = fmt.Sprintf("Request was rejected (%d).", status)
		}
		return Rejected(status, message)
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isCode(err, ErrCodeUnauthorized)
}

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstream)
}

// IsMalformed checks if an error is a Malformed error.
func IsMalformed(err error) bool {
	return isCode(err, ErrCodeMalformed)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// UserMessage returns the message safe to show on a page. Errors that are not
// AppErrors get a generic message so internals never leak.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
