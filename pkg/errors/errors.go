package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorCode represents different types of errors in the system
type ErrorCode string

const (
	// ErrorCodeNetwork indicates a timeout or connection failure
	ErrorCodeNetwork ErrorCode = "NETWORK_ERROR"

	// ErrorCodeAuth indicates unauthorized access
	ErrorCodeAuth ErrorCode = "AUTH_ERROR"

	// ErrorCodeRateLimit indicates the upstream is throttling us
	ErrorCodeRateLimit ErrorCode = "RATE_LIMIT_ERROR"

	// ErrorCodeServer indicates an upstream 5xx failure
	ErrorCodeServer ErrorCode = "SERVER_ERROR"

	// ErrorCodeNotFound indicates a resource was not found
	ErrorCodeNotFound ErrorCode = "NOT_FOUND_ERROR"

	// ErrorCodeUnknown is the default for unclassified failures
	ErrorCodeUnknown ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Context string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether an operation failing with this error is
// worth attempting again. Unknown errors are treated as retryable to
// maximize resilience.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case ErrorCodeAuth, ErrorCodeNotFound:
		return false
	default:
		return true
	}
}

// WithContext returns a copy of the error annotated with the operation
// name that produced it.
func (e *AppError) WithContext(operation string) *AppError {
	clone := *e
	clone.Context = operation
	return &clone
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{Code: ErrorCodeNetwork, Message: message, Err: err}
}

// NewAuthError creates a new authorization error
func NewAuthError(message string) *AppError {
	return &AppError{Code: ErrorCodeAuth, Message: message}
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(message string) *AppError {
	return &AppError{Code: ErrorCodeRateLimit, Message: message}
}

// NewServerError creates a new upstream server error
func NewServerError(message string, err error) *AppError {
	return &AppError{Code: ErrorCodeServer, Message: message, Err: err}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrorCodeNotFound, Message: message}
}

// NewUnknownError creates a new unclassified error
func NewUnknownError(message string, err error) *AppError {
	return &AppError{Code: ErrorCodeUnknown, Message: message, Err: err}
}

// NewInternalError creates a new internal error. Internal failures
// surface with the server error code.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: ErrorCodeServer, Message: message, Err: err}
}

// ClassifyHTTPStatus maps an HTTP status code to an error code
func ClassifyHTTPStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorCodeAuth
	case status == http.StatusNotFound:
		return ErrorCodeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorCodeRateLimit
	case status >= 500:
		return ErrorCodeServer
	default:
		return ErrorCodeUnknown
	}
}

// Classify converts an arbitrary error into an AppError. Errors that
// are already AppErrors pass through unchanged; timeouts and
// connection failures become network errors; everything else is
// unknown.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewNetworkError("operation timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewNetworkError("network failure", err)
	}

	return NewUnknownError("unclassified failure", err)
}
