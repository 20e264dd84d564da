// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrNetworkError = errors.New("network error")
	ErrParseError   = errors.New("failed to parse response")
	ErrExtraction   = errors.New("expected content not found in document")
	ErrIO           = errors.New("output could not be written")
	ErrTimeout      = errors.New("request timeout")
	ErrInvalidURL   = errors.New("invalid URL")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
	ErrCodeExtraction   ErrorCode = "EXTRACTION_ERROR"
	ErrCodeIO           ErrorCode = "IO_ERROR"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
)

var sentinels = map[ErrorCode]error{
	ErrCodeNetworkError: ErrNetworkError,
	ErrCodeParseError:   ErrParseError,
	ErrCodeExtraction:   ErrExtraction,
	ErrCodeIO:           ErrIO,
	ErrCodeTimeout:      ErrTimeout,
	ErrCodeValidation:   ErrInvalidURL,
}

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retry      bool
	StatusCode int
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another EngineError with the same code, or the sentinel for the code
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	if s, ok := sentinels[e.Code]; ok && s == target {
		return true
	}
	return errors.Is(e.Underlying, target)
}

// GetStatusCode exposes the HTTP status for retry classification
func (e *EngineError) GetStatusCode() int {
	return e.StatusCode
}

// Temporary reports whether retrying the operation can help
func (e *EngineError) Temporary() bool {
	return e.Retry
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Retry:      false,
		Details:    make(map[string]interface{}),
	}
}

// NetworkError builds a retryable NETWORK_ERROR
func NetworkError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeNetworkError, message, err).WithRetry()
}

// ParseError builds a PARSE_ERROR
func ParseError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeParseError, message, err)
}

// ExtractionError builds an EXTRACTION_ERROR
func ExtractionError(message string) *EngineError {
	return NewEngineError(ErrCodeExtraction, message, nil)
}

// IOError builds an IO_ERROR
func IOError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeIO, message, err)
}

// WithRetry marks the error as retryable
func (e *EngineError) WithRetry() *EngineError {
	e.Retry = true
	return e
}

// WithStatus records the HTTP status code that caused the error
func (e *EngineError) WithStatus(code int) *EngineError {
	e.StatusCode = code
	return e
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// IsExtraction reports whether err means the upstream layout no longer matches
func IsExtraction(err error) bool {
	return errors.Is(err, ErrExtraction)
}
