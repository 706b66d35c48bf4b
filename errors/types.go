package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// State store errors
	ErrCodeStateRead  ErrorCode = "STATE_READ"
	ErrCodeStateWrite ErrorCode = "STATE_WRITE"

	// Tour errors
	ErrCodeIllegalTransition  ErrorCode = "ILLEGAL_TRANSITION"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_FAILED"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// TourError represents a structured error with context
type TourError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *TourError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TourError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *TourError) WithDetail(key string, value interface{}) *TourError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *TourError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new TourError
func New(code ErrorCode, message string) *TourError {
	return &TourError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TourError
func Wrap(err error, code ErrorCode, message string) *TourError {
	return &TourError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the first TourError in err's chain.
func As(err error) (*TourError, bool) {
	var tourErr *TourError
	if stderrors.As(err, &tourErr) {
		return tourErr, true
	}
	return nil, false
}

// Is reports whether err's chain holds a TourError with code.
func Is(err error, code ErrorCode) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the first TourError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if tourErr, ok := As(err); ok {
		return tourErr.Code
	}
	return ""
}
