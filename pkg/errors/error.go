// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Data errors (200-299): Malformed bars, empty series, data source failures
//   - Indicator errors (300-399): Indicator lookup and calculation errors
//   - Strategy errors (400-499): Strategy lookup and parameter errors
//   - Ledger errors (500-599): Position and cash bookkeeping errors
//   - Backtest errors (600-699): Engine setup and run errors
//   - Analytics errors (700-799): Usage errors such as an empty equity curve
//   - Callback errors (800-899): Lifecycle callback failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeEmptyEquityCurve) { ... }
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError reports a calculation that needs more values than
// it was given, such as an indicator shorter than its period.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

// NewInsufficientDataErrorf creates an InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// Unwrap exposes the coded error so HasCode(err, ErrCodeInsufficientData) holds.
func (e *InsufficientDataError) Unwrap() error {
	return New(ErrCodeInsufficientData, e.Message)
}

// BarValidationError reports the first bar of a series that failed validation.
type BarValidationError struct {
	Index  int
	Time   time.Time
	Reason string
}

// NewBarValidationError creates a BarValidationError for the bar at index.
func NewBarValidationError(index int, t time.Time, format string, args ...any) *BarValidationError {
	return &BarValidationError{
		Index:  index,
		Time:   t,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *BarValidationError) Error() string {
	return fmt.Sprintf("[%d] invalid bar at index %d (%s): %s",
		ErrCodeInvalidBar, e.Index, e.Time.Format(time.RFC3339), e.Reason)
}

// Unwrap exposes the coded error so HasCode(err, ErrCodeInvalidBar) holds.
func (e *BarValidationError) Unwrap() error {
	return New(ErrCodeInvalidBar, e.Reason)
}

// GetBarIndex returns the failing bar index if err carries a BarValidationError.
func GetBarIndex(err error) (int, bool) {
	var barErr *BarValidationError
	if errors.As(err, &barErr) {
		return barErr.Index, true
	}

	return -1, false
}
