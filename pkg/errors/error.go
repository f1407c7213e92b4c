// Package errors provides coded errors for the backtest engine and the
// parameter sweep.
//
// Codes are grouped by concern:
//   - 1-99: unknown
//   - 100-199: invalid parameters, periods, configuration and versions
//   - 200-299: market data lookup and queries
//   - 300-399: indicator calculation
//   - 400-499: strategy configuration and decisions
//   - 500-599: execution adapter and positions
//   - 600-699: backtest engine and state
//   - 800-899: lifecycle callbacks
//   - 900-999: sweep, ranking and result table
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidGrid, "range %s has no values", name)
//
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", cause)
//
//	if errors.HasCode(err, errors.ErrCodeEmptySweep) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error carrying an ErrorCode and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New returns an Error without a cause.
func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns an Error with the given code wrapping cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("[%d %s] %s", e.Code, e.Code, e.Message)
	if e.Cause == nil {
		return prefix
	}

	return prefix + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the outermost *Error in err's chain, or
// ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var coded *Error
	if !errors.As(err, &coded) {
		return ErrCodeUnknown
	}

	return coded.Code
}

// HasCode reports whether the outermost *Error in err's chain has code.
// Codes of errors wrapped further down are not considered.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError reports that a data set is shorter than the warm-up
// an indicator needs before producing its first value.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

// NewInsufficientDataErrorf returns an InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *InsufficientDataError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("insufficient data: required %d, got %d", e.Required, e.Actual)
}

// Missing is the number of additional bars needed.
func (e *InsufficientDataError) Missing() int {
	return max(e.Required-e.Actual, 0)
}

// IsInsufficientDataError reports whether err's chain contains an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
