// Package errors provides a lightweight structured error type (TimerError)
// for category-based classification in the tool dispatcher and CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a tasktimer error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Tool dispatch errors
	CategoryTool ErrorCategory = "tool"

	// Persistence errors
	CategoryStorage ErrorCategory = "storage"
	CategoryHistory ErrorCategory = "history"

	// Runtime and infrastructure errors
	CategoryServer   ErrorCategory = "server"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// TimerError is a structured error with category, severity and context
type TimerError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for TimerError
type ContextFields map[string]any

// Error implements the error interface
func (e *TimerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *TimerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *TimerError) WithContext(key string, value any) *TimerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new TimerError
func New(category ErrorCategory, severity ErrorSeverity, message string) *TimerError {
	return &TimerError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new TimerError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *TimerError {
	return &TimerError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the first TimerError in err's chain.
func As(err error) (*TimerError, bool) {
	var te *TimerError
	if stdErrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if te, ok := As(err); ok {
		return te.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a TimerError
func GetCategory(err error) ErrorCategory {
	if te, ok := As(err); ok {
		return te.Category
	}
	return CategoryInternal
}

// UserMessage returns the text shown to a tool caller: the bare message for
// a TimerError, err.Error() for anything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if te, ok := As(err); ok {
		return te.Message
	}
	return err.Error()
}
