package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *TimerError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file is invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *TimerError {
	return New(CategoryValidation, SeverityWarning, fmt.Sprintf("%s %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Tool errors

func UnknownTool(name string) *TimerError {
	return New(CategoryTool, SeverityWarning, "Unknown tool: "+name).
		WithContext("tool", name)
}

func ToolPanic(name string, recovered any) *TimerError {
	return New(CategoryInternal, SeverityError, fmt.Sprint(recovered)).
		WithContext("tool", name)
}

// Persistence errors

func StorageFailed(operation, path string, cause error) *TimerError {
	return Wrap(cause, CategoryStorage, SeverityWarning, "timer store "+operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func HistoryFailed(operation string, cause error) *TimerError {
	return Wrap(cause, CategoryHistory, SeverityWarning, "history journal "+operation+" failed").
		WithContext("operation", operation)
}

// Runtime errors

func ServerFailed(cause error) *TimerError {
	return Wrap(cause, CategoryServer, SeverityFatal, "tool server stopped")
}

func InternalError(message string, cause error) *TimerError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
