// Package errors defines the categorized error type used across the
// comparator. Every terminal, user-visible condition (unreadable upload,
// unresolvable column concept, empty target month) is represented as a
// ComparatorError carrying a category, a stable code, a suggestion and
// contextual key/value pairs, so the CLI can render a helpful message and
// pick a meaningful exit code.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryResolve       ErrorCategory = "resolve"
	CategoryPeriod        ErrorCategory = "period"
	CategoryExport        ErrorCategory = "export"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileUnreadable ErrorCode = "file_unreadable"

	// Resolve errors
	CodeMissingColumn ErrorCode = "missing_column"

	// Period errors
	CodeEmptyPeriod ErrorCode = "empty_period"

	// Export errors
	CodeExportFailed ErrorCode = "export_failed"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ComparatorError is the base error type for all application errors
type ComparatorError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *ComparatorError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *ComparatorError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *ComparatorError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryResolve, CategoryPeriod:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryExport, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *ComparatorError) WithContext(key string, value interface{}) *ComparatorError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ComparatorError) WithSuggestion(suggestion string) *ComparatorError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ComparatorError
func New(category ErrorCategory, code ErrorCode, message string) *ComparatorError {
	return &ComparatorError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ComparatorError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ComparatorError {
	if err == nil {
		return nil
	}

	return &ComparatorError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Specific error constructors

// FileError creates a file-related error for an uploaded workbook
func FileError(code ErrorCode, path string, err error) *ComparatorError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	case CodeFileUnreadable:
		message = fmt.Sprintf("file could not be read as a spreadsheet: %s", path)
		suggestion = "verify the file is a valid .xlsx workbook and not corrupted"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *ComparatorError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// MissingColumnError reports that a required column concept could not be
// resolved in the named table. The concept is the logical keyword (e.g. the
// SKU keyword), not a literal header string.
func MissingColumnError(table, concept string) *ComparatorError {
	return New(CategoryResolve, CodeMissingColumn,
		fmt.Sprintf("could not find a '%s' column in the %s table", concept, table)).
		WithSuggestion(fmt.Sprintf("ensure the %s file has a header containing '%s' (punctuation is ignored)", table, concept)).
		WithContext("table", table).
		WithContext("concept", concept)
}

// EmptyPeriodError reports that the month filter left no expense rows
func EmptyPeriodError(month int) *ComparatorError {
	return New(CategoryPeriod, CodeEmptyPeriod,
		fmt.Sprintf("no expense rows found for month %d", month)).
		WithSuggestion("check the expense file dates or choose a different --month").
		WithContext("month", month)
}

// ExportError creates an export-related error
func ExportError(path string, err error) *ComparatorError {
	return Wrap(err, CategoryExport, CodeExportFailed,
		fmt.Sprintf("failed to write report: %s", path)).
		WithSuggestion("check that the output directory exists and is writable").
		WithContext("output_path", path)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(setting string, value interface{}, err error) *ComparatorError {
	message := fmt.Sprintf("invalid configuration for '%s': %v", setting, value)

	var result *ComparatorError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, CodeInvalidConfig, message)
	} else {
		result = New(CategoryConfiguration, CodeInvalidConfig, message)
	}

	return result.
		WithSuggestion("check the flag or configuration file value").
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error
func InternalError(operation string, err error) *ComparatorError {
	return Wrap(err, CategoryInternal, CodeUnexpectedError,
		fmt.Sprintf("unexpected error during %s", operation)).
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// Utility functions

// IsComparatorError checks if an error is a ComparatorError
func IsComparatorError(err error) bool {
	_, ok := err.(*ComparatorError)
	return ok
}

// AsComparatorError extracts a ComparatorError from an error chain
func AsComparatorError(err error) (*ComparatorError, bool) {
	var comparatorErr *ComparatorError
	if errors.As(err, &comparatorErr) {
		return comparatorErr, true
	}
	return nil, false
}

// IsMissingColumn reports whether err is a missing-column condition
func IsMissingColumn(err error) bool {
	if ce, ok := AsComparatorError(err); ok {
		return ce.Code == CodeMissingColumn
	}
	return false
}

// IsEmptyPeriod reports whether err is an empty-period condition
func IsEmptyPeriod(err error) bool {
	if ce, ok := AsComparatorError(err); ok {
		return ce.Code == CodeEmptyPeriod
	}
	return false
}

// WrapIfNeeded wraps an error if it's not already a ComparatorError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *ComparatorError {
	if err == nil {
		return nil
	}

	if comparatorErr, ok := AsComparatorError(err); ok {
		return comparatorErr
	}

	return Wrap(err, category, code, message)
}

// FormatContext renders the context map as a comma-separated string for log
// fields and verbose output.
func FormatContext(ctx Context) string {
	if len(ctx) == 0 {
		return ""
	}

	var parts []string
	for key, value := range ctx {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}
	return strings.Join(parts, ", ")
}
