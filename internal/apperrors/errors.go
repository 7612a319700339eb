package apperrors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeStructureInvalid  = "STRUCTURE_INVALID"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeParseError        = "PARSE_ERROR"
	CodeColumnAnalysis    = "COLUMN_ANALYSIS_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors

// StructureInvalid reports a table whose structural invariants are broken
// (mismatched column lengths, duplicate names). Fatal to the whole report.
func StructureInvalid(message string) *AppError {
	return New(CodeStructureInvalid, message)
}

// UnsupportedFormat reports a file extension the loader has no reader for
func UnsupportedFormat(ext, supported string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file format: %s. Supported formats: %s", ext, supported))
}

// ParseError reports a file that matched a known format but could not be read
func ParseError(format string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: fmt.Sprintf("error reading %s file", format),
		Cause:   cause,
	}
}

// ColumnAnalysis reports a failure isolated to a single column
func ColumnAnalysis(column string, cause error) *AppError {
	return &AppError{
		Code:    CodeColumnAnalysis,
		Message: fmt.Sprintf("failed to analyze column %q", column),
		Cause:   cause,
	}
}

// InvalidInput reports a caller-supplied input that fails validation
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InternalError reports an unexpected internal failure
func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// IsCode checks whether err is an AppError carrying the given code
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
