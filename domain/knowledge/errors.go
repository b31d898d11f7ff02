package knowledge

import (
	"errors"
	"fmt"
)

// Sentinel errors for the knowledge search domain.
var (
	// ErrInvalidQuery indicates a query that fails validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrPermissionDenied indicates a file or directory that could not
	// be read due to filesystem permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupportedFormat indicates a file format no extractor backend
	// can decode.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// QueryError describes why a query was rejected. It carries a stable
// machine-readable code alongside the human-readable message so callers
// can surface both without parsing error strings.
type QueryError struct {
	code    string
	message string
}

// NewQueryError creates a QueryError with the given code and message.
func NewQueryError(code, message string) *QueryError {
	return &QueryError{code: code, message: message}
}

// Code returns the stable machine-readable error code.
func (e *QueryError) Code() string {
	return e.code
}

// Message returns the human-readable error message.
func (e *QueryError) Message() string {
	return e.message
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap marks every QueryError as an ErrInvalidQuery.
func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}

// Well-known query rejection codes.
const (
	CodeEmptyKeywords     = "empty_keywords"
	CodeInvalidKeywords   = "invalid_keywords"
	CodeEmptyFilePatterns = "empty_file_patterns"
	CodeDirectoryNotFound = "directory_not_found"
	CodeNotADirectory     = "not_a_directory"
	CodeSearchFailed      = "search_failed"
)
