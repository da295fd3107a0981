package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeCacheCorrupt      = "CACHE_CORRUPT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Configuration errors. The chunk and threshold ones are fatal at startup
// only; ErrNoDocumentStore surfaces when an upload is attempted without an
// object store configured.
var (
	ErrMissingDatabaseURL = NewDomainError(ErrCodeConfiguration, "database URL must be set")
	ErrInvalidChunkConfig = NewDomainError(ErrCodeConfiguration, "chunk size must be greater than overlap and overlap must be non-negative")
	ErrInvalidThreshold   = NewDomainError(ErrCodeConfiguration, "threshold must be between 0 and 1")
	ErrNoDocumentStore    = NewDomainError(ErrCodeConfiguration, "document uploads require an object store")
)

// Validation errors
var (
	ErrInvalidTicketStatus = NewDomainError(ErrCodeValidation, "invalid ticket status")
	ErrEmptyMessage        = NewDomainError(ErrCodeValidation, "message text must not be empty")
)

// Not found errors
var (
	ErrSessionNotFound = NewDomainError(ErrCodeNotFound, "session not found")
	ErrTicketNotFound  = NewDomainError(ErrCodeNotFound, "ticket not found")
)

// Knowledge-layer errors. Both are degradations, never fatal: a missing
// source is skipped and a corrupt cache is treated as a cache miss.
var (
	ErrSourceUnavailable = NewDomainError(ErrCodeSourceUnavailable, "document source is missing")
	ErrCacheCorrupt      = NewDomainError(ErrCodeCacheCorrupt, "index cache artifact could not be loaded")
)
