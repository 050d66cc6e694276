package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeLookup            = "LOOKUP_ERROR"
	ErrCodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	ErrCodeCache             = "CACHE_ERROR"
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is an error with a machine-readable code and a message that is
// safe to show to API clients. Err keeps the underlying cause for logs.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrValidation) matches every validation error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports malformed or missing input.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewLookupError reports a food identifier that cannot be resolved.
func NewLookupError(message string) *DomainError {
	return NewDomainError(ErrCodeLookup, message)
}

// NewRemoteUnavailableError reports a failed call to the food database.
func NewRemoteUnavailableError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeRemoteUnavailable, Message: message, Err: cause}
}

// NewCacheError reports a failure of the local nutrient cache.
func NewCacheError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeCache, Message: message, Err: cause}
}

// Common domain errors
var (
	ErrValidation         = NewDomainError(ErrCodeValidation, "Invalid input")
	ErrLookup             = NewDomainError(ErrCodeLookup, "Food identifier cannot be resolved")
	ErrRemoteUnavailable  = NewDomainError(ErrCodeRemoteUnavailable, "Food database is unavailable")
	ErrCache              = NewDomainError(ErrCodeCache, "Nutrient cache failure")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid credentials")
	ErrEmailTaken         = NewDomainError(ErrCodeConflict, "Email already registered")
	ErrInvalidJSON        = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
)

// ErrorCode returns the code of the first DomainError in err's chain, or
// ErrCodeInternalError when there is none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}

// PublicMessage returns the client-safe message for err.
func PublicMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "Internal server error"
}
