package shared

import "strings"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// ValidationResult accumulates validation failures so a caller can display
// every problem at once instead of only the first one.
type ValidationResult struct {
	Messages []string
}

// NewValidationResult creates an empty (valid) result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{Messages: make([]string, 0)}
}

// AddError appends a validation failure message
func (r *ValidationResult) AddError(message string) {
	r.Messages = append(r.Messages, message)
}

// Merge appends all messages from another result
func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Messages = append(r.Messages, other.Messages...)
}

// Valid returns true when no failures were recorded
func (r *ValidationResult) Valid() bool {
	return len(r.Messages) == 0
}

// AsError converts the result into a DomainError, or nil when valid.
// All accumulated messages are joined for direct display.
func (r *ValidationResult) AsError() error {
	if r.Valid() {
		return nil
	}
	return NewDomainError("VALIDATION_FAILED", strings.Join(r.Messages, "; "))
}
