package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// StorageError represents a persistence failure with operation context
type StorageError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a referenced entity that does not exist
type NotFoundError struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError represents a uniqueness or duplicate violation
type ConflictError struct {
	Resource string
	Reason   string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// ValidationError represents malformed or missing input
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Reason)
}

// WrapStorageError wraps a database error with operation context
func WrapStorageError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Operation: operation, Err: err}
}

// NewNotFoundErrorWithID creates a new NotFoundError with an ID
func NewNotFoundErrorWithID(resource string, id interface{}) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewConflictError creates a new ConflictError
func NewConflictError(resource, reason string) error {
	return &ConflictError{Resource: resource, Reason: reason}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// TranslateError converts low-level persistence errors into the taxonomy
// above. Unique-constraint violations become ConflictError so that two
// requests racing past the application-level existence check are resolved by
// the storage layer rather than crashing; everything else is wrapped as a
// StorageError with operation context.
func TranslateError(operation, resource string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return NewConflictError(resource, "duplicate key value violates unique constraint")
	}
	return WrapStorageError(operation, err)
}
