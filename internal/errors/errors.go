package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeTableConstraint: input does not satisfy the table structural
	// contract (ordered named columns of equal length).
	ErrTypeTableConstraint ErrorType = "TABLE_CONSTRAINT"
	// ErrTypeInvalidArgument: an operation received an unrecognized
	// enumerated option or a missing required companion argument.
	ErrTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	// ErrTypeColumnOperation: a single column failed transformation;
	// column-local and non-fatal to the enclosing operation.
	ErrTypeColumnOperation ErrorType = "COLUMN_OPERATION"
	// ErrTypeConfig: configuration loading or validation failed.
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewTableConstraintError creates a table structural-contract error
func NewTableConstraintError(message string, cause error) *AppError {
	return NewAppError(ErrTypeTableConstraint, message, cause)
}

// NewInvalidArgumentError creates an invalid-argument error
func NewInvalidArgumentError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInvalidArgument, message, cause)
}

// NewColumnOperationError creates a column-local operation error
func NewColumnOperationError(column, message string) *AppError {
	return NewAppError(ErrTypeColumnOperation, message, nil).WithContext("column", column)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
