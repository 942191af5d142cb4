// Package apperror holds the typed errors shared by the domain, application
// and handler layers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an AppError.
type Code string

const (
	CodeValidation   Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeUnavailable  Code = "COLLABORATOR_UNAVAILABLE"
	CodeInternal     Code = "INTERNAL"
)

// AppError is an error carrying a classification code.
type AppError struct {
	Code    Code
	Message string
	// Fields lists the offending input fields of a validation error.
	Fields []string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports invalid input. The optional fields name every
// offending input.
func NewValidationError(message string, fields ...string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

// NewFieldsError builds a validation error listing every invalid field.
func NewFieldsError(fields ...string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "invalid or missing fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewConflictError reports a state conflict such as a stale version.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewUnauthorizedError reports a missing or invalid session.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller acting outside its rights.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewUnavailableError reports a failing external collaborator.
func NewUnavailableError(collaborator string, err error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: collaborator + " unavailable",
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
