package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a venue, user or rating was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInvalidInput indicates a malformed rating or capacity request
	ErrorTypeInvalidInput ErrorType = "INVALID_INPUT"

	// ErrorTypeOutOfRange indicates a capacity or rating bounds violation
	ErrorTypeOutOfRange ErrorType = "OUT_OF_RANGE"

	// ErrorTypeUnauthorized indicates the caller is not assigned to the venue
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeBackendUnavailable indicates the venue directory timed out or failed
	ErrorTypeBackendUnavailable ErrorType = "BACKEND_UNAVAILABLE"

	// ErrorTypeImageFetch indicates the blob store could not deliver a venue image
	ErrorTypeImageFetch ErrorType = "IMAGE_FETCH"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the error type of err, or ErrorTypeInternal for plain errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given error type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: message,
	}
}

// NewOutOfRangeError creates a new out of range error
func NewOutOfRangeError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeOutOfRange,
		Message: message,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewBackendUnavailableError creates a new backend unavailable error
func NewBackendUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeBackendUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewImageFetchError creates a new image fetch error
func NewImageFetchError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeImageFetch,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
