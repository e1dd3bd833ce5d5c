package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Placement errors
var (
	ErrJobNotFound      = errors.New("job posting not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrTemplateNotFound = errors.New("requirement template not found")
	ErrSpecNotFound     = errors.New("requirement spec not found")
	ErrAppNotFound      = errors.New("application not found")

	ErrAlreadyApplied  = errors.New("already applied to this job")
	ErrDeadlinePassed  = errors.New("application deadline has passed")
	ErrJobInactive     = errors.New("job posting is not accepting applications")
	ErrSnapshotWritten = errors.New("application snapshot already recorded")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err is any of the not-found kinds
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound, ErrJobNotFound, ErrStudentNotFound, ErrTemplateNotFound, ErrSpecNotFound, ErrAppNotFound)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a submission is aborted because supplied
// or stored data violates the job's requirements. Nothing is persisted.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError from itemized messages
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap makes errors.Is(err, ErrValidationFailed) hold
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
