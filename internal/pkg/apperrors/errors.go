package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorageFailure = errors.New("object storage operation failed")
)

// Domain errors. Each one wraps a common sentinel so the error middleware can
// map it by taxonomy while callers still match the specific case.
var (
	ErrAlumnoNotFound   = fmt.Errorf("%w: alumno", ErrResourceNotFound)
	ErrProfesorNotFound = fmt.Errorf("%w: profesor", ErrResourceNotFound)
	ErrMateriaNotFound  = fmt.Errorf("%w: materia", ErrResourceNotFound)

	// ErrAsignacionNotFound is returned when a teacher has no assignment record.
	ErrAsignacionNotFound = fmt.Errorf("%w: asignacion record", ErrResourceNotFound)
	// ErrMateriaYaAsignada is returned when the subject already belongs to a teacher.
	ErrMateriaYaAsignada = fmt.Errorf("%w: materia already assigned to a profesor", ErrConflict)

	ErrInscripcionNotFound = fmt.Errorf("%w: inscripcion", ErrResourceNotFound)
	ErrInscripcionExists   = fmt.Errorf("%w: alumno already enrolled in materia", ErrConflict)
	// ErrCalificacionInvalida is returned when a grade is outside [0, 10].
	ErrCalificacionInvalida = fmt.Errorf("%w: calificacion must be between 0 and 10", ErrValidationFailed)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
