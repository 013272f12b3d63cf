package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationDetails turns a binding error into response details. Validator
// errors become one readable message per failed field; anything else falls
// back to the raw error text.
func ValidationDetails(err error) interface{} {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, formatValidationError(fieldErr))
	}
	return messages
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
