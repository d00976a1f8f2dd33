// Package validator wraps go-playground/validator with the request-level
// checks the handlers run before a payload reaches a service.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// GetValidator returns the validator instance
func GetValidator() *validator.Validate {
	return validate
}

// ValidateStruct runs the struct's validate tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationError is one rejected field of a request payload.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FormatValidationError flattens validator errors into response entries.
func FormatValidationError(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(fieldError.Field()),
				Tag:     fieldError.Tag(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

// getErrorMessage renders the tags the request types carry: required fields,
// non-empty id lists, uuid params and the 0-100 score bounds.
func getErrorMessage(fieldError validator.FieldError) string {
	field := strings.ToLower(fieldError.Field())

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fieldError.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s entries", field, fieldError.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
