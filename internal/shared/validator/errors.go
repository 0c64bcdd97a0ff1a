package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// Only the first error is reported
	fieldErr := validationErrors[0]

	resp := sharedError.ValidationFailed
	resp.Message = getErrorMessage(fieldErr)
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: this field is required.", field)
	case "email":
		return fmt.Sprintf("%s: enter a valid email address.", field)
	case "min", "trimmin":
		return fmt.Sprintf("%s: must have at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must have at most %s characters.", field, fe.Param())
	case "cpf":
		return fmt.Sprintf("%s: CPF must contain exactly 11 digits.", field)
	case "phone":
		return fmt.Sprintf("%s: phone must contain between 10 and 15 digits.", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s].", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s: must be a valid identifier.", field)
	case "datetime":
		return fmt.Sprintf("%s: must be a date in %s format.", field, fe.Param())
	default:
		return fmt.Sprintf("%s: invalid value.", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
