package validator

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator engine unavailable")
	}
	return v, nil
}

// RegisterAll registers all common validators defined in this package
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("get validator engine: %w", err)
	}

	validators := map[string]validator.Func{
		"cpf":     ValidateCPF,
		"phone":   ValidatePhone,
		"trimmin": ValidateTrimMin,
	}

	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}

	slog.Debug("common validators registered", "validators", "cpf,phone,trimmin")
	return nil
}

// ValidateStruct runs the binding rules against obj outside of request binding,
// e.g. on a record merged from a partial update
func ValidateStruct(obj any) error {
	return binding.Validator.ValidateStruct(obj)
}
