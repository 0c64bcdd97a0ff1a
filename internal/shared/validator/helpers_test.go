package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	require.NoError(t, v.RegisterValidation("cpf", ValidateCPF))
	require.NoError(t, v.RegisterValidation("phone", ValidatePhone))
	require.NoError(t, v.RegisterValidation("trimmin", ValidateTrimMin))
	return v
}
