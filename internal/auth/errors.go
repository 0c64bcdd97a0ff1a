package auth

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const (
	invalidCredentials  = "INVALID_CREDENTIALS"   // errInfo
	invalidRefreshToken = "INVALID_REFRESH_TOKEN" // errInfo
)

var (
	ErrInvalidCredentials  = sharedError.NewDomainError(invalidCredentials)
	ErrInvalidRefreshToken = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidCredentials, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-003",
		Message: "Invalid credentials.",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-002",
		Message: "Refresh token is invalid or expired.",
	})
}
