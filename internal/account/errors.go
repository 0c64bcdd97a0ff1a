package account

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const (
	accountNotFound  = "ACCOUNT_NOT_FOUND"   // errInfo
	loginTaken       = "ACCOUNT_LOGIN_TAKEN" // errInfo
	emailTaken       = "ACCOUNT_EMAIL_TAKEN" // errInfo
	selfModification = "ACCOUNT_SELF_MODIFICATION"
)

var (
	ErrAccountNotFound  = sharedError.NewDomainError(accountNotFound)
	ErrLoginTaken       = sharedError.NewDomainError(loginTaken)
	ErrEmailTaken       = sharedError.NewDomainError(emailTaken)
	ErrSelfModification = sharedError.NewDomainError(selfModification)
)

func init() {
	sharedError.RegisterDomainErrorResponse(accountNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ACCOUNT-001",
		Message: "Staff account not found.",
	})

	sharedError.RegisterDomainErrorResponse(loginTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "ACCOUNT-002",
		Message: "A staff account with this login already exists.",
	})

	sharedError.RegisterDomainErrorResponse(emailTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "ACCOUNT-003",
		Message: "A staff account with this email already exists.",
	})

	sharedError.RegisterDomainErrorResponse(selfModification, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "ACCOUNT-004",
		Message: "You cannot deactivate or delete your own account.",
	})
}
