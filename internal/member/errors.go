package member

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const (
	memberNotFound = "MEMBER_NOT_FOUND"   // errInfo
	cpfTaken       = "MEMBER_CPF_TAKEN"   // errInfo
	emailTaken     = "MEMBER_EMAIL_TAKEN" // errInfo
	memberInUse    = "MEMBER_IN_USE"      // errInfo
	memberConflict = "MEMBER_CONFLICT"    // errInfo
)

var (
	ErrMemberNotFound = sharedError.NewDomainError(memberNotFound)
	ErrCPFTaken       = sharedError.NewDomainError(cpfTaken)
	ErrEmailTaken     = sharedError.NewDomainError(emailTaken)
	ErrMemberInUse    = sharedError.NewDomainError(memberInUse)
	ErrMemberConflict = sharedError.NewDomainError(memberConflict)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "Member not found.",
	})

	sharedError.RegisterDomainErrorResponse(cpfTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "A member with this CPF already exists.",
	})

	sharedError.RegisterDomainErrorResponse(emailTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-003",
		Message: "A member with this email already exists.",
	})

	sharedError.RegisterDomainErrorResponse(memberInUse, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-004",
		Message: "Member has loans or history and cannot be deleted.",
	})

	sharedError.RegisterDomainErrorResponse(memberConflict, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-005",
		Message: "A member with this CPF or email already exists.",
	})
}
