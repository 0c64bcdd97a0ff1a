package loan

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const (
	loanNotFound    = "LOAN_NOT_FOUND"        // errInfo
	bookUnavailable = "LOAN_BOOK_UNAVAILABLE" // errInfo
	duplicateLoan   = "LOAN_DUPLICATE_ACTIVE" // errInfo
	alreadyReturned = "LOAN_ALREADY_RETURNED" // errInfo
)

var (
	ErrLoanNotFound    = sharedError.NewDomainError(loanNotFound)
	ErrBookUnavailable = sharedError.NewDomainError(bookUnavailable)
	ErrDuplicateLoan   = sharedError.NewDomainError(duplicateLoan)
	ErrAlreadyReturned = sharedError.NewDomainError(alreadyReturned)
)

func init() {
	sharedError.RegisterDomainErrorResponse(loanNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "LOAN-001",
		Message: "Loan not found.",
	})

	sharedError.RegisterDomainErrorResponse(bookUnavailable, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "LOAN-002",
		Message: "This book is not available for loan.",
	})

	sharedError.RegisterDomainErrorResponse(duplicateLoan, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "LOAN-003",
		Message: "This member already has an active loan for this book.",
	})

	sharedError.RegisterDomainErrorResponse(alreadyReturned, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "LOAN-004",
		Message: "This loan has already been returned.",
	})
}
