package book

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const (
	bookNotFound = "BOOK_NOT_FOUND" // errInfo
	bookInUse    = "BOOK_IN_USE"    // errInfo
)

var (
	ErrBookNotFound = sharedError.NewDomainError(bookNotFound)
	ErrBookInUse    = sharedError.NewDomainError(bookInUse)
)

func init() {
	sharedError.RegisterDomainErrorResponse(bookNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "BOOK-001",
		Message: "Book not found.",
	})

	sharedError.RegisterDomainErrorResponse(bookInUse, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "BOOK-002",
		Message: "Book has loans or history and cannot be deleted.",
	})
}
