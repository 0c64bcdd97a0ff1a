package history

import (
	"net/http"

	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
)

const entryNotFound = "HISTORY_ENTRY_NOT_FOUND" // errInfo

var ErrEntryNotFound = sharedError.NewDomainError(entryNotFound)

func init() {
	sharedError.RegisterDomainErrorResponse(entryNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "HISTORY-001",
		Message: "History entry not found.",
	})
}
