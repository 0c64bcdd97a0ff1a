package loan

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
)

type LoanHandler struct {
	loanService *LoanService
}

func NewLoanHandler(loanService *LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

func (h *LoanHandler) List(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.loanService.List(c.Request.Context(), query, pagination.FromQuery(c))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *LoanHandler) Get(c *gin.Context) {
	response, err := h.loanService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *LoanHandler) Issue(c *gin.Context) {
	var request IssueRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.loanService.Issue(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *LoanHandler) Return(c *gin.Context) {
	response, err := h.loanService.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
