package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/marcellhenrique/LibrarySystem/internal/shared/context"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
)

type AccountHandler struct {
	accountService *AccountService
}

func NewAccountHandler(accountService *AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) List(c *gin.Context) {
	response, err := h.accountService.List(c.Request.Context(), c.Query("search"), pagination.FromQuery(c))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AccountHandler) Get(c *gin.Context) {
	response, err := h.accountService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var request CreateAccountRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.accountService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *AccountHandler) Update(c *gin.Context) {
	var request UpdateAccountRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.accountService.Update(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AccountHandler) Deactivate(c *gin.Context) {
	actorID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	response, err := h.accountService.Deactivate(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	actorID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
