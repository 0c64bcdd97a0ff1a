package history

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
)

type HistoryHandler struct {
	historyService *HistoryService
}

func NewHistoryHandler(historyService *HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

func (h *HistoryHandler) List(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.historyService.List(c.Request.Context(), query, pagination.FromQuery(c))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *HistoryHandler) Get(c *gin.Context) {
	response, err := h.historyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
