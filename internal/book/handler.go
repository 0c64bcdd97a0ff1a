package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
)

type BookHandler struct {
	bookService *BookService
}

func NewBookHandler(bookService *BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

func (h *BookHandler) List(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.bookService.List(c.Request.Context(), query, pagination.FromQuery(c))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookHandler) Get(c *gin.Context) {
	response, err := h.bookService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookHandler) Create(c *gin.Context) {
	var request BookRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.bookService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *BookHandler) Update(c *gin.Context) {
	var request BookRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.bookService.Update(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookHandler) Patch(c *gin.Context) {
	var request PatchBookRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.bookService.Patch(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.bookService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
