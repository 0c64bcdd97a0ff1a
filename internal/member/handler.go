package member

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) List(c *gin.Context) {
	response, err := h.memberService.List(c.Request.Context(), c.Query("search"), pagination.FromQuery(c))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Get(c *gin.Context) {
	response, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var request MemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	var request MemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Patch(c *gin.Context) {
	var request PatchMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Patch(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
