package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/marcellhenrique/LibrarySystem/internal/shared/context"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Refresh(c *gin.Context) {
	var request RefreshRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Refresh(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Register(c *gin.Context) {
	var request RegisterRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Register(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (a *AuthHandler) Profile(c *gin.Context) {
	accountID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	response, err := a.authService.Profile(c.Request.Context(), accountID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
