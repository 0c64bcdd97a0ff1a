package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/validator"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req CreateBookRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		return respondBindError(c, err)
	}
	return true
}

// BindQuery parses and validates query string parameters
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		return respondBindError(c, err)
	}
	return true
}

func respondBindError(c *gin.Context, err error) bool {
	// Add error to context for middleware logging
	c.Error(err)

	if resp, ok := validator.ToErrorResponse(err); ok {
		c.JSON(http.StatusBadRequest, resp)
	} else {
		// JSON parsing error or other binding errors
		c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
	}
	return false
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	c.JSON(errResp.Status, errResp)
}

// RespondServiceError resolves registered domain errors and falls back to 500.
// Validation errors raised by services are answered like binding errors.
func RespondServiceError(c *gin.Context, err error) {
	if resp, ok := validator.ToErrorResponse(err); ok {
		RespondError(c, err, *resp)
		return
	}
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}

// NoRoute and NoMethod keep 404/405 bodies in the shared error format
func NoRoute(c *gin.Context) {
	c.JSON(sharedError.RouteNotFound.Status, sharedError.RouteNotFound)
}

func NoMethod(c *gin.Context) {
	c.JSON(sharedError.MethodNotAllowed.Status, sharedError.MethodNotAllowed)
}
