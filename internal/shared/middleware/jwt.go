package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sharedContext "github.com/marcellhenrique/LibrarySystem/internal/shared/context"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

func init() {
	sharedError.RegisterDomainErrorResponse(missingToken, sharedError.Unauthenticated)
	sharedError.RegisterDomainErrorResponse(invalidToken, sharedError.Unauthenticated)
	sharedError.RegisterDomainErrorResponse(invalidClaims, sharedError.Unauthenticated)
	sharedError.RegisterDomainErrorResponse(expiredToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "Token has expired.",
	})
}

// JWT accepts only access tokens and stores the account identity in the context
func JWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		raw, err := extractToken(c)
		if err != nil {
			slog.Warn("JWT extraction failed",
				"step", "extract_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, err)
			return
		}

		claims, err := token.ValidateTokenOfType(tokenManager, raw, token.ACCESS)
		if err != nil {
			slog.Warn("JWT validation failed",
				"step", "validate_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, mapTokenError(err))
			return
		}

		c.Set(sharedContext.AccountIDKey, claims.AccountID)
		c.Set(sharedContext.AccountLoginKey, claims.Login)
		c.Request = c.Request.WithContext(logger.WithAccount(c.Request.Context(), claims.AccountID, claims.Login))
		c.Next()
	}
}

// handleJWTError writes the error response; logging happens at the point of detection
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "Authentication failed.",
		})
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
