package middleware

import (
	"context"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	sharedContext "github.com/marcellhenrique/LibrarySystem/internal/shared/context"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"

	"github.com/gin-gonic/gin"
)

// AccountResolver loads the account behind an authenticated request
type AccountResolver interface {
	ResolveAccount(ctx context.Context, accountID string) (*model.StaffAccount, error)
}

// RequireStaff allows active accounts flagged as staff members. Must run after JWT.
func RequireStaff(resolver AccountResolver) gin.HandlerFunc {
	return guard(resolver, "staff", func(a *model.StaffAccount) bool {
		return a.IsActive && a.IsStaffMember
	})
}

// RequireAdmin allows active administrators. Must run after JWT.
func RequireAdmin(resolver AccountResolver) gin.HandlerFunc {
	return guard(resolver, "admin", func(a *model.StaffAccount) bool {
		return a.IsActive && a.IsAdmin
	})
}

func guard(resolver AccountResolver, name string, allowed func(*model.StaffAccount) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := sharedContext.RequireAccountID(c)
		if !ok {
			return
		}

		log := logger.FromContext(c.Request.Context())

		account, err := resolver.ResolveAccount(c.Request.Context(), accountID)
		if err != nil {
			// Tokens of deleted accounts are treated as unauthenticated
			log.Warn("permission check failed to resolve account", "guard", name, "account_id", accountID, "error", err)
			c.AbortWithStatusJSON(sharedError.Unauthenticated.Status, sharedError.Unauthenticated)
			return
		}

		if !allowed(account) {
			log.Warn("permission denied", "guard", name, "account_id", accountID, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(sharedError.Forbidden.Status, sharedError.Forbidden)
			return
		}

		sharedContext.SetAccount(c, account)
		c.Next()
	}
}
