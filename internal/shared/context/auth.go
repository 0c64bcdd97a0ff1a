package context

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
)

// Context keys for storing authentication information
const (
	AccountIDKey    = "account_id"
	AccountLoginKey = "account_login"
	AccountKey      = "account"
)

func GetAccountID(c *gin.Context) (string, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return "", false
	}

	id, ok := accountID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

// RequireAccountID retrieves the authenticated account ID from the Gin context.
// If it is missing an authentication error response is sent and false is returned.
func RequireAccountID(c *gin.Context) (string, bool) {
	accountID, ok := GetAccountID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, sharedError.Unauthenticated)
		logger.FromContext(c.Request.Context()).Error("[API] account id missing from context")
		return "", false
	}
	return accountID, true
}

// SetAccount stores the account loaded by a permission guard.
func SetAccount(c *gin.Context, account *model.StaffAccount) {
	c.Set(AccountKey, account)
}

// GetAccount returns the account loaded by a permission guard, if any.
func GetAccount(c *gin.Context) (*model.StaffAccount, bool) {
	v, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := v.(*model.StaffAccount)
	return account, ok && account != nil
}
