package testutil

import (
	"testing"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(accountID, login string) (string, error)
	GenerateRefreshTokenFunc func(accountID, login string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateAccessToken(accountID, login string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(accountID, login)
	}
	return "mock-access-token", nil
}

func (m *MockTokenManager) GenerateRefreshToken(accountID, login string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(accountID, login)
	}
	return "mock-refresh-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// NewTokenManager returns a real JWT manager signed with the test secret
func NewTokenManager() *token.JWTManager {
	return token.NewJWTManager(NewTestConfig())
}

// AccessTokenFor signs an access token for account
func AccessTokenFor(t *testing.T, manager token.Manager, account *model.StaffAccount) string {
	t.Helper()

	signed, err := manager.GenerateAccessToken(account.ID, account.Login)
	if err != nil {
		t.Fatalf("Failed to sign access token: %v", err)
	}
	return signed
}
