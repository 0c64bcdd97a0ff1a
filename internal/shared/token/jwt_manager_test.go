package token

import (
	"testing"
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "library-test"},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        5 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateAccessToken("account-1", "librarian")
	require.NoError(t, err)

	claims, err := m.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.AccountID)
	assert.Equal(t, "account-1", claims.Subject)
	assert.Equal(t, "librarian", claims.Login)
	assert.Equal(t, ACCESS, claims.TokenType)
	assert.Equal(t, "library-test", claims.Issuer)
}

func TestRefreshToken_OutlivesAccessToken(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("account-1", "librarian")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("account-1", "librarian")
	require.NoError(t, err)

	accessClaims, err := m.ValidateToken(access)
	require.NoError(t, err)
	refreshClaims, err := m.ValidateToken(refresh)
	require.NoError(t, err)

	assert.Equal(t, REFRESH, refreshClaims.TokenType)
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}

func TestValidateToken_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	signed, err := m.GenerateAccessToken("account-1", "librarian")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	signed, err := newTestManager().GenerateAccessToken("account-1", "librarian")
	require.NoError(t, err)

	other := newTestManager()
	other.secret = []byte("another-secret-key-that-is-at-least-32-chars")

	_, err = other.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestManager().ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenOfType(t *testing.T) {
	m := newTestManager()
	refresh, err := m.GenerateRefreshToken("account-1", "librarian")
	require.NoError(t, err)

	_, err = ValidateTokenOfType(m, refresh, ACCESS)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := ValidateTokenOfType(m, refresh, REFRESH)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.AccountID)
}
