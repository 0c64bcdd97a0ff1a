package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
)

var (
	ErrInvalidToken   = errors.New("token: invalid token")
	ErrExpiredToken   = errors.New("token: expired token")
	ErrInvalidClaims  = errors.New("token: invalid claims")
	ErrWrongTokenType = errors.New("token: wrong token type")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Claims carries the account identity; Subject is the account id.
type Claims struct {
	AccountID string `json:"account_id"`
	Login     string `json:"login"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Manager interface {
	GenerateAccessToken(accountID string, login string) (string, error)
	GenerateRefreshToken(accountID string, login string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTManager struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
		now:           time.Now,
	}
}

func (m *JWTManager) GenerateAccessToken(accountID, login string) (string, error) {
	return m.generate(accountID, login, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(accountID, login string) (string, error) {
	return m.generate(accountID, login, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) generate(accountID, login, tokenType string, expiry time.Duration) (string, error) {
	now := m.now()

	claims := Claims{
		AccountID: accountID,
		Login:     login,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.AccountID == "" || claims.AccountID != claims.Subject {
		return nil, ErrInvalidClaims
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenOfType validates the token and enforces its type (access or refresh)
func ValidateTokenOfType(m Manager, tokenString, tokenType string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
