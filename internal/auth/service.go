package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcellhenrique/LibrarySystem/internal/account"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"
)

type AuthService struct {
	accountService *account.AccountService
	tokenManager   token.Manager
}

func NewAuthService(accountService *account.AccountService, tokenManager token.Manager) *AuthService {
	return &AuthService{
		accountService: accountService,
		tokenManager:   tokenManager,
	}
}

// Login verifies a login/password pair. Unknown logins, wrong passwords,
// inactive and non-staff accounts all fail with ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find account by login
	staff, err := a.accountService.FindByLogin(ctx, request.Login)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			log.Warn("Login failed - unknown login", "login", request.Login)
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		log.Error("Login failed - unexpected error", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	// 2. Validate password
	if !account.CheckPassword(staff.Password, request.Password) {
		log.Warn("Login failed - invalid password", "login", staff.Login)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	// 3. Only active staff members may sign in
	if !staff.CanSignIn() {
		log.Warn("Login failed - account not allowed", "login", staff.Login, "active", staff.IsActive, "staff_member", staff.IsStaffMember)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	// 4. Generate JWT tokens
	accessToken, err := a.tokenManager.GenerateAccessToken(staff.ID, staff.Login)
	if err != nil {
		log.Error("Failed to generate access token", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(staff.ID, staff.Login)
	if err != nil {
		log.Error("Failed to generate refresh token", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	log.Info("Login succeeded", "account_id", staff.ID, "login", staff.Login)

	return &LoginResponse{
		Access:  accessToken,
		Refresh: refreshToken,
		User:    account.NewAccountResponse(staff),
	}, nil
}

// Refresh issues a new access token for a refresh token whose account may still sign in
func (a *AuthService) Refresh(ctx context.Context, request *RefreshRequest) (*RefreshResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := token.ValidateTokenOfType(a.tokenManager, request.Refresh, token.REFRESH)
	if err != nil {
		log.Warn("Refresh failed - invalid token", "error", err)
		return nil, fmt.Errorf("refresh: %w", ErrInvalidRefreshToken)
	}

	staff, err := a.accountService.ResolveAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, fmt.Errorf("refresh: %w", ErrInvalidRefreshToken)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !staff.CanSignIn() {
		log.Warn("Refresh failed - account not allowed", "account_id", staff.ID)
		return nil, fmt.Errorf("refresh: %w", ErrInvalidRefreshToken)
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(staff.ID, staff.Login)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &RefreshResponse{Access: accessToken}, nil
}

func (a *AuthService) Register(ctx context.Context, request *RegisterRequest) (*account.AccountResponse, error) {
	staffMember := false
	return a.accountService.Create(ctx, &account.CreateAccountRequest{
		Login:         request.Login,
		Email:         request.Email,
		Name:          request.Name,
		Role:          request.Role,
		Password:      request.Password,
		IsStaffMember: &staffMember,
	})
}

func (a *AuthService) Profile(ctx context.Context, accountID string) (*account.AccountResponse, error) {
	return a.accountService.Get(ctx, accountID)
}
