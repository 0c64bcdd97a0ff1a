package auth

import "github.com/marcellhenrique/LibrarySystem/internal/account"

type LoginRequest struct {
	Login    string `json:"login" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginResponse struct {
	Access  string                  `json:"access"`
	Refresh string                  `json:"refresh"`
	User    account.AccountResponse `json:"user"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// RegisterRequest creates an account that stays locked until an administrator marks it as staff
type RegisterRequest struct {
	Login    string `json:"login" binding:"required,trimmin=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,trimmin=2,max=255"`
	Role     string `json:"role" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}
