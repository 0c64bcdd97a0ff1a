package account

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
)

type CreateAccountRequest struct {
	Login         string `json:"login" binding:"required,trimmin=3,max=50"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Name          string `json:"name" binding:"required,trimmin=2,max=255"`
	Role          string `json:"role" binding:"omitempty,max=100"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	IsStaffMember *bool  `json:"is_staff_member"`
	IsAdmin       bool   `json:"is_admin"`
}

// UpdateAccountRequest replaces the editable fields; an empty password keeps the current one
type UpdateAccountRequest struct {
	Email         string `json:"email" binding:"required,email,max=255"`
	Name          string `json:"name" binding:"required,trimmin=2,max=255"`
	Role          string `json:"role" binding:"omitempty,max=100"`
	Password      string `json:"password" binding:"omitempty,min=8,max=72"`
	IsActive      bool   `json:"is_active"`
	IsStaffMember bool   `json:"is_staff_member"`
	IsAdmin       bool   `json:"is_admin"`
}

type AccountResponse struct {
	ID            string    `json:"id"`
	Login         string    `json:"login"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	IsStaffMember bool      `json:"is_staff_member"`
	IsAdmin       bool      `json:"is_admin"`
	DateJoined    time.Time `json:"date_joined"`
}

func NewAccountResponse(a *model.StaffAccount) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Login:         a.Login,
		Email:         a.Email,
		Name:          a.Name,
		Role:          a.Role,
		IsActive:      a.IsActive,
		IsStaffMember: a.IsStaffMember,
		IsAdmin:       a.IsAdmin,
		DateJoined:    a.DateJoined,
	}
}
