package model

import (
	"time"

	"gorm.io/gorm"
)

// StaffAccount is a login-capable account for library staff.
// Accounts are deactivated rather than deleted.
type StaffAccount struct {
	ID string `gorm:"column:id;size:36;primaryKey"`

	Login    string `gorm:"column:login;size:50;not null;uniqueIndex:idx_staff_account_login"`
	Email    string `gorm:"column:email;size:255;not null;uniqueIndex:idx_staff_account_email"`
	Name     string `gorm:"column:name;size:255;not null"`
	Role     string `gorm:"column:role;size:100;not null"`
	Password string `gorm:"column:password;size:60;not null"` // bcrypt hash

	// Flags have no gorm default so false is written explicitly on insert
	IsActive      bool `gorm:"column:is_active;not null"`
	IsStaffMember bool `gorm:"column:is_staff_member;not null"`
	IsAdmin       bool `gorm:"column:is_admin;not null"`

	DateJoined time.Time `gorm:"column:date_joined;not null"`

	BaseEntity
}

func (*StaffAccount) TableName() string {
	return "staff_accounts"
}

func (a *StaffAccount) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

// CanSignIn reports whether the credential verifier may issue tokens for the account.
func (a *StaffAccount) CanSignIn() bool {
	return a.IsActive && a.IsStaffMember
}

// NewStaffAccount creates an active account; password must already be hashed.
func NewStaffAccount(login, email, name, role, passwordHash string, staffMember bool) *StaffAccount {
	return &StaffAccount{
		Login:         login,
		Email:         email,
		Name:          name,
		Role:          role,
		Password:      passwordHash,
		IsActive:      true,
		IsStaffMember: staffMember,
		DateJoined:    time.Now().UTC(),
	}
}

// NewSuperuser creates an administrator that is also a staff member.
func NewSuperuser(login, email, name, passwordHash string) *StaffAccount {
	account := NewStaffAccount(login, email, name, "Administrator", passwordHash, true)
	account.IsAdmin = true
	return account
}
