package testutil

import (
	"testing"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// AccountOption adjusts a fixture account before insert
type AccountOption func(*model.StaffAccount)

func AsAdmin() AccountOption {
	return func(a *model.StaffAccount) { a.IsAdmin = true }
}

func NotStaffMember() AccountOption {
	return func(a *model.StaffAccount) { a.IsStaffMember = false }
}

func Inactive() AccountOption {
	return func(a *model.StaffAccount) { a.IsActive = false }
}

// CreateStaffAccount inserts an active staff member with TestPassword
func CreateStaffAccount(t *testing.T, db *gorm.DB, login string, opts ...AccountOption) *model.StaffAccount {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	account := model.NewStaffAccount(login, login+"@library.local", "Staff "+login, "Librarian", string(hash), true)
	for _, opt := range opts {
		opt(account)
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to create staff account: %v", err)
	}
	return account
}

func CreateMember(t *testing.T, db *gorm.DB, name, cpf, email string) *model.Member {
	t.Helper()

	member := model.NewMember(name, cpf, nil, email)
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}
	return member
}

func CreateBook(t *testing.T, db *gorm.DB, title, category string) *model.Book {
	t.Helper()

	book := model.NewBook(title, category)
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("Failed to create book: %v", err)
	}
	return book
}

// Reload loads a fresh copy of the row with the given id
func Reload[T any](t *testing.T, db *gorm.DB, id string) *T {
	t.Helper()

	var dest T
	if err := db.Where("id = ?", id).First(&dest).Error; err != nil {
		t.Fatalf("Failed to reload %T id=%s: %v", dest, id, err)
	}
	return &dest
}
