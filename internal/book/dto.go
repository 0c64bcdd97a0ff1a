package book

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
)

// BookRequest has no availability field: it is owned by the loan lifecycle
type BookRequest struct {
	Title    string `json:"title" binding:"required,trimmin=2,max=255"`
	Category string `json:"category" binding:"required,trimmin=2,max=100"`
}

type PatchBookRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
}

type ListQuery struct {
	Search       string `form:"search"`
	Ordering     string `form:"ordering"`
	Availability *bool  `form:"availability"`
}

type BookResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookResponse(b *model.Book) BookResponse {
	return BookResponse{
		ID:           b.ID,
		Title:        b.Title,
		Category:     b.Category,
		Availability: b.Availability,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
