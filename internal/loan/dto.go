package loan

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
)

type IssueRequest struct {
	Book   string `json:"book" binding:"required,max=36"`
	Member string `json:"member" binding:"required,max=36"`
}

type ListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=LOANED RETURNED"`
	Member   string `form:"member"`
	Book     string `form:"book"`
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

type BookRef struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Availability bool   `json:"availability"`
}

type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoanResponse struct {
	ID         string    `json:"id"`
	Book       BookRef   `json:"book"`
	Member     MemberRef `json:"member"`
	LoanDate   string    `json:"loan_date"`
	ReturnDate *string   `json:"return_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLoanResponse expects Book and Member to be loaded
func NewLoanResponse(l *model.Loan) LoanResponse {
	response := LoanResponse{
		ID:        l.ID,
		Book:      BookRef{ID: l.BookID, Title: l.Book.Title, Availability: l.Book.Availability},
		Member:    MemberRef{ID: l.MemberID, Name: l.Member.Name},
		LoanDate:  l.LoanDate.Format(model.DateLayout),
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.ReturnDate != nil {
		returned := l.ReturnDate.Format(model.DateLayout)
		response.ReturnDate = &returned
	}
	return response
}
