package model

import (
	"time"

	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusLoaned   LoanStatus = "LOANED"
	LoanStatusReturned LoanStatus = "RETURNED"
)

func (s LoanStatus) Valid() bool {
	return s == LoanStatusLoaned || s == LoanStatusReturned
}

// Loan links one book to one member. ReturnDate is set iff Status is RETURNED.
type Loan struct {
	ID string `gorm:"column:id;size:36;primaryKey"`

	BookID   string `gorm:"column:book_id;size:36;not null;index:idx_loan_book_member"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	MemberID string `gorm:"column:member_id;size:36;not null;index:idx_loan_book_member"`
	Member   Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	LoanDate   time.Time  `gorm:"column:loan_date;type:date;not null;index"`
	ReturnDate *time.Time `gorm:"column:return_date;type:date"`
	Status     LoanStatus `gorm:"column:status;size:10;not null;index"`

	BaseEntity
}

func (*Loan) TableName() string {
	return "loans"
}

func (l *Loan) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = newID()
	}
	return nil
}

func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusLoaned
}

// NewLoan creates an active loan dated loanDate
func NewLoan(bookID, memberID string, loanDate time.Time) *Loan {
	return &Loan{
		BookID:   bookID,
		MemberID: memberID,
		LoanDate: DateOf(loanDate),
		Status:   LoanStatusLoaned,
	}
}
