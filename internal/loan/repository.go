package loan

import (
	"context"
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ordering = pagination.NewOrdering("loan_date DESC, created_at DESC", map[string]string{
	"loan_date":   "loan_date",
	"return_date": "return_date",
	"status":      "status",
	"created_at":  "created_at",
})

type LoanFilter struct {
	Status   model.LoanStatus
	MemberID string
	BookID   string
	Search   string
	Ordering string
}

// LoanRepository owns every write to loans and to books.availability
type LoanRepository struct{}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

func (r *LoanRepository) Create(ctx context.Context, db *gorm.DB, loan *model.Loan) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

func (r *LoanRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Loan, error) {
	var loan model.Loan
	err := db.WithContext(ctx).Preload("Book").Preload("Member").Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) HasActiveLoan(ctx context.Context, db *gorm.DB, bookID, memberID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("book_id = ? AND member_id = ? AND status = ?", bookID, memberID, model.LoanStatusLoaned).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReserveBook flips availability to false only if it is still true.
// It reports false when another transaction took the book first.
func (r *LoanRepository) ReserveBook(ctx context.Context, db *gorm.DB, bookID string) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ? AND availability = ?", bookID, true).
		Update("availability", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *LoanRepository) ReleaseBook(ctx context.Context, db *gorm.DB, bookID string) error {
	return db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", bookID).
		Update("availability", true).Error
}

// MarkReturned closes an active loan. It reports false when the loan was no longer active.
func (r *LoanRepository) MarkReturned(ctx context.Context, db *gorm.DB, loanID string, returnDate time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("id = ? AND status = ?", loanID, model.LoanStatusLoaned).
		Updates(map[string]any{
			"status":      model.LoanStatusReturned,
			"return_date": returnDate,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CountActiveByBook returns the number of LOANED loans of a book
func (r *LoanRepository) CountActiveByBook(ctx context.Context, db *gorm.DB, bookID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Loan{}).
		Where("book_id = ? AND status = ?", bookID, model.LoanStatusLoaned).
		Count(&count).Error
	return count, err
}

func (r *LoanRepository) List(ctx context.Context, db *gorm.DB, filter LoanFilter, page pagination.Page) ([]model.Loan, int64, error) {
	tx := db.WithContext(ctx).Model(&model.Loan{})

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.MemberID != "" {
		tx = tx.Where("member_id = ?", filter.MemberID)
	}
	if filter.BookID != "" {
		tx = tx.Where("book_id = ?", filter.BookID)
	}
	if filter.Search != "" {
		pattern := pagination.LikePattern(filter.Search)
		books := db.Model(&model.Book{}).Select("id").Where(pagination.Like("LOWER(title)"), pattern)
		members := db.Model(&model.Member{}).Select("id").Where(pagination.Like("LOWER(name)")+" OR "+pagination.Like("cpf"), pattern, pattern)
		tx = tx.Where(db.Where("book_id IN (?)", books).
			Or("member_id IN (?)", members).
			Or(pagination.Like("LOWER(status)"), pattern))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var loans []model.Loan
	err := tx.Preload("Book").Preload("Member").
		Order(pagination.TieBreak(ordering.Clause(filter.Ordering), "created_at")).
		Order("id ASC").
		Scopes(page.Scope()).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}
	return loans, count, nil
}
