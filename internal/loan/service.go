package loan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/book"
	"github.com/marcellhenrique/LibrarySystem/internal/history"
	"github.com/marcellhenrique/LibrarySystem/internal/member"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

// LoanService runs the loan lifecycle. Issue and Return each commit the loan
// change, the availability flip and the history entry in one transaction.
type LoanService struct {
	db                *gorm.DB
	loanRepository    *LoanRepository
	bookRepository    *book.BookRepository
	memberRepository  *member.MemberRepository
	historyRepository *history.HistoryRepository
	now               func() time.Time
}

func NewLoanService(
	db *gorm.DB,
	loanRepository *LoanRepository,
	bookRepository *book.BookRepository,
	memberRepository *member.MemberRepository,
	historyRepository *history.HistoryRepository,
) *LoanService {
	return &LoanService{
		db:                db,
		loanRepository:    loanRepository,
		bookRepository:    bookRepository,
		memberRepository:  memberRepository,
		historyRepository: historyRepository,
		now:               time.Now,
	}
}

// Issue lends a book to a member.
// The duplicate-loan guard runs before the availability guard.
func (s *LoanService) Issue(ctx context.Context, request *IssueRequest) (*LoanResponse, error) {
	log := logger.FromContext(ctx)
	var issued *model.Loan

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		target, err := s.bookRepository.FindByID(ctx, tx, request.Book)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("issue loan book=%s: %w", request.Book, book.ErrBookNotFound)
			}
			return fmt.Errorf("find book: %w", err)
		}

		borrower, err := s.memberRepository.FindByID(ctx, tx, request.Member)
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("issue loan member=%s: %w", request.Member, member.ErrMemberNotFound)
			}
			return fmt.Errorf("find member: %w", err)
		}

		// 1. Duplicate active loan for the same book and member
		duplicate, err := s.loanRepository.HasActiveLoan(ctx, tx, target.ID, borrower.ID)
		if err != nil {
			return fmt.Errorf("check active loan: %w", err)
		}
		if duplicate {
			return fmt.Errorf("issue loan book=%s member=%s: %w", target.ID, borrower.ID, ErrDuplicateLoan)
		}

		// 2. Availability, then claim the book with a conditional update
		if !target.Availability {
			return fmt.Errorf("issue loan book=%s: %w", target.ID, ErrBookUnavailable)
		}
		reserved, err := s.loanRepository.ReserveBook(ctx, tx, target.ID)
		if err != nil {
			return fmt.Errorf("reserve book: %w", err)
		}
		if !reserved {
			return fmt.Errorf("issue loan book=%s lost reservation: %w", target.ID, ErrBookUnavailable)
		}
		target.Availability = false

		// 3. Loan and history entry
		loan := model.NewLoan(target.ID, borrower.ID, s.now())
		if err := s.loanRepository.Create(ctx, tx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		entry := model.NewHistoryEntry(target.ID, borrower.ID, model.HistoryActionLoaned, loan.LoanDate)
		if err := s.historyRepository.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		loan.Book = *target
		loan.Member = *borrower
		issued = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Loan issued", "loan_id", issued.ID, "book_id", issued.BookID, "member_id", issued.MemberID)
	response := NewLoanResponse(issued)
	return &response, nil
}

// Return closes an active loan and makes its book available again
func (s *LoanService) Return(ctx context.Context, loanID string) (*LoanResponse, error) {
	log := logger.FromContext(ctx)
	var returned *model.Loan

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		loan, err := s.find(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if !loan.IsActive() {
			return fmt.Errorf("return loan id=%s: %w", loanID, ErrAlreadyReturned)
		}

		returnDate := model.DateOf(s.now())
		closed, err := s.loanRepository.MarkReturned(ctx, tx, loan.ID, returnDate)
		if err != nil {
			return fmt.Errorf("mark loan returned: %w", err)
		}
		if !closed {
			return fmt.Errorf("return loan id=%s raced: %w", loanID, ErrAlreadyReturned)
		}

		if err := s.loanRepository.ReleaseBook(ctx, tx, loan.BookID); err != nil {
			return fmt.Errorf("release book: %w", err)
		}

		entry := model.NewHistoryEntry(loan.BookID, loan.MemberID, model.HistoryActionReturned, returnDate)
		if err := s.historyRepository.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		loan.Status = model.LoanStatusReturned
		loan.ReturnDate = &returnDate
		loan.Book.Availability = true
		returned = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Loan returned", "loan_id", returned.ID, "book_id", returned.BookID)
	response := NewLoanResponse(returned)
	return &response, nil
}

func (s *LoanService) Get(ctx context.Context, id string) (*LoanResponse, error) {
	loan, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	response := NewLoanResponse(loan)
	return &response, nil
}

func (s *LoanService) List(ctx context.Context, query ListQuery, page pagination.Page) (pagination.Result[LoanResponse], error) {
	filter := LoanFilter{
		Status:   model.LoanStatus(query.Status),
		MemberID: query.Member,
		BookID:   query.Book,
		Search:   strings.TrimSpace(query.Search),
		Ordering: query.Ordering,
	}

	loans, count, err := s.loanRepository.List(ctx, s.db, filter, page)
	if err != nil {
		return pagination.Result[LoanResponse]{}, fmt.Errorf("list loans: %w", err)
	}

	results := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		results = append(results, NewLoanResponse(&loans[i]))
	}
	return pagination.NewResult(page, count, results), nil
}

func (s *LoanService) find(ctx context.Context, db *gorm.DB, id string) (*model.Loan, error) {
	loan, err := s.loanRepository.FindByID(ctx, db, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("loan id=%s: %w", id, ErrLoanNotFound)
		}
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return loan, nil
}
