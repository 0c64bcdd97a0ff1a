package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/validator"
	"gorm.io/gorm"
)

type BookService struct {
	db             *gorm.DB
	bookRepository *BookRepository
}

func NewBookService(db *gorm.DB, bookRepository *BookRepository) *BookService {
	return &BookService{
		db:             db,
		bookRepository: bookRepository,
	}
}

func (s *BookService) List(ctx context.Context, query ListQuery, page pagination.Page) (pagination.Result[BookResponse], error) {
	query.Search = strings.TrimSpace(query.Search)

	books, count, err := s.bookRepository.List(ctx, s.db, query, page)
	if err != nil {
		return pagination.Result[BookResponse]{}, fmt.Errorf("list books: %w", err)
	}

	results := make([]BookResponse, 0, len(books))
	for i := range books {
		results = append(results, NewBookResponse(&books[i]))
	}
	return pagination.NewResult(page, count, results), nil
}

func (s *BookService) Get(ctx context.Context, id string) (*BookResponse, error) {
	book, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	response := NewBookResponse(book)
	return &response, nil
}

// Create adds an available book
func (s *BookService) Create(ctx context.Context, request *BookRequest) (*BookResponse, error) {
	book := model.NewBook(strings.TrimSpace(request.Title), strings.TrimSpace(request.Category))

	if err := s.bookRepository.Create(ctx, s.db, book); err != nil {
		logger.FromContext(ctx).Error("Failed to create book", "error", err)
		return nil, fmt.Errorf("create book: %w", err)
	}

	logger.FromContext(ctx).Info("Book created", "book_id", book.ID, "title", book.Title)
	response := NewBookResponse(book)
	return &response, nil
}

func (s *BookService) Update(ctx context.Context, id string, request *BookRequest) (*BookResponse, error) {
	return s.modify(ctx, id, func(*model.Book) (*BookRequest, error) {
		return request, nil
	})
}

func (s *BookService) Patch(ctx context.Context, id string, patch *PatchBookRequest) (*BookResponse, error) {
	return s.modify(ctx, id, func(current *model.Book) (*BookRequest, error) {
		merged := BookRequest{Title: current.Title, Category: current.Category}
		if patch.Title != nil {
			merged.Title = *patch.Title
		}
		if patch.Category != nil {
			merged.Category = *patch.Category
		}
		if err := validator.ValidateStruct(&merged); err != nil {
			return nil, fmt.Errorf("patch book: %w", err)
		}
		return &merged, nil
	})
}

func (s *BookService) modify(ctx context.Context, id string, build func(*model.Book) (*BookRequest, error)) (*BookResponse, error) {
	var response BookResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		book, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		request, err := build(book)
		if err != nil {
			return err
		}

		book.Title = strings.TrimSpace(request.Title)
		book.Category = strings.TrimSpace(request.Category)
		if err := s.bookRepository.UpdateDetails(ctx, tx, book); err != nil {
			return fmt.Errorf("update book: %w", err)
		}

		response = NewBookResponse(book)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete refuses books still referenced by loans or history
func (s *BookService) Delete(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		book, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		referenced, err := s.bookRepository.IsReferenced(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("check book references: %w", err)
		}
		if referenced {
			return fmt.Errorf("delete book id=%s: %w", id, ErrBookInUse)
		}

		if err := s.bookRepository.Delete(ctx, tx, book); err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("delete book id=%s: %w", id, ErrBookInUse)
			}
			return fmt.Errorf("delete book: %w", err)
		}

		logger.FromContext(ctx).Info("Book deleted", "book_id", id)
		return nil
	})
}

func (s *BookService) find(ctx context.Context, db *gorm.DB, id string) (*model.Book, error) {
	book, err := s.bookRepository.FindByID(ctx, db, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("book id=%s: %w", id, ErrBookNotFound)
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return book, nil
}
