package book

import (
	"context"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

var ordering = pagination.NewOrdering("title ASC", map[string]string{
	"title":      "title",
	"category":   "category",
	"created_at": "created_at",
})

type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) Create(ctx context.Context, db *gorm.DB, book *model.Book) error {
	return db.WithContext(ctx).Create(book).Error
}

// UpdateDetails writes title and category only
func (r *BookRepository) UpdateDetails(ctx context.Context, db *gorm.DB, book *model.Book) error {
	return db.WithContext(ctx).Model(book).Select("title", "category", "updated_at").Updates(book).Error
}

func (r *BookRepository) Delete(ctx context.Context, db *gorm.DB, book *model.Book) error {
	return db.WithContext(ctx).Delete(book).Error
}

func (r *BookRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Book, error) {
	var book model.Book
	err := db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) IsReferenced(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var loans int64
	if err := db.WithContext(ctx).Model(&model.Loan{}).Where("book_id = ?", id).Count(&loans).Error; err != nil {
		return false, err
	}
	if loans > 0 {
		return true, nil
	}

	var entries int64
	if err := db.WithContext(ctx).Model(&model.HistoryEntry{}).Where("book_id = ?", id).Count(&entries).Error; err != nil {
		return false, err
	}
	return entries > 0, nil
}

func (r *BookRepository) List(ctx context.Context, db *gorm.DB, query ListQuery, page pagination.Page) ([]model.Book, int64, error) {
	tx := db.WithContext(ctx).Model(&model.Book{})
	if query.Search != "" {
		pattern := pagination.LikePattern(query.Search)
		tx = tx.Where(pagination.Like("LOWER(title)")+" OR "+pagination.Like("LOWER(category)"), pattern, pattern)
	}
	if query.Availability != nil {
		tx = tx.Where("availability = ?", *query.Availability)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var books []model.Book
	if err := tx.Order(ordering.Clause(query.Ordering)).Order("id ASC").Scopes(page.Scope()).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, count, nil
}
