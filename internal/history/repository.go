package history

import (
	"context"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Most recent action first; entries of the same day are listed newest recorded first
var ordering = pagination.NewOrdering("action_date DESC, recorded_at DESC", map[string]string{
	"action_date": "action_date",
	"recorded_at": "recorded_at",
	"action_type": "action_type",
})

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Append inserts an entry. It is the only write path to the history table.
func (r *HistoryRepository) Append(ctx context.Context, db *gorm.DB, entry *model.HistoryEntry) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *HistoryRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.HistoryEntry, error) {
	var entry model.HistoryEntry
	err := db.WithContext(ctx).Preload("Book").Preload("Member").Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *HistoryRepository) List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Page) ([]model.HistoryEntry, int64, error) {
	tx := db.WithContext(ctx).Model(&model.HistoryEntry{})

	if filter.From != nil {
		tx = tx.Where("action_date >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("action_date <= ?", *filter.To)
	}
	if filter.MemberID != "" {
		tx = tx.Where("member_id = ?", filter.MemberID)
	}
	if filter.BookID != "" {
		tx = tx.Where("book_id = ?", filter.BookID)
	}
	if filter.Action != "" {
		tx = tx.Where("action_type = ?", filter.Action)
	}
	if filter.Search != "" {
		pattern := pagination.LikePattern(filter.Search)
		books := db.Model(&model.Book{}).Select("id").Where(pagination.Like("LOWER(title)"), pattern)
		members := db.Model(&model.Member{}).Select("id").Where(pagination.Like("LOWER(name)"), pattern)
		tx = tx.Where(db.Where("book_id IN (?)", books).Or("member_id IN (?)", members))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.HistoryEntry
	err := tx.Preload("Book").Preload("Member").
		Order(pagination.TieBreak(ordering.Clause(filter.Ordering), "recorded_at")).
		Order("id ASC").
		Scopes(page.Scope()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}
