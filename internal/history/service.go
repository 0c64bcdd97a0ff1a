package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

// HistoryService exposes the loan history read-only; entries are appended by the loan lifecycle
type HistoryService struct {
	db                *gorm.DB
	historyRepository *HistoryRepository
}

func NewHistoryService(db *gorm.DB, historyRepository *HistoryRepository) *HistoryService {
	return &HistoryService{
		db:                db,
		historyRepository: historyRepository,
	}
}

func (s *HistoryService) List(ctx context.Context, query ListQuery, page pagination.Page) (pagination.Result[EntryResponse], error) {
	filter := query.Filter()
	filter.Search = strings.TrimSpace(filter.Search)

	entries, count, err := s.historyRepository.List(ctx, s.db, filter, page)
	if err != nil {
		return pagination.Result[EntryResponse]{}, fmt.Errorf("list history: %w", err)
	}

	results := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		results = append(results, NewEntryResponse(&entries[i]))
	}
	return pagination.NewResult(page, count, results), nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (*EntryResponse, error) {
	entry, err := s.historyRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("history entry id=%s: %w", id, ErrEntryNotFound)
		}
		return nil, fmt.Errorf("find history entry: %w", err)
	}
	response := NewEntryResponse(entry)
	return &response, nil
}
