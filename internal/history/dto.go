package history

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
)

type ListQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Member    string `form:"member"`
	Book      string `form:"book"`
	Action    string `form:"action_type" binding:"omitempty,oneof=LOANED RETURNED"`
	Search    string `form:"search"`
	Ordering  string `form:"ordering"`
}

// Filter is ListQuery with dates parsed
type Filter struct {
	From     *time.Time
	To       *time.Time
	MemberID string
	BookID   string
	Action   model.HistoryAction
	Search   string
	Ordering string
}

func (q ListQuery) Filter() Filter {
	f := Filter{
		MemberID: q.Member,
		BookID:   q.Book,
		Action:   model.HistoryAction(q.Action),
		Search:   q.Search,
		Ordering: q.Ordering,
	}
	f.From = parseDate(q.StartDate)
	f.To = parseDate(q.EndDate)
	return f
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return nil
	}
	d := model.DateOf(t)
	return &d
}

type BookRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EntryResponse struct {
	ID         string    `json:"id"`
	Book       BookRef   `json:"book"`
	Member     MemberRef `json:"member"`
	ActionType string    `json:"action_type"`
	ActionDate string    `json:"action_date"`
	RecordedAt time.Time `json:"recorded_at"`
}

func NewEntryResponse(e *model.HistoryEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Book:       BookRef{ID: e.BookID, Title: e.Book.Title},
		Member:     MemberRef{ID: e.MemberID, Name: e.Member.Name},
		ActionType: string(e.ActionType),
		ActionDate: e.ActionDate.Format(model.DateLayout),
		RecordedAt: e.RecordedAt,
	}
}
