package model

import (
	"time"

	"gorm.io/gorm"
)

type HistoryAction string

const (
	HistoryActionLoaned   HistoryAction = "LOANED"
	HistoryActionReturned HistoryAction = "RETURNED"
)

// HistoryEntry is an immutable record of a single loan state transition.
type HistoryEntry struct {
	ID string `gorm:"column:id;size:36;primaryKey"`

	BookID   string `gorm:"column:book_id;size:36;not null;index"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	MemberID string `gorm:"column:member_id;size:36;not null;index"`
	Member   Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	ActionType HistoryAction `gorm:"column:action_type;size:10;not null"`
	ActionDate time.Time     `gorm:"column:action_date;type:date;not null;index"`
	RecordedAt time.Time     `gorm:"column:recorded_at;not null"`
}

func (*HistoryEntry) TableName() string {
	return "loan_history"
}

func (h *HistoryEntry) BeforeCreate(*gorm.DB) error {
	if h.ID == "" {
		h.ID = newID()
	}
	return nil
}

func NewHistoryEntry(bookID, memberID string, action HistoryAction, actionDate time.Time) *HistoryEntry {
	return &HistoryEntry{
		BookID:     bookID,
		MemberID:   memberID,
		ActionType: action,
		ActionDate: DateOf(actionDate),
		RecordedAt: time.Now().UTC(),
	}
}
