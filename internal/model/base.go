package model

import (
	"time"

	"github.com/google/uuid"
)

// GORM manages CreatedAt and UpdatedAt automatically
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// newID returns a random identifier for a new row
func newID() string {
	return uuid.NewString()
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"
