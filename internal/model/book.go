package model

import "gorm.io/gorm"

// Book is a catalog entry. Availability is written only by the loan lifecycle.
type Book struct {
	ID string `gorm:"column:id;size:36;primaryKey"`

	Title        string `gorm:"column:title;size:255;not null;index:idx_book_title"`
	Category     string `gorm:"column:category;size:100;not null;index:idx_book_category"`
	Availability bool   `gorm:"column:availability;not null"`

	BaseEntity
}

func (*Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

// NewBook creates an available book
func NewBook(title, category string) *Book {
	return &Book{
		Title:        title,
		Category:     category,
		Availability: true,
	}
}
