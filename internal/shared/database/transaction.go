package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// WithTransaction executes fn within a transaction while propagating context.
// The tx passed to fn already carries ctx; returning an error rolls back.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    if err := repo.Create(ctx, tx, entity); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(fn)
}

// IsDuplicateKey reports whether err is a unique constraint violation
// translated by the dialect (requires gorm.Config.TranslateError).
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsForeignKeyViolation reports whether err is a rejected delete or insert on a foreign key
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
