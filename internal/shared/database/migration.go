package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/model"

	"gorm.io/gorm"
)

var ErrMigrationInProduction = errors.New("database: DB_AUTO_MIGRATE=true is refused in production")

// Models lists every table in dependency order (referenced tables first)
func Models() []any {
	return []any{
		&model.StaffAccount{},
		&model.Member{},
		&model.Book{},
		&model.Loan{},
		&model.HistoryEntry{},
	}
}

// Migrate drops and recreates all tables when auto migration is enabled
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("database migration disabled", "auto_migrate", false, "env", cfg.App.Env)
		return nil
	}

	if cfg.IsProduction() {
		return ErrMigrationInProduction
	}

	slog.Warn("database migration started, all tables will be dropped and recreated",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	if err := DropAll(db); err != nil {
		return err
	}

	if err := AutoMigrate(db); err != nil {
		return err
	}

	slog.Info("database migration completed")
	return nil
}

// DropAll drops tables in reverse dependency order (FK constraints)
func DropAll(db *gorm.DB) error {
	models := Models()
	migrator := db.Migrator()

	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !migrator.HasTable(m) {
			continue
		}
		if err := migrator.DropTable(m); err != nil {
			return fmt.Errorf("drop %T: %w", m, err)
		}
		slog.Debug("table dropped", "model", fmt.Sprintf("%T", m))
	}
	return nil
}

// AutoMigrate creates or updates tables without dropping data
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
		slog.Debug("table migrated", "model", fmt.Sprintf("%T", m))
	}
	return nil
}
