package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcellhenrique/LibrarySystem/internal/account"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"golang.org/x/term"
)

// app carries the console's collaborators so commands can be exercised in tests
type app struct {
	env          string
	loadConfig   func(env string) (*config.Config, error)
	openDB       func(cfg *config.Config) (*database.DB, error)
	readPassword func(prompt string) (string, error)
	out          io.Writer
}

func defaultApp() *app {
	return &app{
		loadConfig:   config.Load,
		openDB:       database.New,
		readPassword: promptPassword,
		out:          os.Stdout,
	}
}

// withDB loads config, opens the database and closes it once fn returns
func (a *app) withDB(fn func(cfg *config.Config, db *database.DB) error) error {
	logger.Setup(a.env)

	cfg, err := a.loadConfig(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := a.openDB(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	return fn(cfg, db)
}

func (a *app) withAccounts(ctx context.Context, fn func(ctx context.Context, accounts *account.AccountService) error) error {
	return a.withDB(func(_ *config.Config, db *database.DB) error {
		return fn(ctx, account.NewAccountService(db.DB, account.NewAccountRepository()))
	})
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
