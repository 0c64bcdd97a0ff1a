package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/bootstrap"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/router"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/cache"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/validator"
)

func main() {
	env := parseFlags()

	logger.Setup(env)
	slog.Info("initializing server", "env", env)

	if err := run(env); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped", "env", env)
}

func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

func run(env string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("close database", "error", err)
		}
	}()

	// Redis is optional; without it login throttling is per process
	var rdb *cache.Redis
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("close redis", "error", err)
			}
		}()
		slog.Info("redis connected")
	}

	srv, err := setupServer(cfg, db, rdb)
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

func setupServer(cfg *config.Config, db *database.DB, rdb *cache.Redis) (*bootstrap.Server, error) {
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	if err := router.Setup(ginEngine, cfg, db, rdb); err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}

	slog.Info("server configured", "env", cfg.App.Env, "redis", rdb != nil)

	return bootstrap.New(cfg, ginEngine), nil
}

func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	serverErrors := make(chan error, 1)

	go func() {
		serverErrors <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil

	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		slog.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	}
}
