package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the global slog logger based on environment
func Setup(env string) {
	slog.SetDefault(New(env, os.Stdout))
	slog.Info("logger initialized", "env", env)
}

// New builds the environment specific logger: JSON in production, text elsewhere
func New(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, opts)
	case "local", "dev", "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
