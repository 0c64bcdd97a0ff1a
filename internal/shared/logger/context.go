package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithLogger attaches a request logger to ctx
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithAccount binds the signed-in staff account to the request logger,
// so loan, member and SQL lines name who acted.
func WithAccount(ctx context.Context, accountID, login string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With("account_id", accountID, "login", login))
}

// FromContext returns the request logger, or the default logger outside a request
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := scoped(ctx); ok {
		return logger
	}
	return slog.Default()
}

// Scoped reports whether ctx carries a request logger
func Scoped(ctx context.Context) bool {
	_, ok := scoped(ctx)
	return ok
}

func scoped(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	logger, ok := ctx.Value(contextKey{}).(*slog.Logger)
	return logger, ok && logger != nil
}
