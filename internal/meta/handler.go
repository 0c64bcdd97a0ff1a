package meta

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/cache"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
)

// CheckFunc reports the health of one dependency
type CheckFunc func(ctx context.Context) error

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg    *config.Config
	checks map[string]CheckFunc
}

// NewHandler creates a new meta handler; rdb is nil when Redis is not configured
func NewHandler(cfg *config.Config, db *database.DB, rdb *cache.Redis) *Handler {
	checks := map[string]CheckFunc{
		"database": db.HealthCheck,
	}
	if rdb != nil {
		checks["redis"] = rdb.Ping
	}
	return NewHandlerWithChecks(cfg, checks)
}

func NewHandlerWithChecks(cfg *config.Config, checks map[string]CheckFunc) *Handler {
	return &Handler{
		cfg:    cfg,
		checks: checks,
	}
}

// Health runs every dependency check and answers 503 if any fails
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	results := gin.H{}
	for _, name := range names {
		start := time.Now()
		if err := h.checks[name](ctx); err != nil {
			healthy = false
			slog.Error("Health check failed", "check", name, "error", err)
			results[name] = gin.H{
				"status": "down",
				"error":  err.Error(),
			}
			continue
		}
		results[name] = gin.H{
			"status":     "up",
			"latency_ms": time.Since(start).Milliseconds(),
		}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": results,
	})
}
