package bootstrap

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	sharedError "github.com/marcellhenrique/LibrarySystem/internal/shared/error"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/handler"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/middleware"
)

// Bootstrap handles the engine setup shared by every route set
type Bootstrap struct {
	cfg *config.Config
}

func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates a gin engine with the common middleware chain
func (b *Bootstrap) SetupEngine() *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(handler.NoRoute)
	engine.NoMethod(handler.NoMethod)

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout))
	engine.Use(middleware.LoggerMiddleware())

	return engine
}

func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	slog.Error("panic recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
}
