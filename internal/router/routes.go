package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marcellhenrique/LibrarySystem/internal/account"
	"github.com/marcellhenrique/LibrarySystem/internal/auth"
	"github.com/marcellhenrique/LibrarySystem/internal/book"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/frontend"
	"github.com/marcellhenrique/LibrarySystem/internal/history"
	"github.com/marcellhenrique/LibrarySystem/internal/loan"
	"github.com/marcellhenrique/LibrarySystem/internal/member"
	"github.com/marcellhenrique/LibrarySystem/internal/meta"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/cache"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/middleware"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/ratelimit"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/token"
	"github.com/redis/go-redis/v9"
)

// Setup configures all application-specific routes using dependency injection.
// rdb may be nil, in which case login throttling stays in-process.
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, rdb *cache.Redis) error {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db, rdb)
	router.GET("/health", metaHandler.Health)

	// repository
	accountRepository := account.NewAccountRepository()
	memberRepository := member.NewMemberRepository()
	bookRepository := book.NewBookRepository()
	loanRepository := loan.NewLoanRepository()
	historyRepository := history.NewHistoryRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	var redisClient *redis.Client
	if rdb != nil {
		redisClient = rdb.Client
	}
	loginLimiter := ratelimit.New(redisClient, ratelimit.PerMinute(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst))

	// service
	accountService := account.NewAccountService(db.DB, accountRepository)
	authService := auth.NewAuthService(accountService, tokenManager)
	memberService := member.NewMemberService(db.DB, memberRepository)
	bookService := book.NewBookService(db.DB, bookRepository)
	loanService := loan.NewLoanService(db.DB, loanRepository, bookRepository, memberRepository, historyRepository)
	historyService := history.NewHistoryService(db.DB, historyRepository)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	accountHandler := account.NewAccountHandler(accountService)
	memberHandler := member.NewMemberHandler(memberService)
	bookHandler := book.NewBookHandler(bookService)
	loanHandler := loan.NewLoanHandler(loanService)
	historyHandler := history.NewHistoryHandler(historyService)

	jwt := middleware.JWT(tokenManager)
	requireStaff := middleware.RequireStaff(accountService)
	requireAdmin := middleware.RequireAdmin(accountService)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
		authV1.POST("/token/refresh", authHandler.Refresh)
		authV1.POST("/register", authHandler.Register)
		authV1.GET("/profile", jwt, authHandler.Profile)
	}

	accountV1 := router.Group("/api/v1/accounts", jwt, requireStaff)
	{
		accountV1.GET("", accountHandler.List)
		accountV1.GET("/:id", accountHandler.Get)
		accountV1.POST("", requireAdmin, accountHandler.Create)
		accountV1.PUT("/:id", requireAdmin, accountHandler.Update)
		accountV1.POST("/:id/deactivate", requireAdmin, accountHandler.Deactivate)
		accountV1.DELETE("/:id", requireAdmin, accountHandler.Delete)
	}

	memberV1 := router.Group("/api/v1/members", jwt, requireStaff)
	{
		memberV1.GET("", memberHandler.List)
		memberV1.POST("", memberHandler.Create)
		memberV1.GET("/:id", memberHandler.Get)
		memberV1.PUT("/:id", memberHandler.Update)
		memberV1.PATCH("/:id", memberHandler.Patch)
		memberV1.DELETE("/:id", memberHandler.Delete)
	}

	bookV1 := router.Group("/api/v1/books", jwt, requireStaff)
	{
		bookV1.GET("", bookHandler.List)
		bookV1.POST("", bookHandler.Create)
		bookV1.GET("/:id", bookHandler.Get)
		bookV1.PUT("/:id", bookHandler.Update)
		bookV1.PATCH("/:id", bookHandler.Patch)
		bookV1.DELETE("/:id", bookHandler.Delete)
	}

	loanV1 := router.Group("/api/v1/loans", jwt, requireStaff)
	{
		loanV1.GET("", loanHandler.List)
		loanV1.POST("", loanHandler.Issue)
		loanV1.GET("/:id", loanHandler.Get)
		loanV1.PATCH("/:id/return", loanHandler.Return)
	}

	historyV1 := router.Group("/api/v1/history", jwt, requireStaff)
	{
		historyV1.GET("", historyHandler.List)
		historyV1.GET("/:id", historyHandler.Get)
	}

	return frontend.Mount(router, frontend.NewHandler(cfg))
}
