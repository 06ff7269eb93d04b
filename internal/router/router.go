package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/handler"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Survey    *handler.SurveyHandler
	Admin     *handler.AdminHandler
	WS        *handler.WSHandler
	System    *handler.SystemHandler
}

// Services are the services the route middlewares need.
type Services struct {
	Auth    *service.AuthService
	Account *service.AccountService
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	services *Services,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Location"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log line can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		MinLength:    middleware.DefaultBrotliConfig.MinLength,
		Quality:      middleware.DefaultBrotliConfig.Quality,
		SkipPrefixes: []string{"/ws/"},
	}))

	requireAccount := middleware.RequireAccount(services.Auth, services.Account)

	router.GET("/health", handlers.System.Health)

	// ─── 0. Landing ────────────────────────────────────────────────────
	router.GET("/", middleware.OptionalAccount(services.Auth, services.Account), handlers.Auth.Index)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("")
	auth.Use(authLimiter.Middleware())
	{
		auth.GET("/register", handlers.Auth.RegisterForm)
		auth.POST("/register", handlers.Auth.Register)
		auth.GET("/login", handlers.Auth.LoginForm)
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Account Group (Session) ────────────────────────────────────
	account := router.Group("")
	account.Use(requireAccount, middleware.NoStore())
	{
		account.GET("/logout", handlers.Auth.Logout)
		account.GET("/dashboard", handlers.Dashboard.GetDashboard)

		account.GET("/setup_survey", handlers.Survey.SetupForm)
		account.POST("/setup_survey", handlers.Survey.Setup)
		account.GET("/survey", handlers.Survey.Show)
		account.POST("/survey", handlers.Survey.Submit)

		// Role changes check super-admin themselves; a super-admin without
		// the admin flag can still use them.
		account.GET("/change_role/:account_id/:action", handlers.Admin.ChangeRole)
	}

	// ─── 3. Admin Group (Session + Admin Flag) ─────────────────────────
	admin := router.Group("")
	admin.Use(requireAccount, middleware.RequireAdmin(), middleware.NoStore())
	{
		admin.GET("/admin", handlers.Admin.GetPanel)
	}

	// ─── 4. WebSocket Group (Session + Admin Flag) ─────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(requireAccount, middleware.RequireAdmin())
	{
		ws.GET("/admin/results", handlers.WS.ResultFeed)
	}

	return router
}
