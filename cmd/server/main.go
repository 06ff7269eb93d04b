package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/database"
	"github.com/stemsi/gamesurvey-backend/internal/handler"
	"github.com/stemsi/gamesurvey-backend/internal/logger"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
	"github.com/stemsi/gamesurvey-backend/internal/router"
	"github.com/stemsi/gamesurvey-backend/internal/service"
	"github.com/stemsi/gamesurvey-backend/internal/survey"
	"github.com/stemsi/gamesurvey-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Game Survey Backend")

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	sessionRepo := repository.NewSessionRepository(rdb)
	progressRepo := repository.NewProgressRepository(rdb, cfg.SessionTTL)
	rateLimitRepo := repository.NewRateLimitRepository(rdb)
	resultFeed := repository.NewResultFeed(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, sessionRepo)
	accountService := service.NewAccountService(accountRepo, authService, log)
	roleService := service.NewRoleService(accountRepo, log)
	adminService := service.NewAdminService(accountRepo, resultRepo)
	surveyService := service.NewSurveyService(survey.NewDefaultEngine(), progressRepo, resultRepo, resultFeed, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, accountService, cfg, log),
		Dashboard: handler.NewDashboardHandler(surveyService, log),
		Survey:    handler.NewSurveyHandler(surveyService, log),
		Admin:     handler.NewAdminHandler(adminService, roleService, log),
		WS:        handler.NewWSHandler(resultFeed, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, log),
	}

	authLimiter := middleware.NewRateLimiter(rateLimitRepo, cfg.AuthRateLimit, time.Minute, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(&router.Services{Auth: authService, Account: accountService}, handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Hijacked WebSocket connections are not tracked by Shutdown; cancelling
	// the base context lets the feed handlers unwind.
	cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
