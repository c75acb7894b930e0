package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/ai"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/negotiation_tracker/internal/core/services"
	"github.com/SscSPs/negotiation_tracker/internal/handlers"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/SscSPs/negotiation_tracker/internal/platform/config"
	"github.com/SscSPs/negotiation_tracker/internal/platform/metrics"
	"github.com/SscSPs/negotiation_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/negotiation_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/negotiation_tracker/internal/repositories/instrumented"
	"github.com/SscSPs/negotiation_tracker/internal/utils"
	"github.com/SscSPs/negotiation_tracker/migrations"
	"github.com/SscSPs/negotiation_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const formSweepInterval = time.Minute

// @title Negotiation Tracker API
// @version 1.0
// @description Sales negotiation tracking: records, dashboard, editing forms with AI assist and CSV export.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// run wires the application and serves until ctx is done. Every resource it
// opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	m := metrics.New()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize remote store: %w", err)
	}
	defer func() {
		if cerr := repos.Closer.Close(); cerr != nil {
			logger.Error("Error closing remote store", slog.String("error", cerr.Error()))
		}
	}()
	repos = instrumented.Wrap(repos, m)

	assistant, closeAssistant := buildAssistant(ctx, cfg, m, logger)
	defer closeAssistant()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	forms := services.NewFormSessionRegistry(cfg.FormSessionTTL)
	go forms.Run(ctx, formSweepInterval)

	container := services.NewServiceContainer(cfg, repos, services.Dependencies{
		Assistant: assistant,
		Metrics:   m,
		Forms:     forms,
	})

	// The server starts even if the first load fails; the store reports Failed until a reload succeeds.
	if err := container.Store.Load(middleware.WithLogger(ctx, logger)); err != nil {
		logger.Warn("Initial load failed", slog.String("error", err.Error()))
	}

	aiLimiter, err := middleware.NewMemoryLimiter(cfg.AIRateLimit)
	if err != nil {
		return fmt.Errorf("invalid AI_RATE_LIMIT %q: %w", cfg.AIRateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, handlers.RouteDeps{
		Metrics:   m,
		Posthog:   posthogClient,
		AILimiter: aiLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("driver", cfg.RepositoryDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	<-shutdownDone
	return nil
}

// openRepositories connects the configured remote store and prepares its schema.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.RepositoryDriver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("SQLite database ready", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), nil

	default:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), nil
	}
}

// buildAssistant wires the AI helper: Gemini, optionally cached in Redis, with
// every call counted. Without an API key the helper is absent.
func buildAssistant(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (ai.Optional, func()) {
	noop := func() {}
	if cfg.GeminiAPIKey == "" {
		return ai.None(), noop
	}

	gemini, err := ai.NewGeminiAssistant(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Failed to initialize Gemini client, AI assist disabled", slog.String("error", err.Error()))
		return ai.None(), noop
	}
	var assistant ai.Assistant = gemini
	closer := noop

	if cfg.RedisURL != "" {
		client, err := ai.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL, AI responses will not be cached", slog.String("error", err.Error()))
		} else {
			assistant = ai.NewCachedAssistant(assistant, client, cfg.AICacheTTL)
			closer = closeWith(client, logger)
			logger.Info("AI response cache enabled", slog.Duration("ttl", cfg.AICacheTTL))
		}
	}

	logger.Info("AI assist enabled", slog.String("model", cfg.GeminiModel))
	return ai.Some(ai.Observe(assistant, m)), closer
}

func closeWith(c io.Closer, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("Error closing AI cache client", slog.String("error", err.Error()))
		}
	}
}
