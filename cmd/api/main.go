package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resolvedesk/quote-api/docs"
	"github.com/resolvedesk/quote-api/internal/auth"
	"github.com/resolvedesk/quote-api/internal/config"
	"github.com/resolvedesk/quote-api/internal/database"
	"github.com/resolvedesk/quote-api/internal/engine"
	"github.com/resolvedesk/quote-api/internal/http/handler"
	"github.com/resolvedesk/quote-api/internal/http/middleware"
	"github.com/resolvedesk/quote-api/internal/http/router"
	"github.com/resolvedesk/quote-api/internal/jobs"
	"github.com/resolvedesk/quote-api/internal/logger"
	"github.com/resolvedesk/quote-api/internal/repository"
	"github.com/resolvedesk/quote-api/internal/service"
	"go.uber.org/zap"
)

// @title ResolveDesk Quote API
// @version 1.0
// @description Quote versioning, revision audit, and approval API for support tickets
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@resolvedesk.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "quotes-staging.resolvedesk.io"
	case "production":
		docs.SwaggerInfo.Host = "quotes.resolvedesk.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema migrations are owned by cmd/migrate; auto-migrate only in development
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
	}

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	revisionRepo := repository.NewQuoteRevisionRepository(db)
	approvalRepo := repository.NewQuoteApprovalRepository(db)
	ruleRepo := repository.NewCalculationRuleRepository(db)
	profileRepo := repository.NewRateProfileRepository(db)
	userPermissionRepo := repository.NewUserPermissionRepository(db, log)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	resolver := engine.NewResolver(ruleRepo, profileRepo, log)
	permissionService := service.NewPermissionService(userPermissionRepo, log)
	guard := service.NewVisibilityGuard(permissionService, log)
	revisionService := service.NewRevisionService(revisionRepo, quoteRepo, guard, permissionService, log)
	quoteService := service.NewQuoteService(quoteRepo, ticketRepo, revisionRepo, resolver, guard, permissionService, revisionService, db, log)
	approvalService := service.NewApprovalService(approvalRepo, quoteRepo, guard, permissionService, db, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	approvalHandler := handler.NewApprovalHandler(approvalService, log)
	revisionHandler := handler.NewRevisionHandler(revisionService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		quoteHandler,
		approvalHandler,
		revisionHandler,
	)

	// Background jobs: purge expired sessions and permission overrides
	scheduler := jobs.NewScheduler(log)
	purgeJob := jobs.NewSessionPurgeJob(sessionRepo, permissionService, log, 5*time.Minute)
	if err := scheduler.AddJob(jobs.SessionPurgeJobName, jobs.SessionPurgeSchedule, purgeJob.Run); err != nil {
		log.Error("Failed to register session purge job", zap.Error(err))
	} else {
		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("job", jobs.SessionPurgeJobName),
			zap.String("cron_expr", jobs.SessionPurgeSchedule),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler before draining requests
		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
