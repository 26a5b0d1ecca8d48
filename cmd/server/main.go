package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/vitraworks/vitra/internal"
	"github.com/vitraworks/vitra/internal/bootstrap"
	"github.com/vitraworks/vitra/internal/handler"
	"github.com/vitraworks/vitra/internal/middleware"
	"github.com/vitraworks/vitra/internal/postgres"
	"github.com/vitraworks/vitra/internal/router"
	"github.com/vitraworks/vitra/internal/routes"
	"github.com/vitraworks/vitra/internal/service"
	"github.com/vitraworks/vitra/internal/storage"
	"github.com/vitraworks/vitra/internal/telemetry"
	"github.com/vitraworks/vitra/internal/worker"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize stores
	catalogStore := postgres.NewCatalogStore(pool)
	orderStore := postgres.NewOrderStore(pool)
	userStore := postgres.NewUserStore(pool)

	// Initialize file storage
	fileStore, err := storage.New(storage.Config{
		Provider:  cfg.Storage.Provider,
		LocalPath: cfg.Storage.LocalPath,
		LocalURL:  cfg.Storage.LocalURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogStore)
	orderService := service.NewOrderService(orderStore, catalogStore)
	userService := service.NewUserService(userStore)

	// Create the initial admin user if configured
	adminCfg := bootstrap.AdminConfig(cfg.Admin)
	if err := bootstrap.EnsureAdmin(ctx, userStore, &adminCfg, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Seed the pricing catalog on a fresh database
	if err := bootstrap.EnsureCatalog(ctx, catalogStore, logger); err != nil {
		return fmt.Errorf("catalog bootstrap failed: %w", err)
	}

	// Start background session cleanup
	sweeper := worker.NewSessionSweeper(userStore, time.Hour, logger)
	go sweeper.Run(ctx)

	// Initialize metrics and validation
	httpMetrics := middleware.NewMetrics("vitra")
	businessMetrics := telemetry.NewBusinessMetrics("vitra")
	validate := validator.New()

	// Build route dependencies
	deps := routes.Deps{
		Auth:        handler.NewAuthHandler(userService, businessMetrics, validate, cfg.Env == "prod"),
		Catalog:     handler.NewCatalogHandler(catalogService, businessMetrics),
		Quote:       handler.NewQuoteHandler(catalogService, businessMetrics, validate),
		Orders:      handler.NewOrderHandler(orderService, businessMetrics, validate),
		Attachments: handler.NewAttachmentHandler(fileStore, businessMetrics),
		Sessions:    userService,
		Metrics:     httpMetrics,
		UploadDir:   cfg.Storage.LocalPath,
	}

	// Build the router with the global middleware chain
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		httpMetrics.Middleware,
		router.Logger(logger),
	)
	routes.Register(r, deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
