package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/auth"
	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/handler"
	"shopfront/internal/report"
	"shopfront/internal/repository"
	"shopfront/internal/router"
	"shopfront/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	clientRepo := repository.NewClientRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reportRepo := repository.NewSalesReportRepository(pool, logger)

	// Initialize token manager
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)

	// Initialize report store with S3 and local fallback
	fileStore := report.NewFileStore(cfg.Reports.Dir, logger)
	var reportStore report.Store

	if cfg.Reports.S3Enabled {
		s3Store, err := report.NewS3Store(ctx, cfg.Reports.S3Bucket, cfg.Reports.S3Region, cfg.Reports.S3Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 report store, falling back to local file system only")
			reportStore = fileStore
		} else {
			reportStore = s3Store
		}
	} else {
		reportStore = fileStore
		logger.Info().Msg("using local file system for report files (S3 disabled)")
	}

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, logger)
	clientService := service.NewClientService(clientRepo, userRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, clientRepo, logger)
	reportService := service.NewSalesReportService(reportRepo, orderRepo, reportStore, logger)

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService, logger)
	clientHandler := handler.NewClientHandler(clientService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, clientService, logger)
	reportHandler := handler.NewSalesReportHandler(reportService, logger)

	// Initialize router
	mux := router.New(
		userHandler,
		clientHandler,
		categoryHandler,
		productHandler,
		orderHandler,
		reportHandler,
		tokens,
		userRepo,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
