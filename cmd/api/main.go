package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutricalc/internal/auth"
	"nutricalc/internal/config"
	"nutricalc/internal/database"
	"nutricalc/internal/fdc"
	"nutricalc/internal/handler"
	"nutricalc/internal/nutrient"
	"nutricalc/internal/repository"
	"nutricalc/internal/router"
	"nutricalc/internal/seed"
	"nutricalc/internal/service"

	"github.com/rs/zerolog"
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
	logger.Info().Msg("starting nutricalc API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	// Initialize repositories
	recipeRepo := repository.NewRecipeRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize the nutrient cache and resolution pipeline
	cache, closeCache, err := newNutrientCache(ctx, cfg.Cache, pool, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize nutrient cache: %w", err)
	}
	defer closeCache()

	fdcClient := fdc.NewClient(cfg.FDC, logger)
	resolver := nutrient.NewResolver(cache, fdcClient, logger)
	aggregator := nutrient.NewAggregator(resolver, cfg.Aggregate.Concurrency, logger)

	// Warm the cache in the background; a cold cache only costs latency.
	if cfg.Seed.Enabled {
		go warmCache(ctx, cfg, cache, logger)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	nutritionService := service.NewNutritionService(fdcClient, aggregator, logger)
	recipeService := service.NewRecipeService(recipeRepo, aggregator, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Health:    handler.NewHealthHandler(pool, logger),
		Auth:      handler.NewAuthHandler(authService, logger),
		Nutrition: handler.NewNutritionHandler(nutritionService, logger),
		Recipe:    handler.NewRecipeHandler(recipeService, logger),
	}, tokens, router.Limits{
		PerHour:         cfg.RateLimit.PerHour,
		PerDay:          cfg.RateLimit.PerDay,
		SearchPerMinute: cfg.RateLimit.SearchPerMinute,
		TrustProxy:      cfg.RateLimit.TrustProxy,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

		// Stop background work such as cache warm-up
		cancel()

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

// warmCache loads the configured seed files into cache. Failures are logged
// and the server keeps running.
func warmCache(ctx context.Context, cfg *config.Config, cache nutrient.Cache, logger zerolog.Logger) {
	fileLoader := seed.NewFileLoader(logger)
	var s3Loader seed.Loader

	if cfg.S3.Enabled {
		loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	result, err := seed.Warm(ctx, cfg.Seed.Files, loader, cache, logger)
	if err != nil {
		logger.Error().Err(err).Msg("cache warm-up failed, continuing with a cold cache")
		return
	}

	logger.Info().
		Int("files", result.Files).
		Int("records", result.Records).
		Msg("cache warm-up completed")
}
