package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jewelkart/internal/cart"
	"jewelkart/internal/checkout"
	"jewelkart/internal/config"
	"jewelkart/internal/database"
	"jewelkart/internal/handler"
	"jewelkart/internal/identity"
	"jewelkart/internal/payment"
	"jewelkart/internal/reconcile"
	"jewelkart/internal/repository"
	"jewelkart/internal/router"
	"jewelkart/internal/service"
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
	logger.Info().Msg("starting jewelkart API server")

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
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize reconcile journal with S3 and local fallback
	fileJournal := reconcile.NewFileJournal(cfg.Reconcile.LocalDir, logger)
	journal := fileJournal

	if cfg.Reconcile.S3Enabled {
		s3Journal, err := reconcile.NewS3Journal(ctx, cfg.Reconcile.Bucket, cfg.Reconcile.Region, cfg.Reconcile.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 reconcile journal, falling back to local file system only")
		} else {
			journal = reconcile.NewFallbackJournal(s3Journal, fileJournal, logger)
		}
	} else {
		logger.Info().Msg("using local file system for reconcile journal (S3 disabled)")
	}

	// Initialize payment gateway
	authorizer := payment.NewGateway(payment.GatewayConfig{
		Endpoint: cfg.Payment.Endpoint,
		APIKey:   cfg.Payment.APIKey,
		Timeout:  time.Duration(cfg.Payment.Timeout) * time.Second,
	}, logger)

	// Initialize identity provider and cart store
	provider := identity.NewProvider(userRepo, logger)
	carts := cart.NewStore()

	// Initialize checkout orchestrator
	orchestrator := checkout.New(productRepo, orderRepo, authorizer, journal, logger)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, logger)
	cartService := service.NewCartService(carts, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	checkoutHandler := handler.NewCheckoutHandler(carts, orchestrator, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, checkoutHandler, orderHandler, provider, cfg.Auth.APIKey, logger)

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
