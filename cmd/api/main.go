package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/llm"
	"storefront/internal/payment"
	"storefront/internal/realtime"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
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
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)

	// External providers
	if cfg.Stripe.APIKey == "" {
		logger.Warn().Msg("STRIPE_API_KEY is not set, checkout calls will be rejected by Stripe")
	}
	if cfg.Stripe.WebhookSecret == "" {
		logger.Warn().Msg("STRIPE_WEBHOOK_SECRET is not set, webhooks will be rejected")
	}
	processor := payment.NewStripeProcessor(cfg.Stripe, logger, payment.WithMaxNetworkRetries(0))
	completer := llm.NewClient(cfg.LLM, logger)

	hub := realtime.NewHub(logger)
	defer hub.Close()

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, logger)
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, wishlistRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, hub, logger)
	paymentService := service.NewPaymentService(processor, paymentRepo, orderService, logger)
	recommendationService := service.NewRecommendationService(completer, logger)

	// Initialize router
	e := router.New(router.Handlers{
		Auth:           handler.NewAuthHandler(authService, tokens, logger),
		Product:        handler.NewProductHandler(productService, logger),
		Cart:           handler.NewCartHandler(cartService, logger),
		Order:          handler.NewOrderHandler(orderService, logger),
		Payment:        handler.NewPaymentHandler(paymentService, logger),
		Recommendation: handler.NewRecommendationHandler(recommendationService, logger),
		Orders:         hub,
	}, tokens, cfg.Server.CORSOrigins, logger)

	// Create HTTP server; writes must outlast a completion request
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
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

		// Subscribers hold hijacked connections that Shutdown does not wait for
		hub.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
