package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/internal/api/v1/router"
	"learnhub/internal/config"
	"learnhub/internal/logger"

	"github.com/joho/godotenv"
)

// @title LearnHub API
// @version 1.0
// @description LearnHub e-learning API documentation
// @host localhost:8080
// @BasePath /v1
// @Schemes http https

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.ResolveSecrets(bootCtx, cfg); err != nil {
		bootCancel()
		logger.Fatal().Msgf("Error resolving secrets: %v", err)
	}

	// 2. Build router and its dependencies
	r, cleanup, err := router.New(bootCtx, cfg, logger)
	bootCancel()
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer cleanup()

	// 3. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Start server in a goroutine
	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	logger.Info().Msg("Server shut down gracefully")
}
