package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock/internal/config"
	"timeclock/internal/database"
	"timeclock/internal/handlers"
	"timeclock/internal/logger"
	"timeclock/internal/server"
	"timeclock/internal/validator"
)

// @title           Timeclock API
// @version         1.0
// @description     Real-time employee check-in and check-out tracking.
// @description     Accepted logs are pushed to WebSocket clients connected to /ws (outside the /api base path) as {"type":"NEW_LOG","data":EnrichedLogEntry} text frames. There is no replay on reconnect.

// @host      localhost:8080
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to declare database schema: %w", err)
	}
	if cfg.SeedOnEmpty {
		if _, err := dbManager.Seed(); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	validator.Register()

	app := server.New(dbManager.DB(), server.Options{
		AllowedOrigin:  cfg.AllowedOrigin,
		RequestLogging: true,
		Stream: handlers.StreamConfig{
			BufferSize:    cfg.WSBufferSize,
			WriteTimeout:  cfg.WSWriteTimeout,
			AllowedOrigin: cfg.AllowedOrigin,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting timeclock server on port %s (driver=%s)", cfg.Port, dbManager.Driver())
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown.
	app.Broadcaster.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
