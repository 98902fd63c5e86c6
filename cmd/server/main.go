package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/drivelane/driving-school-backend/internal/app"
	"github.com/drivelane/driving-school-backend/internal/config"
	"github.com/drivelane/driving-school-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.IsProduction)
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("failed to init migrator", zap.Error(err))
	}
	if err := migrator.Up(ctx); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("database migrated", zap.Int64("version", version))
	}
	migrator.Close()

	container := app.NewContainer(app.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		DBPool:              pool,
		Logger:              logger,
		JWTSecret:           cfg.JWTSecret,
		JWTTTL:              cfg.JWTAccessTokenTTL,
		BcryptCost:          cfg.BcryptCost,
		CancellationWindow:  cfg.CancellationWindow,
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		BranchTimezone:      cfg.BranchTimezone,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
