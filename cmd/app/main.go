package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/ricore77995/strikehouse-sub000/internal/config"
	"github.com/ricore77995/strikehouse-sub000/internal/db"
	"github.com/ricore77995/strikehouse-sub000/internal/email"
	"github.com/ricore77995/strikehouse-sub000/internal/logger"
	"github.com/ricore77995/strikehouse-sub000/internal/server"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go emailService.Start(ctx)

	srv := server.New(database, cfg, emailService)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port)
		errCh <- srv.Start(cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}
}
