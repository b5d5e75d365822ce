// Package main provides the entry point for the SalesBoard chat-bot service.
package main

import (
	"SalesBoard-Backend/internal/config"
	"SalesBoard-Backend/internal/database"
	httpHandler "SalesBoard-Backend/internal/handler/http"
	"SalesBoard-Backend/internal/notifier"
	"SalesBoard-Backend/internal/repository/postgres"
	"SalesBoard-Backend/internal/service"
	"SalesBoard-Backend/pkg/logger"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting SalesBoard service",
		zap.String("env", cfg.Env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Int("admins", len(cfg.Bot.Admins)))

	if cfg.Bot.BotID == "" {
		log.Fatal("BOT_ID is not configured")
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Initialize storage, notifier and the command interpreter
	storage := postgres.New(db, log)
	groupMe := notifier.New(&cfg.Bot, log)
	interpreter := service.NewInterpreter(storage, groupMe, &cfg.Bot, &cfg.Leaderboard, log)

	// Create HTTP server for the chat callback
	httpAPIServer := httpHandler.NewServer(storage, interpreter, log)
	httpMux := httpAPIServer.SetupRoutes()

	addr := fmt.Sprintf(":%d", cfg.HTTPServer.Port)
	webhookServer := &http.Server{
		Addr:         addr,
		Handler:      httpMux,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting webhook HTTP server", zap.String("address", addr))

	go func() {
		if err := webhookServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("webhook HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down SalesBoard service...")

	// Gracefully stop HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := webhookServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown webhook HTTP server", zap.Error(err))
	} else {
		log.Info("webhook HTTP server stopped")
	}
}
