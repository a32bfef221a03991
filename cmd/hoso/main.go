package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hoso/internal/amqp"
	"hoso/internal/config"
	apphttp "hoso/internal/http"
	"hoso/internal/services"
	"hoso/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Choose snapshot backend (default: sqlite).
	var kv store.KV
	switch cfg.DataBackend {
	case "memory":
		kv = store.NewMemoryKV(cfg.SnapshotMaxBytes)
		logger.Info("Initialized memory snapshot backend", "backend", cfg.DataBackend)
	default:
		sqliteKV, err := store.NewSQLiteKV(cfg.SnapshotDBPath, cfg.SnapshotMaxBytes)
		if err != nil {
			logger.Error("Failed to initialize snapshot storage", "error", err, "path", cfg.SnapshotDBPath)
			os.Exit(1)
		}
		kv = sqliteKV
		logger.Info("Initialized sqlite snapshot backend", "backend", cfg.DataBackend, "path", cfg.SnapshotDBPath)
	}
	defer kv.Close()

	recordStore := store.Open(ctx, kv)

	// AMQP is optional: without it the app still works, only the report
	// worker stays idle.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP record events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	recordService := services.NewRecordService(recordStore, publisher)
	srv := apphttp.NewServer(":"+cfg.Port, recordService)

	// Configure server timeouts and limits
	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting hoso server", "port", cfg.Port, "records", recordStore.Len())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
