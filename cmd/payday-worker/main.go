package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heiyubudget/internal/amqp"
	"heiyubudget/internal/config"
	"heiyubudget/internal/log"
	"heiyubudget/internal/services"
	"heiyubudget/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting payday-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Income entries materialized here flow through the same sync path as
	// everything else, so publish them when AMQP is available.
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP client initialized - entries will sync via heiyubudget-worker")
		}
	} else {
		logger.Info("AMQP disabled - entries will not sync to the backup")
	}

	entries := services.NewEntryService(repo, publisher)
	processor := services.NewPaydayProcessor(repo, entries)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Payday processor configured",
		"interval", cfg.PaydayInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	// Run once on startup so a worker that was down over a pay date catches
	// up immediately.
	if count, err := processor.ProcessDue(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", "error", err)
	} else {
		logger.Info("Initial processing complete", "entries_created", count)
	}

	ticker := time.NewTicker(cfg.PaydayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Payday-worker shutdown complete")
			return
		case now := <-ticker.C:
			count, err := processor.ProcessDue(ctx, now)
			if err != nil {
				logger.Error("Periodic processing failed", "error", err)
				continue
			}
			logger.Info("Periodic processing complete",
				"entries_created", count,
				"next_check", now.Add(cfg.PaydayInterval).Format("15:04:05"))
		}
	}
}
