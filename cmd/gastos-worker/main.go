package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
	"github.com/PatricioAlv/adminGastos/internal/config"
	"github.com/PatricioAlv/adminGastos/internal/export"
	applog "github.com/PatricioAlv/adminGastos/internal/log"
	"github.com/PatricioAlv/adminGastos/internal/worker"
)

func main() {
	// Load .env for local development; absent in containers.
	_ = godotenv.Load()

	logger := applog.New("gastos-worker", slog.LevelInfo)
	slog.SetDefault(logger.Logger)

	logger.Info("Starting gastos-worker")

	cfg := config.Load()
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	var writer export.RowWriter
	if cfg.GoogleSpreadsheetID != "" {
		if err := cfg.ValidateSheets(); err != nil {
			logger.Error("Sheets configuration validation failed", "error", err)
			os.Exit(1)
		}
		client, err := export.NewSheetsClient(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		writer = export.NewMemoryWriter()
		logger.Warn("Google Sheets disabled - events will be recorded in memory only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exportWorker := worker.NewExportWorker(writer)

	go func() {
		if err := exportWorker.Run(ctx, amqpClient); err != nil && err != context.Canceled {
			logger.Error("Event consumption failed", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Shutting down worker...")
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
