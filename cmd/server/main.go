package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/ice-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/ice-report-service/internal/adapter/sheets"
	"github.com/couchcryptid/ice-report-service/internal/config"
	"github.com/couchcryptid/ice-report-service/internal/i18n"
	"github.com/couchcryptid/ice-report-service/internal/observability"
	"github.com/couchcryptid/ice-report-service/internal/pipeline"
	"github.com/couchcryptid/ice-report-service/internal/prefs"
	"github.com/couchcryptid/ice-report-service/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Exporter is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var exporter pipeline.Exporter
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		exporter = writer
		metrics.ExportEnabled.Set(1)
		logger.Info("kafka export enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka export disabled")
	}

	source := sheets.NewClient(cfg.SheetURL, cfg.FetchTimeout, logger)
	store := prefs.NewStore(cfg.PrefsPath, logger)
	root := pipeline.New(source, exporter, store, logger, metrics)
	bundle := i18n.NewBundle()

	srv := web.NewServer(cfg.HTTPAddr, root, bundle, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial load; a failure is not fatal, the first successful refresh
	// will populate the working set.
	if err := root.Reload(ctx); err != nil {
		logger.Error("initial sheet load failed", "error", err)
	}

	go root.RunPeriodicRefresh(ctx, cfg.RefreshInterval)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	root.Close()

	logger.Info("shutdown complete")
}
