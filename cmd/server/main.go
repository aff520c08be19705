package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/coastal-early-warning/internal/adapter/baseline"
	httpadapter "github.com/couchcryptid/coastal-early-warning/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/coastal-early-warning/internal/adapter/kafka"
	"github.com/couchcryptid/coastal-early-warning/internal/adapter/mlbridge"
	"github.com/couchcryptid/coastal-early-warning/internal/adapter/openweather"
	"github.com/couchcryptid/coastal-early-warning/internal/config"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
	"github.com/couchcryptid/coastal-early-warning/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Model handles: the bridge when configured, baseline predictors
	// otherwise. A failed bridge check leaves the pipeline refusing
	// assessments instead of failing them one by one.
	var (
		forecaster  domain.Forecaster
		scorer      domain.AnomalyScorer
		modelsReady = true
	)
	if cfg.ModelBridgeEnabled {
		bridge := mlbridge.NewClient(cfg, logger)
		forecaster, scorer = bridge, bridge

		checkCtx, cancel := context.WithTimeout(context.Background(), cfg.ModelBridgeTimeout)
		if err := bridge.CheckModels(checkCtx); err != nil {
			logger.Error("model bridge unavailable, refusing assessments", "url", cfg.ModelBridgeURL, "error", err)
			modelsReady = false
		} else {
			logger.Info("model bridge ready", "url", cfg.ModelBridgeURL)
		}
		cancel()
	} else {
		forecaster = baseline.NewMeanForecaster(cfg.WindowSize)
		scorer = baseline.DefaultZScoreScorer()
		logger.Info("model bridge disabled, using baseline predictors")
	}

	// Live assessment is feature-flagged on the provider API key.
	var weather pipeline.WeatherSource
	if cfg.OpenWeatherEnabled {
		client := openweather.NewClient(cfg, logger, metrics)
		weather = openweather.NewCachedSource(client, cfg.OpenWeatherCacheTTL, metrics)
		logger.Info("live assessment enabled", "cache_ttl", cfg.OpenWeatherCacheTTL)
	} else {
		logger.Info("live assessment disabled: OPENWEATHER_API_KEY not set")
	}

	var alerts pipeline.AlertPublisher
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		alerts = publisher
		logger.Info("kafka alert publishing enabled", "topic", cfg.KafkaAlertTopic)
	}

	thresholds := domain.Thresholds{High: cfg.HighThreshold, Medium: cfg.MediumThreshold}
	p := pipeline.New(forecaster, scorer, weather, alerts, logger, metrics, cfg.WindowSize, thresholds)
	p.SetModelsReady(modelsReady)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
