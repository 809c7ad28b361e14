// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package main is the entry point for the Dealradar server.
//
// Dealradar is the venue-facing analytics and decision engine of a deals
// discovery platform: personalized recommendations, customer segmentation,
// demand forecasting, pricing optimization, fraud detection and popularity
// scoring, exposed over a Chi REST API with a WebSocket alert stream.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered loading (defaults, YAML file, env)
//  2. Logging: zerolog, JSON or console format
//  3. WebSocket Hub: realtime fraud alerts and score updates
//  4. Engines: recommendation, segmentation, forecasting, pricing, fraud,
//     popularity, wrapped by the analytics service
//  5. Demo corpus (optional): seeded synthetic venues, deals and histories
//  6. HTTP Server: REST API under /api/v1 plus /metrics
//
// # Configuration
//
// All settings come from DEALRADAR_-prefixed environment variables or a
// config.yaml (DEALRADAR_CONFIG_PATH overrides the search path). See
// internal/config for the full schema and defaults.
//
// # Demo Mode
//
// Start with -demo (or DEALRADAR_DEMO_ENABLED=true) to seed a
// deterministic synthetic world so every endpoint answers immediately:
//
//	./dealradar -demo
//
// The demo seed comes from DEALRADAR_DEMO_SEED; the same seed always
// produces the same corpus.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the listener stops
// accepting connections, in-flight requests get 10 seconds to finish, and
// the WebSocket hub closes every client before exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/dealradar/internal/analytics"
	"github.com/tomtom215/dealradar/internal/api"
	"github.com/tomtom215/dealradar/internal/config"
	"github.com/tomtom215/dealradar/internal/demo"
	"github.com/tomtom215/dealradar/internal/forecast"
	"github.com/tomtom215/dealradar/internal/fraud"
	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/middleware"
	"github.com/tomtom215/dealradar/internal/popularity"
	"github.com/tomtom215/dealradar/internal/pricing"
	"github.com/tomtom215/dealradar/internal/recommend"
	"github.com/tomtom215/dealradar/internal/segment"
	ws "github.com/tomtom215/dealradar/internal/websocket"
)

// perfMonWindow is the size of the rolling latency sample buffer.
const perfMonWindow = 1000

func main() {
	demoFlag := flag.Bool("demo", false, "seed a deterministic synthetic corpus on startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *demoFlag {
		cfg.Demo.Enabled = true
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Int("port", cfg.Server.Port).
		Bool("demo", cfg.Demo.Enabled).
		Msg("Starting Dealradar")

	// Hub first so the fraud engine can broadcast through it.
	hub := ws.NewHub()

	fraudEngine := fraud.NewEngine(hub)
	if err := fraudEngine.Configure(fraudConfig(cfg)); err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure fraud engine")
	}

	// Demo mode pins the seed so restarts reproduce the same world;
	// production scoring noise does not need to be reproducible.
	seed := time.Now().UnixNano()
	if cfg.Demo.Enabled {
		seed = cfg.Demo.Seed
	}

	service := analytics.NewService(analytics.Options{
		Recommender: recommend.NewEngine(recommend.Config{
			MaxResults:          cfg.Recommend.MaxResults,
			SimilarityThreshold: cfg.Recommend.SimilarityThreshold,
			NeighborLimit:       cfg.Recommend.NeighborLimit,
		}),
		Segmenter: segment.NewSegmenter(segment.Config{
			MinCustomers:  cfg.Segment.MinCustomers,
			MaxClusters:   cfg.Segment.MaxClusters,
			MaxIterations: cfg.Segment.MaxIterations,
		}, rand.New(rand.NewSource(seed))),
		Forecaster: forecast.NewForecaster(forecast.Config{
			SmoothingAlpha: cfg.Forecast.SmoothingAlpha,
			NoiseAmplitude: cfg.Forecast.NoiseAmplitude,
		}, rand.New(rand.NewSource(seed+1))),
		Pricer: pricing.NewOptimizer(pricing.Config{
			DefaultElasticity: cfg.Pricing.DefaultElasticity,
			DefaultMargin:     cfg.Pricing.DefaultMargin,
			MinDiscount:       cfg.Pricing.MinDiscount,
			MaxDiscount:       cfg.Pricing.MaxDiscount,
			TargetUplift:      pricing.DefaultConfig().TargetUplift,
		}),
		Fraud: fraudEngine,
		Scorer: popularity.NewScorer(popularity.Config{
			EngagementCeiling:   cfg.Popularity.EngagementCeiling,
			TrendingWindowHours: cfg.Popularity.TrendingWindowHours,
		}),
		AvgDealValue: cfg.Fraud.AvgDealValue,
	})

	if cfg.Demo.Enabled {
		demo.NewGenerator(cfg.Demo.Seed, time.Now()).Seed(service)
	}

	perfMon := middleware.NewPerformanceMonitor(perfMonWindow)
	handler := api.NewHandler(service, hub, cfg, perfMon)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hubDone := make(chan error, 1)
	go func() {
		hubDone <- hub.RunWithContext(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server failed")
		}
	}

	// Stop the listener, then the hub. In-flight requests get 10 seconds.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	cancel()
	if err := <-hubDone; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("WebSocket hub shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// fraudConfig maps the flat koanf fraud settings onto the per-detector
// engine configuration, keeping detector defaults for anything the flat
// config does not expose.
func fraudConfig(cfg *config.Config) fraud.EngineConfig {
	ec := fraud.DefaultEngineConfig()
	ec.Velocity.MediumThreshold = cfg.Fraud.VelocityMedium
	ec.Velocity.HighThreshold = cfg.Fraud.VelocityHigh
	ec.ImpossibleTravel.MaxSpeedKmH = cfg.Fraud.MaxSpeedKmH
	ec.NewAccount.MaxAccountAgeHours = int(cfg.Fraud.NewAccountMaxAge.Hours())
	ec.Collusion.MaxUsersPerDevice = cfg.Fraud.CollusionDeviceUsers
	return ec
}
