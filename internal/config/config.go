// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package config provides layered configuration loading for Dealradar.
//
// Configuration is resolved in three layers with clear precedence:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML config file (config.yaml, or DEALRADAR_CONFIG_PATH)
//  3. Environment variables prefixed DEALRADAR_ (highest priority)
//
// Loading is implemented with Koanf v2; see Load in koanf.go.
package config

import "time"

// Config is the root configuration for the analytics engine and its
// reference API server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Segment    SegmentConfig    `koanf:"segment"`
	Forecast   ForecastConfig   `koanf:"forecast"`
	Pricing    PricingConfig    `koanf:"pricing"`
	Fraud      FraudConfig      `koanf:"fraud"`
	Popularity PopularityConfig `koanf:"popularity"`
	Demo       DemoConfig       `koanf:"demo"`
}

// ServerConfig configures the HTTP query surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists allowed origins for the venue dashboard.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the request budget per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the zerolog facade.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// MaxResults caps the number of recommendations returned per request.
	MaxResults int `koanf:"max_results" validate:"min=1"`

	// SimilarityThreshold is the minimum Jaccard similarity for a user to
	// count as a collaborative neighbor.
	SimilarityThreshold float64 `koanf:"similarity_threshold" validate:"gte=0,lte=1"`

	// NeighborLimit restricts the collaborative boost to the most similar
	// users.
	NeighborLimit int `koanf:"neighbor_limit" validate:"min=1"`
}

// SegmentConfig tunes customer segmentation.
type SegmentConfig struct {
	// MinCustomers is the population below which clustering short-circuits
	// to a single default segment.
	MinCustomers int `koanf:"min_customers" validate:"min=1"`

	// MaxClusters caps k for k-means.
	MaxClusters int `koanf:"max_clusters" validate:"min=1"`

	// MaxIterations bounds the k-means reassignment loop.
	MaxIterations int `koanf:"max_iterations" validate:"min=1"`
}

// ForecastConfig tunes demand forecasting.
type ForecastConfig struct {
	// SmoothingAlpha is the exponential smoothing factor for the trend
	// baseline.
	SmoothingAlpha float64 `koanf:"smoothing_alpha" validate:"gt=0,lte=1"`

	// NoiseAmplitude is the half-width of the uniform perturbation applied
	// to hourly predictions.
	NoiseAmplitude float64 `koanf:"noise_amplitude" validate:"gte=0"`
}

// PricingConfig tunes pricing optimization.
type PricingConfig struct {
	// DefaultElasticity is assumed when fewer than three historical deals
	// exist or discounts show no variance.
	DefaultElasticity float64 `koanf:"default_elasticity"`

	// DefaultMargin is the assumed gross margin absent better data.
	DefaultMargin float64 `koanf:"default_margin" validate:"gt=0,lte=1"`

	// MinDiscount and MaxDiscount clamp the recommended discount percent.
	MinDiscount float64 `koanf:"min_discount" validate:"gte=0"`
	MaxDiscount float64 `koanf:"max_discount" validate:"gt=0,lte=100"`
}

// FraudConfig tunes the fraud detection rule bank.
type FraudConfig struct {
	// VelocityMedium and VelocityHigh are trailing-24h redemption counts
	// that trigger medium and high severity velocity alerts.
	VelocityMedium int `koanf:"velocity_medium" validate:"min=1"`
	VelocityHigh   int `koanf:"velocity_high" validate:"min=1"`

	// MaxSpeedKmH is the impossible-travel speed ceiling.
	MaxSpeedKmH float64 `koanf:"max_speed_kmh" validate:"gt=0"`

	// NewAccountMaxAge is how young an account must be for the new-account
	// abuse check to apply.
	NewAccountMaxAge time.Duration `koanf:"new_account_max_age"`

	// CollusionDeviceUsers is the distinct-user-per-device threshold.
	CollusionDeviceUsers int `koanf:"collusion_device_users" validate:"min=1"`

	// AvgDealValue is the assumed deal value for estimated-savings math.
	AvgDealValue float64 `koanf:"avg_deal_value" validate:"gt=0"`
}

// PopularityConfig tunes popularity scoring.
type PopularityConfig struct {
	// EngagementCeiling is the weighted-engagement total treated as the
	// 100-point reference.
	EngagementCeiling float64 `koanf:"engagement_ceiling" validate:"gt=0"`

	// TrendingWindowHours is how many recent hourly slots count as
	// "recent" for trend growth.
	TrendingWindowHours int `koanf:"trending_window_hours" validate:"min=1"`
}

// DemoConfig controls the synthetic demo corpus.
type DemoConfig struct {
	Enabled bool  `koanf:"enabled"`
	Seed    int64 `koanf:"seed"`
}

// defaultConfig returns a Config with every field at its built-in default.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8490,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			MaxResults:          20,
			SimilarityThreshold: 0.1,
			NeighborLimit:       10,
		},
		Segment: SegmentConfig{
			MinCustomers:  5,
			MaxClusters:   5,
			MaxIterations: 100,
		},
		Forecast: ForecastConfig{
			SmoothingAlpha: 0.3,
			NoiseAmplitude: 5,
		},
		Pricing: PricingConfig{
			DefaultElasticity: -1.5,
			DefaultMargin:     0.6,
			MinDiscount:       10,
			MaxDiscount:       50,
		},
		Fraud: FraudConfig{
			VelocityMedium:       10,
			VelocityHigh:         20,
			MaxSpeedKmH:          800,
			NewAccountMaxAge:     24 * time.Hour,
			CollusionDeviceUsers: 3,
			AvgDealValue:         25,
		},
		Popularity: PopularityConfig{
			EngagementCeiling:   10000,
			TrendingWindowHours: 6,
		},
		Demo: DemoConfig{
			Enabled: false,
			Seed:    1,
		},
	}
}
