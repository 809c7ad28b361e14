// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package metrics exposes Prometheus instrumentation for the analytics
// engines and the HTTP query surface.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interaction ingestion metrics.
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealradar_interactions_recorded_total",
			Help: "Total interaction events recorded, by action type",
		},
		[]string{"action"},
	)

	InteractionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealradar_interactions_rejected_total",
			Help: "Total interaction events rejected as malformed",
		},
		[]string{"reason"},
	)

	// Fraud detection metrics.
	FraudEventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealradar_fraud_events_processed_total",
			Help: "Total redemption events scored by the fraud engine",
		},
	)

	FraudAlertsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealradar_fraud_alerts_generated_total",
			Help: "Total fraud alerts generated, by alert type and severity",
		},
		[]string{"type", "severity"},
	)

	// Scoring latency, shared across engines.
	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealradar_scoring_duration_seconds",
			Help:    "Duration of engine scoring operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine", "operation"},
	)

	// API metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealradar_api_requests_total",
			Help: "Total API requests, by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealradar_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dealradar_api_active_requests",
			Help: "API requests currently in flight",
		},
	)

	// WebSocket metrics.
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dealradar_websocket_connections",
			Help: "Currently connected alert-stream clients",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dealradar_websocket_messages_sent_total",
			Help: "Total messages broadcast to alert-stream clients",
		},
	)
)

// ObserveScoring records the latency of a single engine operation.
//
//	defer metrics.ObserveScoring("recommend", "get_recommendations", time.Now())
func ObserveScoring(engine, operation string, start time.Time) {
	ScoringDuration.WithLabelValues(engine, operation).Observe(time.Since(start).Seconds())
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
