// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/dealradar/internal/config"
	"github.com/tomtom215/dealradar/internal/middleware"
)

// Router wires the handlers into a Chi mux with the middleware stack.
type Router struct {
	handler *Handler
	config  *config.Config
}

// NewRouter creates a Router around the given handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		config:  cfg,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so the internal/middleware helpers plug
// into r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.corsHandler())

	// Prometheus scrape endpoint, outside the rate-limited API tree.
	r.Handle("/metrics", promhttp.Handler())

	// Health gets a permissive per-IP budget so monitors can poll freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", router.handler.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimiter())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))
		if router.handler.perfMon != nil {
			r.Use(router.handler.perfMon.Middleware)
		}

		// Ingestion.
		r.Post("/interactions", router.handler.RecordInteraction)
		r.Post("/redemptions", router.handler.AnalyzeRedemption)

		// Per-user surfaces.
		r.Get("/users/{userID}/recommendations", router.handler.GetRecommendations)
		r.Get("/users/{userID}/notification-plan", router.handler.GetNotificationPlan)

		// Venue analytics.
		r.Get("/venues/{venueID}/segments", router.handler.GetSegments)
		r.Get("/venues/{venueID}/forecast", router.handler.GetForecast)
		r.Get("/venues/{venueID}/pricing", router.handler.GetPricing)
		r.Post("/venues/{venueID}/deal-performance", router.handler.PredictDealPerformance)

		// Pricing experiments.
		r.Post("/pricing/compare", router.handler.CompareDeals)

		// Fraud review queue.
		r.Get("/fraud/alerts", router.handler.GetPendingAlerts)
		r.Post("/fraud/alerts/{alertID}/review", router.handler.ReviewAlert)
		r.Post("/fraud/alerts/{alertID}/resolve", router.handler.ResolveAlert)
		r.Get("/fraud/analytics", router.handler.GetFraudAnalytics)

		// Popularity leaderboard.
		r.Get("/deals/top", router.handler.GetTopDeals)

		// Ops.
		r.Get("/performance", router.handler.Performance)
		r.Get("/ws", router.handler.WebSocket)
	})

	return r
}

// corsHandler builds the CORS middleware from configuration. CORS is global
// so OPTIONS preflights are answered before rate limiting.
func (router *Router) corsHandler() func(http.Handler) http.Handler {
	origins := []string{"*"}
	if router.config != nil && len(router.config.Server.CORSOrigins) > 0 {
		origins = router.config.Server.CORSOrigins
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// rateLimiter builds the per-IP request limiter from configuration.
func (router *Router) rateLimiter() func(http.Handler) http.Handler {
	reqs := 100
	window := time.Minute
	if router.config != nil && router.config.Server.RateLimitReqs > 0 {
		reqs = router.config.Server.RateLimitReqs
	}
	if router.config != nil && router.config.Server.RateLimitWindow > 0 {
		window = router.config.Server.RateLimitWindow
	}

	return httprate.Limit(
		reqs,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
