// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/dealradar/internal/analytics"
	"github.com/tomtom215/dealradar/internal/cache"
	"github.com/tomtom215/dealradar/internal/config"
	"github.com/tomtom215/dealradar/internal/forecast"
	"github.com/tomtom215/dealradar/internal/fraud"
	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/middleware"
	"github.com/tomtom215/dealradar/internal/models"
	"github.com/tomtom215/dealradar/internal/pricing"
	ws "github.com/tomtom215/dealradar/internal/websocket"
)

// maxRecommendations caps the limit query parameter on list endpoints.
const maxRecommendations = 50

// readCacheTTL bounds staleness of the venue-analytics read cache. The
// underlying engines recompute on every call, so dashboard polling would
// otherwise re-run segmentation and forecasting each refresh.
const readCacheTTL = 30 * time.Second

// Handler bundles the dependencies the HTTP endpoints need.
type Handler struct {
	service   *analytics.Service
	hub       *ws.Hub
	config    *config.Config
	perfMon   *middleware.PerformanceMonitor
	readCache *cache.Cache

	startedAt time.Time
}

// NewHandler creates a Handler. hub may be nil when the realtime stream is
// disabled.
func NewHandler(service *analytics.Service, hub *ws.Hub, cfg *config.Config, perfMon *middleware.PerformanceMonitor) *Handler {
	return &Handler{
		service:   service,
		hub:       hub,
		config:    cfg,
		perfMon:   perfMon,
		readCache: cache.New(readCacheTTL),
		startedAt: time.Now(),
	}
}

// Health reports liveness plus basic runtime facts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	clients := 0
	if h.hub != nil {
		clients = h.hub.GetClientCount()
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"uptime_seconds":    int64(time.Since(h.startedAt).Seconds()),
		"websocket_clients": clients,
	}, start)
}

// Performance exposes the in-process latency monitor.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.perfMon == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_AVAILABLE", "Performance monitoring is disabled", nil)
		return
	}

	cacheStats := h.readCache.GetStats()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"endpoints": h.perfMon.GetStats(),
		"cache": map[string]interface{}{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"evictions": cacheStats.Evictions,
			"keys":      cacheStats.TotalKeys,
			"hit_rate":  h.readCache.HitRate(),
		},
	}, start)
}

// interactionRequest is the POST /interactions body.
type interactionRequest struct {
	DealID    string    `json:"deal_id" validate:"required"`
	UserID    string    `json:"user_id" validate:"required"`
	Action    string    `json:"action" validate:"required,oneof=view save share redeem"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordInteraction ingests a view/save/share/redeem event and pushes the
// deal's refreshed popularity score to connected dashboards.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req interactionRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	at := req.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	if err := h.service.RecordInteraction(req.DealID, req.UserID, models.ActionType(req.Action), at); err != nil {
		respondError(w, http.StatusNotFound, "UNKNOWN_ENTITY", "Deal not found", err)
		return
	}

	h.readCache.Clear()
	h.broadcastScoreUpdate(req.DealID, at)

	respondSuccess(w, http.StatusAccepted, map[string]interface{}{
		"recorded": true,
	}, start)
}

// broadcastScoreUpdate pushes the deal's current overall score and rank to
// the realtime stream. Best effort; dropped silently without a hub.
func (h *Handler) broadcastScoreUpdate(dealID string, now time.Time) {
	if h.hub == nil {
		return
	}
	for _, score := range h.service.GetTopDeals(maxRecommendations, now) {
		if score.DealID == dealID {
			h.hub.BroadcastScoreUpdate(dealID, score.Overall, score.Rank)
			return
		}
	}
}

// redemptionRequest is the POST /redemptions body.
type redemptionRequest struct {
	DealID    string          `json:"deal_id" validate:"required"`
	UserID    string          `json:"user_id" validate:"required"`
	VenueID   string          `json:"venue_id" validate:"required"`
	Timestamp time.Time       `json:"timestamp"`
	Location  models.Location `json:"location"`
	DeviceID  string          `json:"device_id"`

	AccountCreatedAt time.Time `json:"account_created_at"`
}

// AnalyzeRedemption runs a redemption through interaction counting and the
// fraud checks. The winning alert, if any, is returned and also pushed to
// the realtime stream by the fraud engine.
func (h *Handler) AnalyzeRedemption(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req redemptionRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	at := req.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	// Redemptions of catalogued deals also count toward popularity and
	// collaborative signals. Off-catalog redemptions are still fraud-checked.
	if err := h.service.RecordInteraction(req.DealID, req.UserID, models.ActionRedeem, at); err != nil {
		logging.Debug().Str("deal_id", sanitizeLogValue(req.DealID)).Msg("redemption for deal outside catalog")
	}
	h.readCache.Clear()

	event := &models.RedemptionEvent{
		DealID:           req.DealID,
		UserID:           req.UserID,
		VenueID:          req.VenueID,
		Timestamp:        at,
		Location:         req.Location,
		DeviceID:         req.DeviceID,
		AccountCreatedAt: req.AccountCreatedAt,
	}

	alert, err := h.service.AnalyzeRedemption(r.Context(), event)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid redemption event", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"flagged": alert != nil,
		"alert":   alert,
	}, start)
}

// GetRecommendations returns ranked deal recommendations for a user.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > maxRecommendations {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be 1 to 50", nil)
		return
	}

	recs := h.service.GetRecommendations(userID, limit, time.Now())

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id":         userID,
		"recommendations": recs,
	}, start)
}

// GetNotificationPlan returns the predicted send hour, channel and cadence
// for a user.
func (h *Handler) GetNotificationPlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "userID")
	plan := h.service.PredictNotificationTime(userID, time.Now())

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"plan":    plan,
	}, start)
}

// GetSegments returns the venue's customer segments.
func (h *Handler) GetSegments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	venueID := chi.URLParam(r, "venueID")

	key := cache.GenerateKey("segments", venueID)
	if data, ok := h.readCache.Get(key); ok {
		respondCachedSuccess(w, data, start)
		return
	}

	segments, err := h.service.SegmentCustomers(venueID, time.Now())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	payload := map[string]interface{}{
		"venue_id": venueID,
		"segments": segments,
	}
	h.readCache.Set(key, payload)
	respondSuccess(w, http.StatusOK, payload, start)
}

// GetForecast returns the 24-hour demand forecast for a venue. The date
// query parameter is RFC3339 and defaults to tomorrow.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	venueID := chi.URLParam(r, "venueID")
	date, err := getTimeParam(r, "date", time.Now().AddDate(0, 0, 1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "date must be RFC3339", err)
		return
	}

	// Key on the calendar day, not the instant, so default-date requests
	// made moments apart share an entry.
	key := cache.GenerateKey("forecast", map[string]string{
		"venue_id": venueID,
		"date":     date.Format("2006-01-02"),
	})
	if data, ok := h.readCache.Get(key); ok {
		respondCachedSuccess(w, data, start)
		return
	}

	fc, err := h.service.ForecastDemand(venueID, date, time.Now())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.readCache.Set(key, fc)
	respondSuccess(w, http.StatusOK, fc, start)
}

// dealPerformanceRequest is the POST /venues/{venueID}/deal-performance body.
type dealPerformanceRequest struct {
	Category        string    `json:"category" validate:"required"`
	DiscountPercent float64   `json:"discount_percent" validate:"gte=0,lte=100"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required"`
	MaxRedemptions  int       `json:"max_redemptions" validate:"gte=0"`
	Price           float64   `json:"price" validate:"gte=0"`
}

// PredictDealPerformance projects views, redemptions and revenue for a
// proposed deal, with an optimal-window suggestion.
func (h *Handler) PredictDealPerformance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	venueID := chi.URLParam(r, "venueID")

	var req dealPerformanceRequest
	if decodeBody(w, r, &req) != nil {
		return
	}
	if !req.EndTime.After(req.StartTime) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "end_time must be after start_time", nil)
		return
	}

	perf, err := h.service.PredictDealPerformance(forecast.DealProposal{
		VenueID:         venueID,
		Category:        req.Category,
		DiscountPercent: req.DiscountPercent,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxRedemptions:  req.MaxRedemptions,
		Price:           req.Price,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, perf, start)
}

// GetPricing returns the discount recommendation for a venue and category.
func (h *Handler) GetPricing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	venueID := chi.URLParam(r, "venueID")
	category := r.URL.Query().Get("category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "category query parameter is required", nil)
		return
	}
	price := getFloatParam(r, "price", 0)

	key := cache.GenerateKey("pricing", map[string]interface{}{
		"venue_id": venueID,
		"category": category,
		"price":    price,
	})
	if data, ok := h.readCache.Get(key); ok {
		respondCachedSuccess(w, data, start)
		return
	}

	rec, err := h.service.GetRecommendation(venueID, category, price)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.readCache.Set(key, rec)
	respondSuccess(w, http.StatusOK, rec, start)
}

// compareRequest is the POST /pricing/compare body.
type compareRequest struct {
	DealA pricing.DealRecord `json:"deal_a" validate:"required"`
	DealB pricing.DealRecord `json:"deal_b" validate:"required"`
}

// CompareDeals runs an A/B significance test between two deal records.
func (h *Handler) CompareDeals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req compareRequest
	if decodeBody(w, r, &req) != nil {
		return
	}

	result := h.service.CompareDeals(req.DealA, req.DealB)
	respondSuccess(w, http.StatusOK, result, start)
}

// GetPendingAlerts lists fraud alerts awaiting review.
func (h *Handler) GetPendingAlerts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	alerts := h.service.GetPendingAlerts()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"total":  len(alerts),
		"alerts": alerts,
	}, start)
}

// ReviewAlert moves a pending alert into the reviewed state.
func (h *Handler) ReviewAlert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	alertID := chi.URLParam(r, "alertID")
	if err := h.service.ReviewAlert(alertID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alert_id": alertID,
		"status":   "reviewed",
	}, start)
}

// ResolveAlert closes an alert.
func (h *Handler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	alertID := chi.URLParam(r, "alertID")
	if err := h.service.ResolveAlert(alertID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alert_id": alertID,
		"status":   "resolved",
	}, start)
}

// GetFraudAnalytics summarizes alert volume, severity mix and estimated
// savings.
func (h *Handler) GetFraudAnalytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	respondSuccess(w, http.StatusOK, h.service.GetFraudAnalytics(), start)
}

// GetTopDeals returns deals ranked by overall popularity score.
func (h *Handler) GetTopDeals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > maxRecommendations {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be 1 to 50", nil)
		return
	}

	key := cache.GenerateKey("top-deals", limit)
	if data, ok := h.readCache.Get(key); ok {
		respondCachedSuccess(w, data, start)
		return
	}

	scores := h.service.GetTopDeals(limit, time.Now())
	payload := map[string]interface{}{
		"total": len(scores),
		"deals": scores,
	}
	h.readCache.Set(key, payload)
	respondSuccess(w, http.StatusOK, payload, start)
}

// respondServiceError maps service-layer sentinel errors to HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analytics.ErrUnknownEntity):
		respondError(w, http.StatusNotFound, "UNKNOWN_ENTITY", "Unknown venue or user", err)
	case errors.Is(err, fraud.ErrAlertNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Alert not found", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error", err)
	}
}
