// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package api

import (
	"bytes"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/analytics"
	"github.com/tomtom215/dealradar/internal/config"
	"github.com/tomtom215/dealradar/internal/forecast"
	"github.com/tomtom215/dealradar/internal/fraud"
	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/models"
	"github.com/tomtom215/dealradar/internal/popularity"
	"github.com/tomtom215/dealradar/internal/pricing"
	"github.com/tomtom215/dealradar/internal/recommend"
	"github.com/tomtom215/dealradar/internal/segment"
)

func init() {
	logging.SetLogger(logging.NewTestLogger(io.Discard))
}

func newTestServer(t *testing.T) (*httptest.Server, *analytics.Service) {
	t.Helper()

	fraudEngine := fraud.NewEngine(nil)
	if err := fraudEngine.Configure(fraud.DefaultEngineConfig()); err != nil {
		t.Fatalf("configure fraud engine: %v", err)
	}

	service := analytics.NewService(analytics.Options{
		Recommender:  recommend.NewEngine(recommend.DefaultConfig()),
		Segmenter:    segment.NewSegmenter(segment.DefaultConfig(), rand.New(rand.NewSource(1))),
		Forecaster:   forecast.NewForecaster(forecast.DefaultConfig(), rand.New(rand.NewSource(1))),
		Pricer:       pricing.NewOptimizer(pricing.DefaultConfig()),
		Fraud:        fraudEngine,
		Scorer:       popularity.NewScorer(popularity.DefaultConfig()),
		AvgDealValue: 25,
	})

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}

	handler := NewHandler(service, nil, cfg, nil)
	srv := httptest.NewServer(NewRouter(handler, cfg).Setup())
	t.Cleanup(srv.Close)

	return srv, service
}

func testDeal(id, venueID string) *models.Deal {
	now := time.Now()
	return &models.Deal{
		ID:             id,
		VenueID:        venueID,
		Category:       "food",
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  25,
		Price:          30,
		StartTime:      now.Add(-2 * time.Hour),
		EndTime:        now.Add(6 * time.Hour),
		MaxRedemptions: 100,
		CreatedAt:      now.Add(-2 * time.Hour),
	}
}

func getJSON(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, envelope
}

func postJSON(t *testing.T, url string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, envelope
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	status, envelope := getJSON(t, srv.URL+"/api/v1/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if envelope["status"] != "success" {
		t.Errorf("envelope status = %v, want success", envelope["status"])
	}

	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing from envelope: %v", envelope)
	}
	if data["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", data["status"])
	}
}

func TestRecordInteraction(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadCatalog([]*models.Deal{testDeal("deal-1", "venue-1")})

	status, envelope := postJSON(t, srv.URL+"/api/v1/interactions", map[string]interface{}{
		"deal_id": "deal-1",
		"user_id": "user-1",
		"action":  "view",
	})
	if status != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (envelope %v)", status, envelope)
	}

	// The counted view should surface in recommendations for a new user.
	status, envelope = getJSON(t, srv.URL+"/api/v1/users/user-2/recommendations?limit=5")
	if status != http.StatusOK {
		t.Fatalf("recommendations status = %d, want 200", status)
	}
	data := envelope["data"].(map[string]interface{})
	recs, ok := data["recommendations"].([]interface{})
	if !ok || len(recs) == 0 {
		t.Fatalf("expected at least one recommendation, got %v", data["recommendations"])
	}
}

func TestRecordInteractionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{
			name: "missing action",
			body: map[string]interface{}{"deal_id": "d", "user_id": "u"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad action",
			body: map[string]interface{}{"deal_id": "d", "user_id": "u", "action": "teleport"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown deal",
			body: map[string]interface{}{"deal_id": "ghost", "user_id": "u", "action": "view"},
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := postJSON(t, srv.URL+"/api/v1/interactions", tt.body)
			if status != tt.want {
				t.Errorf("status = %d, want %d (envelope %v)", status, tt.want, envelope)
			}
			if envelope["status"] != "error" {
				t.Errorf("envelope status = %v, want error", envelope["status"])
			}
		})
	}
}

func TestAnalyzeRedemptionFlagsDealAbuse(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]interface{}{
		"deal_id":  "deal-1",
		"user_id":  "user-1",
		"venue_id": "venue-1",
	}

	status, envelope := postJSON(t, srv.URL+"/api/v1/redemptions", body)
	if status != http.StatusOK {
		t.Fatalf("first redemption status = %d (envelope %v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	if data["flagged"] != false {
		t.Errorf("first redemption flagged = %v, want false", data["flagged"])
	}

	// Same user redeeming the same deal again violates the single-use rule.
	status, envelope = postJSON(t, srv.URL+"/api/v1/redemptions", body)
	if status != http.StatusOK {
		t.Fatalf("second redemption status = %d", status)
	}
	data = envelope["data"].(map[string]interface{})
	if data["flagged"] != true {
		t.Errorf("second redemption flagged = %v, want true", data["flagged"])
	}

	// The alert should now be waiting in the review queue.
	status, envelope = getJSON(t, srv.URL+"/api/v1/fraud/alerts")
	if status != http.StatusOK {
		t.Fatalf("alerts status = %d", status)
	}
	data = envelope["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); total != 1 {
		t.Errorf("pending alerts = %v, want 1", data["total"])
	}
}

func TestAlertReviewLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]interface{}{
		"deal_id":  "deal-1",
		"user_id":  "user-1",
		"venue_id": "venue-1",
	}
	postJSON(t, srv.URL+"/api/v1/redemptions", body)
	postJSON(t, srv.URL+"/api/v1/redemptions", body)

	_, envelope := getJSON(t, srv.URL+"/api/v1/fraud/alerts")
	data := envelope["data"].(map[string]interface{})
	alerts := data["alerts"].([]interface{})
	if len(alerts) != 1 {
		t.Fatalf("pending alerts = %d, want 1", len(alerts))
	}
	alertID := alerts[0].(map[string]interface{})["id"].(string)

	status, _ := postJSON(t, srv.URL+"/api/v1/fraud/alerts/"+alertID+"/review", nil)
	if status != http.StatusOK {
		t.Fatalf("review status = %d, want 200", status)
	}

	status, _ = postJSON(t, srv.URL+"/api/v1/fraud/alerts/"+alertID+"/resolve", nil)
	if status != http.StatusOK {
		t.Fatalf("resolve status = %d, want 200", status)
	}

	status, _ = postJSON(t, srv.URL+"/api/v1/fraud/alerts/ghost/review", nil)
	if status != http.StatusNotFound {
		t.Errorf("review unknown alert status = %d, want 404", status)
	}
}

func TestVenueEndpointsUnknownVenue(t *testing.T) {
	srv, _ := newTestServer(t)

	paths := []string{
		"/api/v1/venues/ghost/segments",
		"/api/v1/venues/ghost/forecast",
		"/api/v1/venues/ghost/pricing?category=food",
	}
	for _, path := range paths {
		status, envelope := getJSON(t, srv.URL+path)
		if status != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, status)
		}
		if envelope["status"] != "error" {
			t.Errorf("%s envelope status = %v, want error", path, envelope["status"])
		}
	}
}

func TestForecastKnownVenue(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadHistoricalData("venue-1", nil)

	status, envelope := getJSON(t, srv.URL+"/api/v1/venues/venue-1/forecast")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (envelope %v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	hours, ok := data["hours"].([]interface{})
	if !ok || len(hours) != 24 {
		t.Errorf("expected 24 hourly predictions, got %v", data["hours"])
	}
}

func TestForecastRejectsBadDate(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadHistoricalData("venue-1", nil)

	status, _ := getJSON(t, srv.URL+"/api/v1/venues/venue-1/forecast?date=tomorrowish")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestPricingEndpoint(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadDealMetrics("venue-1", nil, nil)

	status, envelope := getJSON(t, srv.URL+"/api/v1/venues/venue-1/pricing?category=food&price=20")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (envelope %v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	if data["elasticity"] != -1.5 {
		t.Errorf("sparse-data elasticity = %v, want -1.5", data["elasticity"])
	}

	status, _ = getJSON(t, srv.URL+"/api/v1/venues/venue-1/pricing")
	if status != http.StatusBadRequest {
		t.Errorf("missing category status = %d, want 400", status)
	}
}

func TestCompareDealsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	status, envelope := postJSON(t, srv.URL+"/api/v1/pricing/compare", map[string]interface{}{
		"deal_a": map[string]interface{}{
			"deal_id": "a", "venue_id": "v", "category": "food",
			"views": 1000, "redemptions": 200, "price": 20,
		},
		"deal_b": map[string]interface{}{
			"deal_id": "b", "venue_id": "v", "category": "food",
			"views": 1000, "redemptions": 50, "price": 20,
		},
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (envelope %v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	if data["winner_id"] != "a" {
		t.Errorf("winner = %v, want a", data["winner_id"])
	}
}

func TestDealPerformanceEndpoint(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadDealMetrics("venue-1", nil, nil)

	now := time.Now()
	status, envelope := postJSON(t, srv.URL+"/api/v1/venues/venue-1/deal-performance", map[string]interface{}{
		"category":         "food",
		"discount_percent": 30,
		"start_time":       now.Format(time.RFC3339),
		"end_time":         now.Add(3 * time.Hour).Format(time.RFC3339),
		"max_redemptions":  100,
		"price":            25,
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d (envelope %v)", status, envelope)
	}

	// Inverted window is rejected before reaching the forecaster.
	status, _ = postJSON(t, srv.URL+"/api/v1/venues/venue-1/deal-performance", map[string]interface{}{
		"category":         "food",
		"discount_percent": 30,
		"start_time":       now.Format(time.RFC3339),
		"end_time":         now.Add(-time.Hour).Format(time.RFC3339),
	})
	if status != http.StatusBadRequest {
		t.Errorf("inverted window status = %d, want 400", status)
	}
}

func TestTopDealsEndpoint(t *testing.T) {
	srv, service := newTestServer(t)
	service.LoadCatalog([]*models.Deal{
		testDeal("deal-1", "venue-1"),
		testDeal("deal-2", "venue-1"),
	})

	status, envelope := getJSON(t, srv.URL+"/api/v1/deals/top?limit=5")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := envelope["data"].(map[string]interface{})
	deals, ok := data["deals"].([]interface{})
	if !ok || len(deals) != 2 {
		t.Fatalf("expected 2 scored deals, got %v", data["deals"])
	}
	first := deals[0].(map[string]interface{})
	if first["rank"] != float64(1) {
		t.Errorf("first rank = %v, want 1", first["rank"])
	}

	status, _ = getJSON(t, srv.URL+"/api/v1/deals/top?limit=500")
	if status != http.StatusBadRequest {
		t.Errorf("oversize limit status = %d, want 400", status)
	}
}

func TestNotificationPlanEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	status, envelope := getJSON(t, srv.URL+"/api/v1/users/user-1/notification-plan")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := envelope["data"].(map[string]interface{})
	plan, ok := data["plan"].(map[string]interface{})
	if !ok {
		t.Fatalf("plan missing: %v", data)
	}
	// Cold-start users get the dinner-hour default over email.
	if plan["hour"] != float64(18) {
		t.Errorf("cold start hour = %v, want 18", plan["hour"])
	}
	if plan["channel"] != "email" {
		t.Errorf("cold start channel = %v, want email", plan["channel"])
	}
}

func TestWebSocketDisabledReturns503(t *testing.T) {
	srv, _ := newTestServer(t)

	status, envelope := getJSON(t, srv.URL+"/api/v1/ws")
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 (envelope %v)", status, envelope)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestReadCacheServesRepeatLookups(t *testing.T) {
	srv, service := newTestServer(t)
	deal := testDeal("deal-1", "venue-1")
	service.LoadCatalog([]*models.Deal{deal})

	metaCached := func(envelope map[string]interface{}) bool {
		meta, ok := envelope["metadata"].(map[string]interface{})
		if !ok {
			t.Fatalf("metadata missing: %v", envelope)
		}
		cached, _ := meta["cached"].(bool)
		return cached
	}

	status, first := getJSON(t, srv.URL+"/api/v1/deals/top?limit=10")
	if status != http.StatusOK {
		t.Fatalf("first GET status = %d, want 200", status)
	}
	if metaCached(first) {
		t.Error("first lookup unexpectedly served from cache")
	}

	status, second := getJSON(t, srv.URL+"/api/v1/deals/top?limit=10")
	if status != http.StatusOK {
		t.Fatalf("second GET status = %d, want 200", status)
	}
	if !metaCached(second) {
		t.Error("repeat lookup not served from cache")
	}

	// A different limit is a different key.
	_, other := getJSON(t, srv.URL+"/api/v1/deals/top?limit=5")
	if metaCached(other) {
		t.Error("different limit served stale entry")
	}

	// Recording an interaction invalidates the read cache.
	status, _ = postJSON(t, srv.URL+"/api/v1/interactions", map[string]interface{}{
		"deal_id": "deal-1",
		"user_id": "user-1",
		"action":  "view",
	})
	if status != http.StatusAccepted {
		t.Fatalf("interaction status = %d, want 202", status)
	}

	_, fresh := getJSON(t, srv.URL+"/api/v1/deals/top?limit=10")
	if metaCached(fresh) {
		t.Error("lookup after write served stale entry")
	}
}
