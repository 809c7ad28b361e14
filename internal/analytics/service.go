// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/dealradar/internal/forecast"
	"github.com/tomtom215/dealradar/internal/fraud"
	"github.com/tomtom215/dealradar/internal/models"
	"github.com/tomtom215/dealradar/internal/popularity"
	"github.com/tomtom215/dealradar/internal/pricing"
	"github.com/tomtom215/dealradar/internal/recommend"
	"github.com/tomtom215/dealradar/internal/segment"
)

// ErrUnknownEntity is returned for queries against venue or user IDs no
// loader has ever seen. Sparse-but-known entities fall back to engine
// defaults instead.
var ErrUnknownEntity = errors.New("unknown entity")

// Service bundles the six engines behind one synchronized surface.
type Service struct {
	// One coarse lock: the engines are read-modify-write over shared maps
	// with no internal synchronization.
	mu sync.Mutex

	recommender *recommend.Engine
	segmenter   *segment.Segmenter
	forecaster  *forecast.Forecaster
	pricer      *pricing.Optimizer
	fraud       *fraud.Engine
	scorer      *popularity.Scorer

	avgDealValue float64

	customers   map[string][]*models.CustomerRecord
	knownVenues map[string]bool
}

// Options carries the engine instances the Service coordinates. All
// fields are required.
type Options struct {
	Recommender *recommend.Engine
	Segmenter   *segment.Segmenter
	Forecaster  *forecast.Forecaster
	Pricer      *pricing.Optimizer
	Fraud       *fraud.Engine
	Scorer      *popularity.Scorer

	// AvgDealValue feeds the fraud savings estimate.
	AvgDealValue float64
}

// NewService creates the coordination layer.
func NewService(opts Options) *Service {
	if opts.AvgDealValue <= 0 {
		opts.AvgDealValue = 25
	}

	return &Service{
		recommender:  opts.Recommender,
		segmenter:    opts.Segmenter,
		forecaster:   opts.Forecaster,
		pricer:       opts.Pricer,
		fraud:        opts.Fraud,
		scorer:       opts.Scorer,
		avgDealValue: opts.AvgDealValue,
		customers:    make(map[string][]*models.CustomerRecord),
		knownVenues:  make(map[string]bool),
	}
}

// RecordInteraction ingests one user interaction, updating the deal
// catalog counters, the user profile and the popularity histograms.
func (s *Service) RecordInteraction(dealID, userID string, action models.ActionType, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recommender.RecordInteraction(dealID, userID, action, now); err != nil {
		return err
	}
	s.scorer.RecordActivity(dealID, action, now)
	return nil
}

// AnalyzeRedemption runs the fraud checks for one redemption event and
// returns the winning alert, or nil when nothing fired.
func (s *Service) AnalyzeRedemption(ctx context.Context, event *models.RedemptionEvent) (*fraud.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraud.AnalyzeRedemption(ctx, event)
}

// LoadCatalog bulk-replaces the deal catalog used by recommendations and
// popularity scoring.
func (s *Service) LoadCatalog(deals []*models.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recommender.LoadCatalog(deals)
	s.scorer.LoadDealMetrics(deals)
	for _, d := range deals {
		s.knownVenues[d.VenueID] = true
	}
}

// LoadUserProfiles bulk-replaces the recommendation preference profiles.
func (s *Service) LoadUserProfiles(profiles []*models.UserPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommender.LoadUserProfiles(profiles)
}

// LoadActivities bulk-replaces the cross-user activity log.
func (s *Service) LoadActivities(activities []models.UserActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommender.LoadActivities(activities)
}

// LoadCustomerData bulk-replaces a venue's customer aggregates.
func (s *Service) LoadCustomerData(venueID string, customers []*models.CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers[venueID] = customers
	s.knownVenues[venueID] = true
}

// LoadHistoricalData bulk-replaces a venue's hourly traffic history.
func (s *Service) LoadHistoricalData(venueID string, samples []models.TrafficSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecaster.LoadHistoricalData(venueID, samples)
	s.knownVenues[venueID] = true
}

// LoadDealMetrics bulk-replaces a venue's completed-deal history for
// pricing and deal-performance projections.
func (s *Service) LoadDealMetrics(venueID string, records []pricing.DealRecord, history []*models.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pricer.LoadDealMetrics(venueID, records)
	s.forecaster.LoadDealMetrics(venueID, history)
	s.knownVenues[venueID] = true
}

// LoadCompetitorBenchmarks bulk-replaces category-level competitor
// discount averages.
func (s *Service) LoadCompetitorBenchmarks(benchmarks map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricer.LoadCompetitorBenchmarks(benchmarks)
}

// GetRecommendations returns scored deals for a user.
func (s *Service) GetRecommendations(userID string, limit int, now time.Time) []recommend.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommender.GetRecommendations(userID, limit, now)
}

// PredictNotificationTime picks the best notification slot for a user.
func (s *Service) PredictNotificationTime(userID string, now time.Time) recommend.NotificationPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommender.PredictNotificationTime(userID, now)
}

// SegmentCustomers clusters a known venue's customers.
func (s *Service) SegmentCustomers(venueID string, now time.Time) ([]models.CustomerSegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownVenues[venueID] {
		return nil, fmt.Errorf("%w: venue %s", ErrUnknownEntity, venueID)
	}
	return s.segmenter.SegmentCustomers(venueID, s.customers[venueID], now), nil
}

// ForecastDemand predicts hourly traffic for a known venue on a date.
func (s *Service) ForecastDemand(venueID string, date, now time.Time) (forecast.DemandForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownVenues[venueID] {
		return forecast.DemandForecast{}, fmt.Errorf("%w: venue %s", ErrUnknownEntity, venueID)
	}
	return s.forecaster.ForecastDemand(venueID, date, now), nil
}

// PredictDealPerformance projects the outcome of a proposed deal.
func (s *Service) PredictDealPerformance(p forecast.DealProposal) (forecast.DealPerformance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownVenues[p.VenueID] {
		return forecast.DealPerformance{}, fmt.Errorf("%w: venue %s", ErrUnknownEntity, p.VenueID)
	}
	return s.forecaster.PredictDealPerformance(p), nil
}

// GetRecommendation produces a pricing recommendation for a known venue.
func (s *Service) GetRecommendation(venueID, category string, price float64) (pricing.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownVenues[venueID] {
		return pricing.Recommendation{}, fmt.Errorf("%w: venue %s", ErrUnknownEntity, venueID)
	}
	return s.pricer.GetRecommendation(venueID, category, price), nil
}

// CompareDeals runs the A/B readout between two historical deals.
func (s *Service) CompareDeals(a, b pricing.DealRecord) pricing.ABResult {
	return pricing.CompareDeals(a, b)
}

// GetPendingAlerts lists fraud alerts awaiting review, newest first.
func (s *Service) GetPendingAlerts() []*fraud.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraud.GetPendingAlerts()
}

// ReviewAlert transitions a pending alert to reviewed.
func (s *Service) ReviewAlert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraud.ReviewAlert(id)
}

// ResolveAlert transitions an alert to resolved.
func (s *Service) ResolveAlert(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraud.ResolveAlert(id)
}

// GetFraudAnalytics aggregates alert tallies and top-risk entities.
func (s *Service) GetFraudAnalytics() fraud.Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraud.GetFraudAnalytics(s.avgDealValue)
}

// GetTopDeals returns the venue dashboard's popularity leaderboard.
func (s *Service) GetTopDeals(limit int, now time.Time) []popularity.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scorer.GetTopDeals(limit, now)
}
