// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// ErrInvalidEvent is returned when a redemption event fails validation.
// Malformed input is a typed failure, never silently ignored, because
// downstream verification semantics depend on it.
var ErrInvalidEvent = errors.New("invalid redemption event")

// EngineConfig bundles per-check configurations for Configure.
type EngineConfig struct {
	Velocity         VelocityConfig         `json:"velocity"`
	NewAccount       NewAccountConfig       `json:"new_account"`
	ImpossibleTravel ImpossibleTravelConfig `json:"impossible_travel"`
	DealAbuse        DealAbuseConfig        `json:"deal_abuse"`
	Collusion        CollusionConfig        `json:"collusion"`
	VenueAnomaly     VenueAnomalyConfig     `json:"venue_anomaly"`
}

// DefaultEngineConfig returns every check's defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Velocity:         DefaultVelocityConfig(),
		NewAccount:       DefaultNewAccountConfig(),
		ImpossibleTravel: DefaultImpossibleTravelConfig(),
		DealAbuse:        DefaultDealAbuseConfig(),
		Collusion:        DefaultCollusionConfig(),
		VenueAnomaly:     DefaultVenueAnomalyConfig(),
	}
}

// AlertBroadcaster pushes new alerts to connected dashboard clients.
type AlertBroadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// DetectorMetrics tracks an individual detector.
type DetectorMetrics struct {
	EventsChecked   int64      `json:"events_checked"`
	AlertsGenerated int64      `json:"alerts_generated"`
	Errors          int64      `json:"errors"`
	LastTriggeredAt *time.Time `json:"last_triggered_at,omitempty"`
}

// EngineMetrics tracks overall engine activity.
type EngineMetrics struct {
	EventsProcessed int64                          `json:"events_processed"`
	AlertsGenerated int64                          `json:"alerts_generated"`
	DetectorMetrics map[CheckType]*DetectorMetrics `json:"detector_metrics"`
}

// Engine coordinates check evaluation, state updates and alert storage.
//
// AnalyzeRedemption is a read-modify-write over the shared history; the
// caller must serialize concurrent calls for the same user or venue.
type Engine struct {
	detectors   []Detector
	history     *MemoryHistory
	store       *AlertStore
	broadcaster AlertBroadcaster

	validate     *validator.Validate
	metricsStore EngineMetrics
}

// NewEngine creates a fraud engine with the full default check bank.
func NewEngine(broadcaster AlertBroadcaster) *Engine {
	history := NewMemoryHistory()

	e := &Engine{
		history:     history,
		store:       NewAlertStore(),
		broadcaster: broadcaster,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		metricsStore: EngineMetrics{
			DetectorMetrics: make(map[CheckType]*DetectorMetrics),
		},
	}

	e.RegisterDetector(NewVelocityDetector(history))
	e.RegisterDetector(NewNewAccountDetector(history))
	e.RegisterDetector(NewImpossibleTravelDetector(history))
	e.RegisterDetector(NewDealAbuseDetector(history))
	e.RegisterDetector(NewCollusionDetector(history))
	e.RegisterDetector(NewVenueAnomalyDetector(history))

	return e
}

// Configure applies venue-tunable thresholds to the default check bank.
// Unknown detectors are skipped so a partially registered bank still
// configures cleanly.
func (e *Engine) Configure(cfg EngineConfig) error {
	apply := func(checkType CheckType, raw interface{}) error {
		d := e.Detector(checkType)
		if d == nil {
			return nil
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", checkType, err)
		}
		return d.Configure(data)
	}

	if err := apply(CheckVelocity, cfg.Velocity); err != nil {
		return err
	}
	if err := apply(CheckNewAccount, cfg.NewAccount); err != nil {
		return err
	}
	if err := apply(CheckImpossibleTravel, cfg.ImpossibleTravel); err != nil {
		return err
	}
	if err := apply(CheckDealAbuse, cfg.DealAbuse); err != nil {
		return err
	}
	if err := apply(CheckCollusion, cfg.Collusion); err != nil {
		return err
	}
	return apply(CheckVenueAnomaly, cfg.VenueAnomaly)
}

// RegisterDetector adds a detector to the bank.
func (e *Engine) RegisterDetector(detector Detector) {
	e.detectors = append(e.detectors, detector)
	e.metricsStore.DetectorMetrics[detector.Type()] = &DetectorMetrics{}

	logging.Info().Str("detector", string(detector.Type())).Msg("registered fraud detector")
}

// Detector returns the registered detector of the given type, or nil.
func (e *Engine) Detector(checkType CheckType) Detector {
	for _, d := range e.detectors {
		if d.Type() == checkType {
			return d
		}
	}
	return nil
}

// History exposes the engine's event history for read-only inspection.
func (e *Engine) History() History {
	return e.history
}

// Store exposes the alert store for the reviewer workflow.
func (e *Engine) Store() *AlertStore {
	return e.store
}

// AnalyzeRedemption validates the event, runs every enabled check, stores
// and returns the single highest-severity alert (nil when clean), then
// appends the event to history.
//
// All checks are always computed so none are silently skipped; only the
// winner is surfaced per event. Severity ties keep the first check fired.
func (e *Engine) AnalyzeRedemption(ctx context.Context, event *models.RedemptionEvent) (*Alert, error) {
	defer metrics.ObserveScoring("fraud", "analyze_redemption", time.Now())

	if err := e.validate.Struct(event); err != nil {
		metrics.InteractionsRejected.WithLabelValues("invalid_redemption").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	var winner *Alert
	var errs []error

	for _, detector := range e.detectors {
		if !detector.Enabled() {
			continue
		}

		dm := e.metricsStore.DetectorMetrics[detector.Type()]
		dm.EventsChecked++

		alert, err := detector.Check(ctx, event)
		if err != nil {
			dm.Errors++
			errs = append(errs, fmt.Errorf("%s: %w", detector.Type(), err))
			continue
		}
		if alert == nil {
			continue
		}

		dm.AlertsGenerated++
		now := time.Now()
		dm.LastTriggeredAt = &now

		if winner == nil || alert.Severity.Rank() > winner.Severity.Rank() {
			winner = alert
		}
	}

	// State updates happen after evaluation so no check scores the event
	// it is currently looking at.
	e.history.Append(event)
	e.metricsStore.EventsProcessed++
	metrics.FraudEventsProcessed.Inc()

	if winner != nil {
		winner.ID = uuid.New().String()
		winner.Status = StatusPending
		winner.DetectedAt = event.Timestamp

		e.store.Save(winner)
		e.metricsStore.AlertsGenerated++
		metrics.FraudAlertsGenerated.WithLabelValues(string(winner.Type), string(winner.Severity)).Inc()

		logging.Info().
			Str("alert_id", winner.ID).
			Str("type", string(winner.Type)).
			Str("severity", string(winner.Severity)).
			Str("entity", winner.EntityID).
			Msg("fraud alert generated")

		if e.broadcaster != nil {
			e.broadcaster.BroadcastJSON("fraud_alert", winner)
		}
	}

	if len(errs) > 0 {
		return winner, fmt.Errorf("detection errors: %v", errs)
	}
	return winner, nil
}

// GetPendingAlerts returns alerts awaiting review, newest first.
func (e *Engine) GetPendingAlerts() []*Alert {
	return e.store.Pending()
}

// ReviewAlert transitions a pending alert to reviewed.
func (e *Engine) ReviewAlert(id string) error {
	return e.store.Review(id)
}

// ResolveAlert transitions an alert to resolved.
func (e *Engine) ResolveAlert(id string) error {
	return e.store.Resolve(id)
}

// Metrics returns a snapshot of engine activity counters.
func (e *Engine) Metrics() EngineMetrics {
	snapshot := EngineMetrics{
		EventsProcessed: e.metricsStore.EventsProcessed,
		AlertsGenerated: e.metricsStore.AlertsGenerated,
		DetectorMetrics: make(map[CheckType]*DetectorMetrics, len(e.metricsStore.DetectorMetrics)),
	}
	for k, v := range e.metricsStore.DetectorMetrics {
		copied := *v
		snapshot.DetectorMetrics[k] = &copied
	}
	return snapshot
}
