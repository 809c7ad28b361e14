// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/models"
)

// VenueAnomalyConfig configures the venue-side anomaly detector.
type VenueAnomalyConfig struct {
	// WindowMinutes is the trailing burst window.
	WindowMinutes int `json:"window_minutes"`

	// SpikeMultiplier is how far past the venue's historical daily average
	// the trailing-window count must go to fire.
	SpikeMultiplier float64 `json:"spike_multiplier"`
}

// DefaultVenueAnomalyConfig returns sensible defaults.
func DefaultVenueAnomalyConfig() VenueAnomalyConfig {
	return VenueAnomalyConfig{
		WindowMinutes:   60,
		SpikeMultiplier: 3,
	}
}

// VenueAnomalyDetector flags venues whose trailing-hour redemption count
// spikes far past their historical daily average. A burst like that
// usually means staff are scanning vouchers for walk-ins, not customers
// discovering the deal.
type VenueAnomalyDetector struct {
	config  VenueAnomalyConfig
	history History
	enabled bool
}

// NewVenueAnomalyDetector creates a venue anomaly detector.
func NewVenueAnomalyDetector(history History) *VenueAnomalyDetector {
	return &VenueAnomalyDetector{
		config:  DefaultVenueAnomalyConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *VenueAnomalyDetector) Type() CheckType {
	return CheckVenueAnomaly
}

// Check evaluates the event against the venue anomaly rule.
func (d *VenueAnomalyDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	dailyAvg := d.history.VenueDailyAverage(event.VenueID)
	if dailyAvg == 0 {
		// No history yet, nothing to compare against.
		return nil, nil
	}

	window := time.Duration(d.config.WindowMinutes) * time.Minute
	since := event.Timestamp.Add(-window)
	count := len(d.history.VenueRedemptionsSince(event.VenueID, since)) + 1

	threshold := dailyAvg * d.config.SpikeMultiplier
	if float64(count) <= threshold {
		return nil, nil
	}

	return &Alert{
		Type:       AlertSuspiciousRedemption,
		Severity:   SeverityMedium,
		EntityType: EntityVenue,
		EntityID:   event.VenueID,
		Description: fmt.Sprintf("venue %s saw %d redemptions in %d minutes against a daily average of %.1f",
			event.VenueID, count, d.config.WindowMinutes, dailyAvg),
		Evidence: []string{
			fmt.Sprintf("%d redemptions in trailing %d minutes", count, d.config.WindowMinutes),
			fmt.Sprintf("historical daily average %.1f", dailyAvg),
			fmt.Sprintf("spike threshold %.1f (%.0fx daily average)", threshold, d.config.SpikeMultiplier),
		},
		Confidence: capConfidence(0.6),
		Check:      CheckVenueAnomaly,
	}, nil
}

// Configure updates the detector configuration.
func (d *VenueAnomalyDetector) Configure(config json.RawMessage) error {
	var newConfig VenueAnomalyConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.WindowMinutes <= 0 {
		return fmt.Errorf("window_minutes must be positive")
	}
	if newConfig.SpikeMultiplier <= 1 {
		return fmt.Errorf("spike_multiplier must exceed 1")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *VenueAnomalyDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *VenueAnomalyDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
