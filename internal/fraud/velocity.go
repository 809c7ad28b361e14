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

// VelocityConfig configures the redemption velocity detector.
type VelocityConfig struct {
	// WindowHours is the trailing observation window.
	WindowHours int `json:"window_hours"`

	// MediumThreshold is the trailing-window count above which a medium
	// severity alert fires.
	MediumThreshold int `json:"medium_threshold"`

	// HighThreshold is the count above which severity escalates to high.
	HighThreshold int `json:"high_threshold"`
}

// DefaultVelocityConfig returns sensible defaults.
func DefaultVelocityConfig() VelocityConfig {
	return VelocityConfig{
		WindowHours:     24,
		MediumThreshold: 10,
		HighThreshold:   20,
	}
}

// VelocityDetector flags users redeeming implausibly often. A trailing
// 24-hour count above the medium threshold is suspicious; above the high
// threshold it is almost certainly scripted.
type VelocityDetector struct {
	config  VelocityConfig
	history History
	enabled bool
}

// NewVelocityDetector creates a velocity detector backed by history.
func NewVelocityDetector(history History) *VelocityDetector {
	return &VelocityDetector{
		config:  DefaultVelocityConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *VelocityDetector) Type() CheckType {
	return CheckVelocity
}

// Check evaluates the event against the velocity rule.
func (d *VelocityDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	window := time.Duration(d.config.WindowHours) * time.Hour
	since := event.Timestamp.Add(-window)

	// The current event is not yet in history; count it in.
	count := len(d.history.UserRedemptionsSince(event.UserID, since)) + 1

	if count <= d.config.MediumThreshold {
		return nil, nil
	}

	severity := SeverityMedium
	if count > d.config.HighThreshold {
		severity = SeverityHigh
	}

	confidence := capConfidence(0.7 + 0.02*float64(count-d.config.MediumThreshold))

	return &Alert{
		Type:       AlertSuspiciousRedemption,
		Severity:   severity,
		EntityType: EntityUser,
		EntityID:   event.UserID,
		Description: fmt.Sprintf("user %s redeemed %d deals in the last %dh",
			event.UserID, count, d.config.WindowHours),
		Evidence: []string{
			fmt.Sprintf("%d redemptions in trailing %dh window", count, d.config.WindowHours),
			fmt.Sprintf("threshold is %d", d.config.MediumThreshold),
		},
		Confidence: confidence,
		Check:      CheckVelocity,
	}, nil
}

// Configure updates the detector configuration.
func (d *VelocityDetector) Configure(config json.RawMessage) error {
	var newConfig VelocityConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.WindowHours <= 0 {
		return fmt.Errorf("window_hours must be positive")
	}
	if newConfig.MediumThreshold <= 0 {
		return fmt.Errorf("medium_threshold must be positive")
	}
	if newConfig.HighThreshold <= newConfig.MediumThreshold {
		return fmt.Errorf("high_threshold must exceed medium_threshold")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *VelocityDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *VelocityDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
