// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/models"
)

// DealAbuseConfig configures the repeat-redemption detector.
type DealAbuseConfig struct {
	// HighRepeatThreshold is the repeat count beyond which severity
	// escalates to high.
	HighRepeatThreshold int `json:"high_repeat_threshold"`
}

// DefaultDealAbuseConfig returns sensible defaults.
func DefaultDealAbuseConfig() DealAbuseConfig {
	return DealAbuseConfig{
		HighRepeatThreshold: 2,
	}
}

// DealAbuseDetector flags a user redeeming the same deal more than once.
// Single-use offers redeemed repeatedly indicate either a venue-side scan
// loophole or a shared voucher code.
type DealAbuseDetector struct {
	config  DealAbuseConfig
	history History
	enabled bool
}

// NewDealAbuseDetector creates a deal abuse detector.
func NewDealAbuseDetector(history History) *DealAbuseDetector {
	return &DealAbuseDetector{
		config:  DefaultDealAbuseConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *DealAbuseDetector) Type() CheckType {
	return CheckDealAbuse
}

// Check evaluates the event against the deal abuse rule.
func (d *DealAbuseDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	// Prior redemptions of this deal; the current event makes it a repeat.
	repeats := d.history.UserDealRedemptions(event.UserID, event.DealID)
	if repeats < 1 {
		return nil, nil
	}

	severity := SeverityMedium
	if repeats > d.config.HighRepeatThreshold {
		severity = SeverityHigh
	}

	return &Alert{
		Type:       AlertDealAbuse,
		Severity:   severity,
		EntityType: EntityDeal,
		EntityID:   event.DealID,
		Description: fmt.Sprintf("user %s redeemed deal %s %d times",
			event.UserID, event.DealID, repeats+1),
		Evidence: []string{
			fmt.Sprintf("user %s", event.UserID),
			fmt.Sprintf("%d prior redemptions of deal %s", repeats, event.DealID),
		},
		Confidence: capConfidence(0.8),
		Check:      CheckDealAbuse,
	}, nil
}

// Configure updates the detector configuration.
func (d *DealAbuseDetector) Configure(config json.RawMessage) error {
	var newConfig DealAbuseConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.HighRepeatThreshold < 1 {
		return fmt.Errorf("high_repeat_threshold must be at least 1")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *DealAbuseDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *DealAbuseDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
