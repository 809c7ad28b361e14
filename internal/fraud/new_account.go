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

// NewAccountConfig configures the new-account abuse detector.
type NewAccountConfig struct {
	// MaxAccountAgeHours is how young an account must be for the check to
	// apply.
	MaxAccountAgeHours int `json:"max_account_age_hours"`

	// RedemptionThreshold is the redemption count above which a young
	// account is flagged.
	RedemptionThreshold int `json:"redemption_threshold"`
}

// DefaultNewAccountConfig returns sensible defaults.
func DefaultNewAccountConfig() NewAccountConfig {
	return NewAccountConfig{
		MaxAccountAgeHours:  24,
		RedemptionThreshold: 5,
	}
}

// NewAccountDetector flags day-old accounts burning through deals, the
// signature of throwaway accounts created to farm redemptions.
type NewAccountDetector struct {
	config  NewAccountConfig
	history History
	enabled bool
}

// NewNewAccountDetector creates a new-account abuse detector.
func NewNewAccountDetector(history History) *NewAccountDetector {
	return &NewAccountDetector{
		config:  DefaultNewAccountConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *NewAccountDetector) Type() CheckType {
	return CheckNewAccount
}

// Check evaluates the event against the new-account rule.
func (d *NewAccountDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	// Unknown account age means the check cannot apply.
	if event.AccountCreatedAt.IsZero() {
		return nil, nil
	}

	age := event.Timestamp.Sub(event.AccountCreatedAt)
	maxAge := time.Duration(d.config.MaxAccountAgeHours) * time.Hour
	if age >= maxAge {
		return nil, nil
	}

	count := d.history.UserRedemptionCount(event.UserID) + 1
	if count <= d.config.RedemptionThreshold {
		return nil, nil
	}

	return &Alert{
		Type:       AlertFakeAccount,
		Severity:   SeverityMedium,
		EntityType: EntityUser,
		EntityID:   event.UserID,
		Description: fmt.Sprintf("account %s is %.1fh old with %d redemptions",
			event.UserID, age.Hours(), count),
		Evidence: []string{
			fmt.Sprintf("account age %.1fh, under %dh", age.Hours(), d.config.MaxAccountAgeHours),
			fmt.Sprintf("%d redemptions exceed threshold of %d", count, d.config.RedemptionThreshold),
		},
		Confidence: capConfidence(0.65),
		Check:      CheckNewAccount,
	}, nil
}

// Configure updates the detector configuration.
func (d *NewAccountDetector) Configure(config json.RawMessage) error {
	var newConfig NewAccountConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.MaxAccountAgeHours <= 0 {
		return fmt.Errorf("max_account_age_hours must be positive")
	}
	if newConfig.RedemptionThreshold <= 0 {
		return fmt.Errorf("redemption_threshold must be positive")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *NewAccountDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *NewAccountDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
