// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/models"
)

// CollusionConfig configures the shared-device detector.
type CollusionConfig struct {
	// MaxUsersPerDevice is the distinct-account count a single device may
	// accumulate before the ring is flagged.
	MaxUsersPerDevice int `json:"max_users_per_device"`
}

// DefaultCollusionConfig returns sensible defaults.
func DefaultCollusionConfig() CollusionConfig {
	return CollusionConfig{
		MaxUsersPerDevice: 3,
	}
}

// CollusionDetector flags devices shared by many accounts, the classic
// shape of one person cycling through throwaway accounts on one phone.
type CollusionDetector struct {
	config  CollusionConfig
	history History
	enabled bool
}

// NewCollusionDetector creates a collusion detector.
func NewCollusionDetector(history History) *CollusionDetector {
	return &CollusionDetector{
		config:  DefaultCollusionConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *CollusionDetector) Type() CheckType {
	return CheckCollusion
}

// Check evaluates the event against the collusion rule.
func (d *CollusionDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	if event.DeviceID == "" {
		return nil, nil
	}

	users := d.history.DeviceUsers(event.DeviceID)

	// Include the current user if the device has not seen them before.
	seen := false
	for _, id := range users {
		if id == event.UserID {
			seen = true
			break
		}
	}
	if !seen {
		users = append(users, event.UserID)
	}

	if len(users) <= d.config.MaxUsersPerDevice {
		return nil, nil
	}

	sort.Strings(users)

	return &Alert{
		Type:       AlertCollusion,
		Severity:   SeverityHigh,
		EntityType: EntityUser,
		EntityID:   event.UserID,
		Description: fmt.Sprintf("device %s shared by %d accounts",
			event.DeviceID, len(users)),
		Evidence: []string{
			fmt.Sprintf("device %s", event.DeviceID),
			fmt.Sprintf("accounts: %s", strings.Join(users, ", ")),
			fmt.Sprintf("threshold is %d accounts per device", d.config.MaxUsersPerDevice),
		},
		Confidence: capConfidence(0.85),
		Check:      CheckCollusion,
	}, nil
}

// Configure updates the detector configuration.
func (d *CollusionDetector) Configure(config json.RawMessage) error {
	var newConfig CollusionConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.MaxUsersPerDevice < 1 {
		return fmt.Errorf("max_users_per_device must be at least 1")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *CollusionDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *CollusionDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
