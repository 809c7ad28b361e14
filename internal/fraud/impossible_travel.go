// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/models"
)

// ImpossibleTravelConfig configures the impossible travel detector.
type ImpossibleTravelConfig struct {
	// MaxSpeedKmH is the maximum plausible travel speed. The default of
	// 800 km/h is the ceiling of commercial flight ground speed.
	MaxSpeedKmH float64 `json:"max_speed_kmh"`
}

// DefaultImpossibleTravelConfig returns sensible defaults.
func DefaultImpossibleTravelConfig() ImpossibleTravelConfig {
	return ImpossibleTravelConfig{
		MaxSpeedKmH: 800,
	}
}

// ImpossibleTravelDetector flags redemptions whose location is too far
// from the user's immediately prior redemption given the elapsed time
// (e.g. 5000 km apart within an hour).
type ImpossibleTravelDetector struct {
	config  ImpossibleTravelConfig
	history History
	enabled bool
}

// NewImpossibleTravelDetector creates an impossible travel detector.
func NewImpossibleTravelDetector(history History) *ImpossibleTravelDetector {
	return &ImpossibleTravelDetector{
		config:  DefaultImpossibleTravelConfig(),
		history: history,
		enabled: true,
	}
}

// Type returns the check identifier.
func (d *ImpossibleTravelDetector) Type() CheckType {
	return CheckImpossibleTravel
}

// Check evaluates the event against the impossible travel rule.
func (d *ImpossibleTravelDetector) Check(_ context.Context, event *models.RedemptionEvent) (*Alert, error) {
	if !d.enabled {
		return nil, nil
	}

	// No geolocation, nothing to compare.
	if event.Location.IsUnknown() {
		return nil, nil
	}

	last := d.history.LastUserRedemption(event.UserID)
	if last == nil || last.Location.IsUnknown() {
		return nil, nil
	}

	elapsed := event.Timestamp.Sub(last.Timestamp)
	if elapsed < 0 {
		// Out-of-order delivery; skip rather than divide by a negative.
		return nil, nil
	}

	distanceKm := last.Location.DistanceKm(event.Location)

	// Guard against a zero or sub-second gap producing an infinite speed
	// from a trivial distance. Epsilon comparison avoids IEEE 754 direct
	// equality issues.
	const floatEpsilon = 1e-9
	elapsedHours := elapsed.Hours()
	if math.Abs(elapsedHours) < floatEpsilon {
		elapsedHours = 0.001
	}

	requiredSpeed := distanceKm / elapsedHours
	if requiredSpeed <= d.config.MaxSpeedKmH {
		return nil, nil
	}

	return &Alert{
		Type:       AlertSuspiciousRedemption,
		Severity:   SeverityHigh,
		EntityType: EntityUser,
		EntityID:   event.UserID,
		Description: fmt.Sprintf("user %s traveled %.0f km in %.0f minutes (would require %.0f km/h)",
			event.UserID, distanceKm, elapsed.Minutes(), requiredSpeed),
		Evidence: []string{
			fmt.Sprintf("previous redemption at (%.4f, %.4f)", last.Location.Latitude, last.Location.Longitude),
			fmt.Sprintf("this redemption at (%.4f, %.4f)", event.Location.Latitude, event.Location.Longitude),
			fmt.Sprintf("%.0f km apart, %.0f minutes elapsed", distanceKm, elapsed.Minutes()),
			fmt.Sprintf("required speed %.0f km/h exceeds %.0f km/h ceiling", requiredSpeed, d.config.MaxSpeedKmH),
		},
		Confidence: capConfidence(0.9),
		Check:      CheckImpossibleTravel,
	}, nil
}

// Configure updates the detector configuration.
func (d *ImpossibleTravelDetector) Configure(config json.RawMessage) error {
	var newConfig ImpossibleTravelConfig
	if err := json.Unmarshal(config, &newConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if newConfig.MaxSpeedKmH <= 0 {
		return fmt.Errorf("max_speed_kmh must be positive")
	}

	d.config = newConfig
	return nil
}

// Enabled returns whether this detector is enabled.
func (d *ImpossibleTravelDetector) Enabled() bool {
	return d.enabled
}

// SetEnabled enables or disables the detector.
func (d *ImpossibleTravelDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}
