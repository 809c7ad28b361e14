// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dealradar/internal/models"
)

// CheckType identifies a detection check.
type CheckType string

const (
	CheckVelocity         CheckType = "velocity"
	CheckNewAccount       CheckType = "new_account"
	CheckImpossibleTravel CheckType = "impossible_travel"
	CheckDealAbuse        CheckType = "deal_abuse"
	CheckCollusion        CheckType = "collusion"
	CheckVenueAnomaly     CheckType = "venue_anomaly"
)

// AlertType classifies the fraud pattern an alert describes.
type AlertType string

const (
	AlertSuspiciousRedemption AlertType = "suspicious_redemption"
	AlertFakeAccount          AlertType = "fake_account"
	AlertDealAbuse            AlertType = "deal_abuse"
	AlertCollusion            AlertType = "collusion"
)

// Severity indicates how urgent an alert is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for the single-winner selection:
// critical > high > medium > low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// AlertStatus tracks the reviewer workflow.
type AlertStatus string

const (
	StatusPending  AlertStatus = "pending"
	StatusReviewed AlertStatus = "reviewed"
	StatusResolved AlertStatus = "resolved"
)

// EntityType identifies what an alert is about.
type EntityType string

const (
	EntityUser  EntityType = "user"
	EntityVenue EntityType = "venue"
	EntityDeal  EntityType = "deal"
)

// Alert is a single fraud finding. Created by the engine with status
// pending; only reviewer status transitions mutate it afterwards.
type Alert struct {
	ID   string    `json:"id"`
	Type AlertType `json:"type"`

	Severity Severity `json:"severity"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	Description string `json:"description"`

	// Evidence lists the concrete observations behind the alert.
	Evidence []string `json:"evidence"`

	// Confidence is in [0, 1], capped at 0.99.
	Confidence float64 `json:"confidence"`

	Status     AlertStatus `json:"status"`
	DetectedAt time.Time   `json:"detected_at"`

	// Check records which detector produced the alert.
	Check CheckType `json:"check"`
}

// MaxConfidence caps every check's confidence output.
const MaxConfidence = 0.99

// capConfidence clamps c to [0, MaxConfidence].
func capConfidence(c float64) float64 {
	if c > MaxConfidence {
		return MaxConfidence
	}
	if c < 0 {
		return 0
	}
	return c
}

// Detector is one anomaly check in the bank. Check returns nil when the
// event is unremarkable.
type Detector interface {
	// Type returns the check identifier.
	Type() CheckType

	// Check evaluates the event and returns zero or one candidate alert.
	Check(ctx context.Context, event *models.RedemptionEvent) (*Alert, error)

	// Configure updates the detector configuration from JSON.
	Configure(config json.RawMessage) error

	// Enabled returns whether this detector participates in evaluation.
	Enabled() bool

	// SetEnabled enables or disables the detector.
	SetEnabled(enabled bool)
}

// History is the read side of the engine's event state. The engine
// appends to it after every evaluation; detectors only read.
type History interface {
	// UserRedemptionsSince returns the user's redemptions at or after since.
	UserRedemptionsSince(userID string, since time.Time) []models.RedemptionEvent

	// LastUserRedemption returns the user's most recent redemption, or nil.
	LastUserRedemption(userID string) *models.RedemptionEvent

	// UserDealRedemptions returns how many times the user has already
	// redeemed the given deal.
	UserDealRedemptions(userID, dealID string) int

	// UserRedemptionCount returns the user's lifetime redemption count.
	UserRedemptionCount(userID string) int

	// DeviceUsers returns the distinct user IDs seen on a device.
	DeviceUsers(deviceID string) []string

	// VenueRedemptionsSince returns the venue's redemptions at or after since.
	VenueRedemptionsSince(venueID string, since time.Time) []models.RedemptionEvent

	// VenueDailyAverage returns the venue's historical average redemptions
	// per day, 0 when no history exists.
	VenueDailyAverage(venueID string) float64
}
