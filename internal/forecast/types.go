// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package forecast

import "time"

// Config contains forecasting tunables.
type Config struct {
	// SmoothingAlpha is the exponential smoothing factor for the trend
	// baseline, in (0, 1].
	SmoothingAlpha float64

	// NoiseAmplitude bounds the uniform perturbation applied to each
	// hourly prediction.
	NoiseAmplitude float64
}

// DefaultConfig returns default forecasting configuration.
func DefaultConfig() Config {
	return Config{
		SmoothingAlpha: 0.3,
		NoiseAmplitude: 5,
	}
}

// Trend labels the week-over-week traffic direction.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// HourAction tags an hourly prediction with what the venue should do.
type HourAction string

const (
	// ActionCreateDeal marks a quiet hour worth filling with an offer.
	ActionCreateDeal HourAction = "create_deal"

	// ActionBusy marks an hour expected to run near capacity.
	ActionBusy HourAction = "busy"

	ActionNormal HourAction = "normal"
)

// HourForecast is the prediction for a single hour of the target date.
type HourForecast struct {
	Hour             int        `json:"hour"`
	PredictedTraffic float64    `json:"predicted_traffic"`
	Action           HourAction `json:"action"`

	// SuggestedDealType is set only for create_deal hours, keyed to the
	// hour band (lunch, happy hour, late night).
	SuggestedDealType string `json:"suggested_deal_type,omitempty"`
}

// DemandForecast is the full-day demand outlook for a venue.
type DemandForecast struct {
	VenueID string    `json:"venue_id"`
	Date    time.Time `json:"date"`

	Hours []HourForecast `json:"hours"`

	WeeklyTrend Trend `json:"weekly_trend"`

	// SeasonalNotes are plain-language observations about the venue's
	// recurring demand pattern, derived from the seasonal indices. Empty
	// until history shows a pronounced slot.
	SeasonalNotes []string `json:"seasonal_notes,omitempty"`

	// Confidence grows with sample volume, capped at 0.95.
	Confidence float64 `json:"confidence"`

	SampleCount int `json:"sample_count"`
}

// DealProposal describes a not-yet-live deal to project performance for.
type DealProposal struct {
	VenueID         string    `json:"venue_id" validate:"required"`
	Category        string    `json:"category" validate:"required"`
	DiscountPercent float64   `json:"discount_percent" validate:"gte=0,lte=100"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxRedemptions  int       `json:"max_redemptions"`
	Price           float64   `json:"price"`
}

// DealPerformance is the projected outcome of a proposed deal.
type DealPerformance struct {
	PredictedViews       float64 `json:"predicted_views"`
	PredictedSaves       float64 `json:"predicted_saves"`
	PredictedRedemptions float64 `json:"predicted_redemptions"`
	PredictedRevenue     float64 `json:"predicted_revenue"`

	// OptimalStartHour begins the best three-hour launch window found by
	// scanning hourly seasonal indices inside 11:00-20:00.
	OptimalStartHour int `json:"optimal_start_hour"`

	Suggestions []string `json:"suggestions,omitempty"`
	RiskFlags   []string `json:"risk_flags,omitempty"`
}

func clampTraffic(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
