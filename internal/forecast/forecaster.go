// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package forecast

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// Hourly prediction thresholds on the 0-100 occupancy scale.
const (
	quietThreshold = 30
	busyThreshold  = 70
)

// Forecaster predicts venue demand from loaded traffic history. The
// random source drives prediction noise only.
type Forecaster struct {
	config Config
	rng    *rand.Rand

	samples     map[string][]models.TrafficSample
	dealHistory map[string][]*models.Deal
}

// NewForecaster creates a forecaster with the given random source.
func NewForecaster(cfg Config, rng *rand.Rand) *Forecaster {
	if cfg.SmoothingAlpha <= 0 || cfg.SmoothingAlpha > 1 {
		cfg.SmoothingAlpha = 0.3
	}
	if cfg.NoiseAmplitude < 0 {
		cfg.NoiseAmplitude = 5
	}

	return &Forecaster{
		config:      cfg,
		rng:         rng,
		samples:     make(map[string][]models.TrafficSample),
		dealHistory: make(map[string][]*models.Deal),
	}
}

// LoadHistoricalData bulk-replaces the traffic history for a venue.
func (f *Forecaster) LoadHistoricalData(venueID string, samples []models.TrafficSample) {
	f.samples[venueID] = samples
	logging.Debug().Str("venue_id", venueID).Int("samples", len(samples)).Msg("traffic history loaded")
}

// Samples returns the loaded history for venueID.
func (f *Forecaster) Samples(venueID string) []models.TrafficSample {
	return f.samples[venueID]
}

// ForecastDemand predicts hourly traffic for a venue on the target date.
// With no history everything defaults neutral: flat mid-scale traffic,
// stable trend, floor confidence.
func (f *Forecaster) ForecastDemand(venueID string, date time.Time, now time.Time) DemandForecast {
	defer metrics.ObserveScoring("forecast", "forecast_demand", time.Now())

	samples := f.samples[venueID]
	indices := computeIndices(samples)
	baseline := smoothedBaseline(samples, f.config.SmoothingAlpha, now)
	day := int(date.Weekday())

	out := DemandForecast{
		VenueID:       venueID,
		Date:          date,
		WeeklyTrend:   weeklyTrend(samples, now),
		SeasonalNotes: indices.notes(),
		Confidence:    confidenceFromSamples(len(samples)),
		SampleCount:   len(samples),
		Hours:         make([]HourForecast, 24),
	}

	for hour := 0; hour < 24; hour++ {
		predicted := baseline * indices.daily[day] * indices.hourly[hour]
		predicted += f.noise()
		predicted = clampTraffic(predicted)

		hf := HourForecast{
			Hour:             hour,
			PredictedTraffic: predicted,
			Action:           ActionNormal,
		}
		switch {
		case predicted < quietThreshold:
			hf.Action = ActionCreateDeal
			hf.SuggestedDealType = dealArchetypeForHour(hour)
		case predicted > busyThreshold:
			hf.Action = ActionBusy
		}
		out.Hours[hour] = hf
	}

	return out
}

// noise returns a uniform perturbation in [-NoiseAmplitude, +NoiseAmplitude].
func (f *Forecaster) noise() float64 {
	if f.config.NoiseAmplitude == 0 {
		return 0
	}
	return (f.rng.Float64()*2 - 1) * f.config.NoiseAmplitude
}

// confidenceFromSamples grows confidence with data volume: 0.6 floor with
// nothing, saturating at 0.95 by 100 samples.
func confidenceFromSamples(n int) float64 {
	frac := float64(n) / 100
	if frac > 1 {
		frac = 1
	}
	return math.Min(0.95, 0.6+0.35*frac)
}

// dealArchetypeForHour suggests a deal style for a quiet hour.
func dealArchetypeForHour(hour int) string {
	switch {
	case hour >= 11 && hour < 15:
		return "lunch special"
	case hour >= 15 && hour < 20:
		return "happy hour"
	case hour >= 20 || hour < 2:
		return "late-night offer"
	default:
		return "early-bird discount"
	}
}
