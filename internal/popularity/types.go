// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package popularity

// Config contains popularity scoring tunables.
type Config struct {
	// EngagementCeiling is the weighted interaction volume treated as a
	// perfect engagement score.
	EngagementCeiling float64

	// TrendingWindowHours is how many recent hourly slots count as "now"
	// for the trending comparison.
	TrendingWindowHours int
}

// DefaultConfig returns default popularity configuration.
func DefaultConfig() Config {
	return Config{
		EngagementCeiling:   10000,
		TrendingWindowHours: 6,
	}
}

// Badge is a non-exclusive dashboard tag. A deal carries every badge it
// qualifies for.
type Badge string

const (
	BadgeHot        Badge = "hot"
	BadgeTrending   Badge = "trending"
	BadgePopular    Badge = "popular"
	BadgeNew        Badge = "new"
	BadgeEndingSoon Badge = "ending_soon"
)

// Score is a deal's full popularity readout.
type Score struct {
	DealID string `json:"deal_id"`

	Engagement float64 `json:"engagement"`
	Trending   float64 `json:"trending"`
	Conversion float64 `json:"conversion"`
	Velocity   float64 `json:"velocity"`

	// Overall blends the four sub-scores 0.25/0.30/0.25/0.20.
	Overall float64 `json:"overall"`

	Badges []Badge `json:"badges,omitempty"`

	// Rank is the 1-based venue-wide position by overall score.
	Rank int `json:"rank"`

	// PredictedPeakHour is the hour of day (0-23) when the deal draws the
	// most activity, or -1 before any hourly activity is recorded.
	PredictedPeakHour int `json:"predicted_peak_hour"`
}

// HourlyHistogram tracks per-hour-of-day activity for one deal.
type HourlyHistogram struct {
	Views       [24]int `json:"views"`
	Redemptions [24]int `json:"redemptions"`
}

// PeakHour returns the busiest hour of day, weighting redemptions double
// since they signal intent more strongly than views. Ties go to the
// earlier hour; -1 means no activity yet.
func (h *HourlyHistogram) PeakHour() int {
	if h == nil {
		return -1
	}
	best, bestWeight := -1, 0
	for hour := 0; hour < 24; hour++ {
		w := h.Views[hour] + 2*h.Redemptions[hour]
		if w > bestWeight {
			best, bestWeight = hour, w
		}
	}
	return best
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
