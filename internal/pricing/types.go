// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package pricing

// Config contains pricing tunables.
type Config struct {
	// DefaultElasticity stands in when a category has too little discount
	// variance to measure its own. Demand for discounted meals is
	// moderately elastic, hence -1.5.
	DefaultElasticity float64

	// DefaultMargin is the assumed gross margin absent venue data.
	DefaultMargin float64

	// MinDiscount and MaxDiscount clamp the recommendation.
	MinDiscount float64
	MaxDiscount float64

	// TargetUplift is the redemption growth goal relative to the current
	// category average, used to bias the recommendation upward.
	TargetUplift float64
}

// DefaultConfig returns default pricing configuration.
func DefaultConfig() Config {
	return Config{
		DefaultElasticity: -1.5,
		DefaultMargin:     0.6,
		MinDiscount:       10,
		MaxDiscount:       50,
		TargetUplift:      0.2,
	}
}

// DealRecord is one completed deal's pricing-relevant outcome.
type DealRecord struct {
	DealID          string  `json:"deal_id"`
	VenueID         string  `json:"venue_id"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	Views           int     `json:"views"`
	Redemptions     int     `json:"redemptions"`
	Revenue         float64 `json:"revenue"`
}

// RedemptionRate returns redemptions per view, 0 with no views.
func (d DealRecord) RedemptionRate() float64 {
	if d.Views == 0 {
		return 0
	}
	return float64(d.Redemptions) / float64(d.Views)
}

// RevenuePerView returns revenue per view, 0 with no views.
func (d DealRecord) RevenuePerView() float64 {
	if d.Views == 0 {
		return 0
	}
	return d.Revenue / float64(d.Views)
}

// Recommendation is a discount recommendation with its projections and
// reasoning.
type Recommendation struct {
	VenueID  string `json:"venue_id"`
	Category string `json:"category"`

	OptimalDiscount float64 `json:"optimal_discount"`
	Elasticity      float64 `json:"elasticity"`

	PredictedRedemptions float64 `json:"predicted_redemptions"`
	PredictedRevenue     float64 `json:"predicted_revenue"`

	// Confidence scales with the category sample size, capped at 0.95.
	Confidence float64 `json:"confidence"`

	// Reasoning explains the recommendation to the operator. Never empty.
	Reasoning []string `json:"reasoning"`
}

// ABOutcome labels the result of an A/B comparison.
type ABOutcome string

const (
	// OutcomeSignificant means the z-test separated the redemption rates.
	OutcomeSignificant ABOutcome = "significant"

	// OutcomeRevenueFallback means rates were statistically tied and the
	// winner was picked on revenue per view instead.
	OutcomeRevenueFallback ABOutcome = "revenue_fallback"

	OutcomeInconclusive ABOutcome = "inconclusive"
)

// ABResult reports an A/B comparison between two historical deals.
type ABResult struct {
	WinnerID string    `json:"winner_id,omitempty"`
	Outcome  ABOutcome `json:"outcome"`
	ZScore   float64   `json:"z_score"`
	Summary  string    `json:"summary"`
}
