// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
)

// categoryInsights are canned operator hints attached to recommendations
// for categories we know something about.
var categoryInsights = map[string]string{
	"drinks":        "drink deals convert best in the 16:00-19:00 happy-hour window",
	"food":          "food deals pull hardest around lunch and early dinner",
	"dessert":       "dessert deals pair well with late-evening foot traffic",
	"brunch":        "brunch deals perform best on weekend mornings",
	"entertainment": "entertainment deals benefit from weekend-evening placement",
}

// Optimizer recommends discounts per venue and category.
type Optimizer struct {
	config Config

	history     map[string][]DealRecord // keyed by venue ID
	competitors map[string]float64      // avg benchmark discount per category
}

// NewOptimizer creates a pricing optimizer.
func NewOptimizer(cfg Config) *Optimizer {
	if cfg.DefaultElasticity == 0 {
		cfg.DefaultElasticity = -1.5
	}
	if cfg.DefaultMargin <= 0 {
		cfg.DefaultMargin = 0.6
	}
	if cfg.MinDiscount <= 0 {
		cfg.MinDiscount = 10
	}
	if cfg.MaxDiscount <= cfg.MinDiscount {
		cfg.MaxDiscount = 50
	}

	return &Optimizer{
		config:      cfg,
		history:     make(map[string][]DealRecord),
		competitors: make(map[string]float64),
	}
}

// LoadDealMetrics bulk-replaces the deal history for a venue.
func (o *Optimizer) LoadDealMetrics(venueID string, records []DealRecord) {
	o.history[venueID] = records
	logging.Debug().Str("venue_id", venueID).Int("deals", len(records)).Msg("pricing history loaded")
}

// LoadCompetitorBenchmarks bulk-replaces the average competitor discount
// per category.
func (o *Optimizer) LoadCompetitorBenchmarks(benchmarks map[string]float64) {
	o.competitors = benchmarks
}

// GetRecommendation produces a discount recommendation for launching a
// deal in the given category at the given list price.
func (o *Optimizer) GetRecommendation(venueID, category string, price float64) Recommendation {
	defer metrics.ObserveScoring("pricing", "get_recommendation", time.Now())

	records := o.categoryRecords(venueID, category)
	e := elasticity(records, o.config.DefaultElasticity)

	avgRedemptions := averageRedemptions(records)
	gap := o.config.TargetUplift
	if avgRedemptions > 0 {
		target := avgRedemptions * (1 + o.config.TargetUplift)
		gap = (target - avgRedemptions) / avgRedemptions
	}

	discount := math.Abs((1+1/e)*o.config.DefaultMargin*100) + 5*gap
	discount = clamp(o.config.MinDiscount, o.config.MaxDiscount, discount)

	predictedRedemptions := predictRedemptions(avgRedemptions, e, discount)

	rec := Recommendation{
		VenueID:              venueID,
		Category:             category,
		OptimalDiscount:      discount,
		Elasticity:           e,
		PredictedRedemptions: predictedRedemptions,
		PredictedRevenue:     predictedRedemptions * price * (1 - discount/100),
		Confidence:           confidenceFromSamples(len(records)),
	}
	rec.Reasoning = o.reasoning(rec, records)

	return rec
}

// categoryRecords filters a venue's history down to one category.
func (o *Optimizer) categoryRecords(venueID, category string) []DealRecord {
	var out []DealRecord
	for _, r := range o.history[venueID] {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// predictRedemptions extrapolates from the historical average, scaled by
// elasticity relative to the 20% anchor discount. Sparse categories use
// a nominal base of 10 so projections stay non-trivial.
func predictRedemptions(avgRedemptions, elasticity, discount float64) float64 {
	base := avgRedemptions
	if base == 0 {
		base = 10
	}

	scale := 1 + elasticity*(discount-20)/20
	if scale < 0 {
		scale = 0
	}
	return base * scale
}

// reasoning assembles the operator-facing explanation. At least the
// elasticity line always comes back.
func (o *Optimizer) reasoning(rec Recommendation, records []DealRecord) []string {
	out := []string{
		fmt.Sprintf("estimated price elasticity %.2f from %d historical deals", rec.Elasticity, len(records)),
	}

	if benchmark, ok := o.competitors[rec.Category]; ok && benchmark > 0 {
		switch {
		case rec.OptimalDiscount > benchmark:
			out = append(out, fmt.Sprintf("recommended %.0f%% undercuts the %.0f%% competitor average to win share",
				rec.OptimalDiscount, benchmark))
		case rec.OptimalDiscount < benchmark:
			out = append(out, fmt.Sprintf("recommended %.0f%% holds margin below the %.0f%% competitor average",
				rec.OptimalDiscount, benchmark))
		default:
			out = append(out, fmt.Sprintf("recommended discount matches the %.0f%% competitor average", benchmark))
		}
	}

	if best := bestPerformer(records); best != nil {
		out = append(out, fmt.Sprintf("best historical performer ran %.0f%% off with %d redemptions",
			best.DiscountPercent, best.Redemptions))
	}

	if insight, ok := categoryInsights[rec.Category]; ok {
		out = append(out, insight)
	}

	return out
}

// bestPerformer returns the record with the most redemptions, or nil.
func bestPerformer(records []DealRecord) *DealRecord {
	var best *DealRecord
	for i := range records {
		if best == nil || records[i].Redemptions > best.Redemptions {
			best = &records[i]
		}
	}
	return best
}

func averageRedemptions(records []DealRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Redemptions
	}
	return float64(sum) / float64(len(records))
}

// confidenceFromSamples scales confidence with category history volume,
// 0.5 floor, saturating at 0.95 by 50 samples.
func confidenceFromSamples(n int) float64 {
	frac := float64(n) / 50
	if frac > 1 {
		frac = 1
	}
	return math.Min(0.95, 0.5+0.45*frac)
}

func clamp(min, max, v float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
