// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package forecast

import (
	"fmt"
	"time"

	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// Engagement baselines used when a venue has no deal history yet. Rough
// marketplace-wide medians per deal.
const (
	defaultBaselineViews       = 400.0
	defaultBaselineSaves       = 60.0
	defaultBaselineRedemptions = 40.0
)

// categoryMultipliers adjusts projections per deal category. Unlisted
// categories are neutral.
var categoryMultipliers = map[string]float64{
	"drinks":        1.15,
	"food":          1.0,
	"dessert":       0.9,
	"brunch":        1.05,
	"entertainment": 1.1,
}

// LoadDealMetrics bulk-replaces the completed-deal history used as the
// projection baseline for a venue.
func (f *Forecaster) LoadDealMetrics(venueID string, deals []*models.Deal) {
	f.dealHistory[venueID] = deals
}

// PredictDealPerformance projects the engagement and revenue a proposed
// deal would earn, with an optimal launch window and qualitative notes.
func (f *Forecaster) PredictDealPerformance(p DealProposal) DealPerformance {
	defer metrics.ObserveScoring("forecast", "predict_deal_performance", time.Now())

	views, saves, redemptions := f.baselines(p.VenueID)
	indices := computeIndices(f.samples[p.VenueID])

	discountMult := 1 + 0.02*(p.DiscountPercent-20)
	if discountMult < 0 {
		discountMult = 0
	}
	slotMult := averageSlotIndex(indices, p.StartTime, p.EndTime)
	categoryMult := 1.0
	if m, ok := categoryMultipliers[p.Category]; ok {
		categoryMult = m
	}

	mult := discountMult * slotMult * categoryMult

	out := DealPerformance{
		PredictedViews:       views * mult,
		PredictedSaves:       saves * mult,
		PredictedRedemptions: redemptions * mult,
		OptimalStartHour:     optimalStartHour(indices),
	}
	out.PredictedRevenue = out.PredictedRedemptions * p.Price * (1 - p.DiscountPercent/100)

	out.Suggestions, out.RiskFlags = qualitativeNotes(p, out)
	return out
}

// baselines averages the venue's historical deal engagement, falling back
// to marketplace defaults with no history.
func (f *Forecaster) baselines(venueID string) (views, saves, redemptions float64) {
	history := f.dealHistory[venueID]
	if len(history) == 0 {
		return defaultBaselineViews, defaultBaselineSaves, defaultBaselineRedemptions
	}

	var v, s, r float64
	for _, d := range history {
		v += float64(d.Views)
		s += float64(d.Saves)
		r += float64(d.Redemptions)
	}
	n := float64(len(history))
	return v / n, s / n, r / n
}

// averageSlotIndex averages the hourly seasonal index across the deal's
// active hours. Degenerate windows are neutral.
func averageSlotIndex(indices seasonalIndices, start, end time.Time) float64 {
	hours := int(end.Sub(start).Hours())
	if hours <= 0 {
		return 1
	}
	if hours > 24 {
		hours = 24
	}

	sum := 0.0
	for i := 0; i < hours; i++ {
		sum += indices.hourly[(start.Hour()+i)%24]
	}
	return sum / float64(hours)
}

// optimalStartHour finds the start of the strongest three-hour window
// inside 11:00-20:00 by hourly index sum. Ties keep the earlier hour.
func optimalStartHour(indices seasonalIndices) int {
	best, bestSum := 11, -1.0
	for start := 11; start+3 <= 20; start++ {
		sum := indices.hourly[start] + indices.hourly[start+1] + indices.hourly[start+2]
		if sum > bestSum {
			best, bestSum = start, sum
		}
	}
	return best
}

// qualitativeNotes raises fixed-threshold suggestions and risk flags for
// the proposal.
func qualitativeNotes(p DealProposal, perf DealPerformance) (suggestions, risks []string) {
	if p.DiscountPercent < 20 {
		suggestions = append(suggestions, "discount under 20% may not drive pickup; consider deepening it")
	}
	if p.DiscountPercent > 50 {
		risks = append(risks, "discount above 50% erodes margin faster than redemptions grow")
	}
	if p.EndTime.Sub(p.StartTime) < 2*time.Hour {
		risks = append(risks, "deals shorter than two hours rarely build momentum")
	}
	if p.MaxRedemptions > 0 && float64(p.MaxRedemptions) < perf.PredictedRedemptions {
		risks = append(risks, fmt.Sprintf("redemption cap %d sits below the projected %.0f redemptions",
			p.MaxRedemptions, perf.PredictedRedemptions))
	}
	return suggestions, risks
}
