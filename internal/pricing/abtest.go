// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package pricing

import (
	"fmt"
	"math"
)

// zCritical is the two-tailed 95% significance threshold.
const zCritical = 1.96

// CompareDeals runs a two-proportion z-test on redemption rate between
// two historical deals. A statistically tied pair falls back to revenue
// per view; with no views on either side the result is inconclusive.
func CompareDeals(a, b DealRecord) ABResult {
	if a.Views == 0 || b.Views == 0 {
		return ABResult{
			Outcome: OutcomeInconclusive,
			Summary: "one or both deals have no view data",
		}
	}

	z := twoProportionZ(a.Redemptions, a.Views, b.Redemptions, b.Views)

	if math.Abs(z) > zCritical {
		winner := a
		if b.RedemptionRate() > a.RedemptionRate() {
			winner = b
		}
		return ABResult{
			WinnerID: winner.DealID,
			Outcome:  OutcomeSignificant,
			ZScore:   z,
			Summary: fmt.Sprintf("deal %s converts significantly better (z=%.2f, %.1f%% vs %.1f%%)",
				winner.DealID, z, 100*winner.RedemptionRate(), 100*loserOf(a, b, winner).RedemptionRate()),
		}
	}

	// Rates are statistically indistinguishable; fall back to economics.
	if a.RevenuePerView() != b.RevenuePerView() {
		winner := a
		if b.RevenuePerView() > a.RevenuePerView() {
			winner = b
		}
		return ABResult{
			WinnerID: winner.DealID,
			Outcome:  OutcomeRevenueFallback,
			ZScore:   z,
			Summary: fmt.Sprintf("redemption rates tie statistically (z=%.2f); deal %s wins on revenue per view",
				z, winner.DealID),
		}
	}

	return ABResult{
		Outcome: OutcomeInconclusive,
		ZScore:  z,
		Summary: "no statistically or economically meaningful difference",
	}
}

// twoProportionZ computes the z-score of redemptions-per-view between two
// samples using the pooled proportion.
func twoProportionZ(successA, totalA, successB, totalB int) float64 {
	pA := float64(successA) / float64(totalA)
	pB := float64(successB) / float64(totalB)
	pooled := float64(successA+successB) / float64(totalA+totalB)

	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(totalA) + 1/float64(totalB)))
	if se == 0 {
		return 0
	}
	return (pA - pB) / se
}

func loserOf(a, b, winner DealRecord) DealRecord {
	if winner.DealID == a.DealID {
		return b
	}
	return a
}
