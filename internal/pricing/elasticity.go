// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package pricing

// elasticity measures %-change in redemptions per %-change in discount
// between the lowest- and highest-discount deals in the set. Fewer than
// three data points, no discount variance, or a zero low-end redemption
// count all fall back to the configured default.
func elasticity(records []DealRecord, fallback float64) float64 {
	if len(records) < 3 {
		return fallback
	}

	low, high := records[0], records[0]
	for _, r := range records[1:] {
		if r.DiscountPercent < low.DiscountPercent {
			low = r
		}
		if r.DiscountPercent > high.DiscountPercent {
			high = r
		}
	}

	if high.DiscountPercent == low.DiscountPercent || low.DiscountPercent == 0 || low.Redemptions == 0 {
		return fallback
	}

	redemptionChange := float64(high.Redemptions-low.Redemptions) / float64(low.Redemptions)
	discountChange := (high.DiscountPercent - low.DiscountPercent) / low.DiscountPercent

	return redemptionChange / discountChange
}
