// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import "github.com/tomtom215/dealradar/internal/models"

// PopularityScore is the baseline popularity heuristic used both for the
// cold-start ranking and as a boost on the warm path:
//
//	0.4*redemptionRate + 0.3*saveRate + 0.3*scarcity
//
// Scarcity is the fraction of redemption inventory still available, so
// capped deals with headroom outrank ones about to sell out.
func PopularityScore(deal *models.Deal) float64 {
	return clamp01(0.4*deal.RedemptionRate() + 0.3*deal.SaveRate() + 0.3*deal.Scarcity())
}
