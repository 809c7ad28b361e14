// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package popularity

import (
	"math"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// Marketplace-wide "average" benchmarks the conversion score is measured
// against.
const (
	benchmarkConversionRate = 0.10
	benchmarkSaveRate       = 0.15
)

// expectedRedemptionsPerHour anchors the linear part of the velocity
// score: pace equal to this rate scores mid-scale.
const expectedRedemptionsPerHour = 5.0

// Interaction weights for the engagement score.
const (
	weightView   = 1
	weightSave   = 5
	weightShare  = 8
	weightRedeem = 10
)

// engagementScore is weighted interaction volume normalized against the
// configured ceiling, capped at 100.
func engagementScore(deal *models.Deal, ceiling float64) float64 {
	weighted := float64(deal.Views*weightView + deal.Saves*weightSave +
		deal.Shares*weightShare + deal.Redemptions*weightRedeem)
	return math.Min(100, weighted/ceiling*100)
}

// trendingScore compares the most recent hourly slots to the rest of the
// day for views and redemptions. Flat activity scores 50; accelerating
// activity climbs toward 100.
func trendingScore(hist *HourlyHistogram, nowHour, window int) float64 {
	viewGrowth := slotGrowth(hist.Views[:], nowHour, window)
	redemptionGrowth := slotGrowth(hist.Redemptions[:], nowHour, window)

	blend := 0.4*viewGrowth + 0.6*redemptionGrowth
	return clamp100(50 + 50*blend)
}

// slotGrowth returns the relative change of the trailing window's average
// against the remainder of the 24-slot histogram: 0 means flat, 1 means
// double the background pace.
func slotGrowth(slots []int, nowHour, window int) float64 {
	var recentSum, restSum int
	recentHours := make(map[int]bool, window)
	for i := 0; i < window; i++ {
		recentHours[((nowHour-i)%24+24)%24] = true
	}

	for h, v := range slots {
		if recentHours[h] {
			recentSum += v
		} else {
			restSum += v
		}
	}

	recentAvg := float64(recentSum) / float64(window)
	restAvg := float64(restSum) / float64(len(slots)-window)

	if restAvg == 0 {
		if recentAvg == 0 {
			return 0
		}
		return 1
	}
	return recentAvg/restAvg - 1
}

// conversionScore measures redemption and save rates against the
// marketplace benchmarks, where benchmark performance scores 50.
func conversionScore(deal *models.Deal) float64 {
	if deal.Views == 0 {
		return 0
	}

	redemptionPart := math.Min(100, deal.RedemptionRate()/benchmarkConversionRate*50)
	savePart := math.Min(100, deal.SaveRate()/benchmarkSaveRate*50)
	return 0.7*redemptionPart + 0.3*savePart
}

// velocityScore projects the recent three-hour redemption pace across the
// deal's remaining lifetime. Projected sell-out escalates into the 70-100
// band; otherwise the pace scales linearly against the expected rate.
func velocityScore(deal *models.Deal, hist *HourlyHistogram, now time.Time) float64 {
	nowHour := now.Hour()
	recent := 0
	for i := 0; i < 3; i++ {
		recent += hist.Redemptions[((nowHour-i)%24+24)%24]
	}
	ratePerHour := float64(recent) / 3

	remainingHours := deal.EndTime.Sub(now).Hours()
	if remainingHours <= 0 {
		return 0
	}

	if deal.MaxRedemptions > 0 {
		remainingSlots := float64(deal.MaxRedemptions - deal.Redemptions)
		if remainingSlots <= 0 {
			return 100
		}
		projected := ratePerHour * remainingHours
		if projected >= remainingSlots {
			// Likely sell-out: escalate with how far past capacity the
			// projection runs.
			overrun := math.Min(1, (projected-remainingSlots)/remainingSlots)
			return 70 + 30*overrun
		}
	}

	return math.Min(100, ratePerHour/expectedRedemptionsPerHour*50)
}
