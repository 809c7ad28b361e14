// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// Content score factor weights. The factors sum past 1.0 on a perfect
// match; the total is capped at 1.0.
const (
	weightCuisineMax   = 0.25
	weightPriceFit     = 0.2
	weightVenueType    = 0.15
	weightProximityMax = 0.2
	weightTimeOfDay    = 0.1
	weightDayOfWeek    = 0.1
)

// ContentScore computes the content-based match between a deal and a user
// profile at time now. It returns the capped score and one reason string
// per contributing factor.
func ContentScore(deal *models.Deal, prefs *models.UserPreferences, now time.Time) (float64, []string) {
	score := 0.0
	var reasons []string

	// Cuisine affinity scales the factor weight by the learned weight.
	if affinity, ok := prefs.CuisineAffinity[deal.Category]; ok && affinity > 0 {
		score += weightCuisineMax * affinity
		reasons = append(reasons, fmt.Sprintf("matches your taste for %s", deal.Category))
	}

	if prefs.PriceRange.Contains(deal.Price) {
		score += weightPriceFit
		reasons = append(reasons, "within your usual price range")
	}

	if deal.VenueType != "" && prefs.HasFavoriteVenueType(deal.VenueType) {
		score += weightVenueType
		reasons = append(reasons, fmt.Sprintf("you like %s venues", deal.VenueType))
	}

	if proximity := proximityScore(deal, prefs); proximity > 0 {
		score += proximity
		reasons = append(reasons, "close to you")
	}

	if prefs.PrefersHour(now.Hour()) {
		score += weightTimeOfDay
		reasons = append(reasons, "available at your favorite time")
	}

	if prefs.PrefersDay(now.Weekday()) {
		score += weightDayOfWeek
		reasons = append(reasons, "on a day you usually go out")
	}

	return clamp01(score), reasons
}

// proximityScore decays linearly from the full weight at zero distance to
// zero at the user's preferred radius. Unknown locations score zero.
func proximityScore(deal *models.Deal, prefs *models.UserPreferences) float64 {
	if deal.Location.IsUnknown() || prefs.Location.IsUnknown() || prefs.RadiusKm <= 0 {
		return 0
	}

	distance := prefs.Location.DistanceKm(deal.Location)
	if distance >= prefs.RadiusKm {
		return 0
	}

	return weightProximityMax * (1 - distance/prefs.RadiusKm)
}

// RecencyBoost rewards freshly started deals: 0.1 at launch, fading by
// 0.01 per hour to zero after ten hours.
func RecencyBoost(deal *models.Deal, now time.Time) float64 {
	hoursSinceStart := now.Sub(deal.StartTime).Hours()
	if hoursSinceStart < 0 {
		hoursSinceStart = 0
	}
	boost := 0.1 - 0.01*hoursSinceStart
	if boost < 0 {
		return 0
	}
	return boost
}
