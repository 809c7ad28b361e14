// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// applyRedemptionNudge folds a completed redemption into the profile.
// Redemptions are the strongest taste signal, so they move the cuisine
// affinity and favorite venue types; views and saves only count.
func applyRedemptionNudge(prefs *models.UserPreferences, deal *models.Deal, now time.Time) {
	prefs.Redemptions++

	if deal.Category != "" {
		affinity := prefs.CuisineAffinity[deal.Category] + 0.1
		if affinity > 1.0 {
			affinity = 1.0
		}
		prefs.CuisineAffinity[deal.Category] = affinity
	}

	if deal.VenueType != "" && !prefs.HasFavoriteVenueType(deal.VenueType) {
		prefs.FavoriteVenueTypes = append(prefs.FavoriteVenueTypes, deal.VenueType)
	}

	hour := now.Hour()
	if !prefs.PrefersHour(hour) {
		prefs.PreferredHours = append(prefs.PreferredHours, hour)
	}
	day := now.Weekday()
	if !prefs.PrefersDay(day) {
		prefs.PreferredDays = append(prefs.PreferredDays, day)
	}

	prefs.UpdatedAt = now
}
