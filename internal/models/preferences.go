// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package models

import "time"

// PriceRange brackets a user's comfortable spend per deal.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price falls inside the range. A zero-valued
// range matches everything.
func (p PriceRange) Contains(price float64) bool {
	if p.Min == 0 && p.Max == 0 {
		return true
	}
	return price >= p.Min && price <= p.Max
}

// UserPreferences is a per-user derived profile. It is created lazily on
// first activity and updated incrementally on every redemption; it is
// never recomputed from scratch.
type UserPreferences struct {
	UserID string `json:"user_id"`

	// CuisineAffinity maps cuisine/category tags to affinity weights in
	// [0, 1]. A redemption nudges the matching weight up by 0.1.
	CuisineAffinity map[string]float64 `json:"cuisine_affinity"`

	PriceRange PriceRange `json:"price_range"`

	// PreferredHours are hours-of-day (0-23) the user tends to redeem in.
	PreferredHours []int `json:"preferred_hours,omitempty"`

	// PreferredDays are days-of-week the user tends to redeem on.
	PreferredDays []time.Weekday `json:"preferred_days,omitempty"`

	// FavoriteVenueTypes accumulates venue types from redemptions.
	FavoriteVenueTypes []string `json:"favorite_venue_types,omitempty"`

	Location Location `json:"location"`

	// RadiusKm is the user's preferred discovery radius. Proximity decay
	// falls linearly to zero at this distance.
	RadiusKm float64 `json:"radius_km"`

	// Engagement history counters.
	Views       int `json:"views"`
	Saves       int `json:"saves"`
	Redemptions int `json:"redemptions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserPreferences creates an empty profile for a first-seen user.
func NewUserPreferences(userID string, now time.Time) *UserPreferences {
	return &UserPreferences{
		UserID:          userID,
		CuisineAffinity: make(map[string]float64),
		RadiusKm:        5,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// PrefersHour reports whether hour is one of the user's preferred hours.
func (p *UserPreferences) PrefersHour(hour int) bool {
	for _, h := range p.PreferredHours {
		if h == hour {
			return true
		}
	}
	return false
}

// PrefersDay reports whether day is one of the user's preferred days.
func (p *UserPreferences) PrefersDay(day time.Weekday) bool {
	for _, d := range p.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasFavoriteVenueType reports whether venueType is already a favorite.
func (p *UserPreferences) HasFavoriteVenueType(venueType string) bool {
	for _, v := range p.FavoriteVenueTypes {
		if v == venueType {
			return true
		}
	}
	return false
}
