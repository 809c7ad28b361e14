// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package models

import (
	"math"
	"time"
)

// CoordinateEpsilon is the threshold for considering coordinates as
// effectively zero. A coordinate pair is treated as "unknown" (sentinel
// value 0,0) if both latitude and longitude are within this epsilon of
// zero. 1e-7 degrees is roughly 1.1cm at the equator, well below GPS
// accuracy, while avoiding direct float equality comparisons.
const CoordinateEpsilon = 1e-7

// Location is a geographic point in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsUnknown returns true if the location is the (0, 0) sentinel.
func (l Location) IsUnknown() bool {
	return math.Abs(l.Latitude) < CoordinateEpsilon && math.Abs(l.Longitude) < CoordinateEpsilon
}

// DistanceKm returns the great-circle distance to other in kilometers,
// computed with the Haversine formula.
func (l Location) DistanceKm(other Location) float64 {
	const earthRadiusKm = 6371.0

	lat1 := l.Latitude * math.Pi / 180.0
	lat2 := other.Latitude * math.Pi / 180.0
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180.0
	dLon := (other.Longitude - l.Longitude) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DiscountType describes how a deal's discount is expressed.
type DiscountType string

const (
	// DiscountPercentage is a percentage off the list price.
	DiscountPercentage DiscountType = "percentage"

	// DiscountFixed is a fixed amount off the list price.
	DiscountFixed DiscountType = "fixed"

	// DiscountBOGO is a buy-one-get-one offer.
	DiscountBOGO DiscountType = "bogo"
)

// Deal is a time-bounded offer published by a venue.
//
// Lifecycle: created by the venue, mutated by interaction events
// (engagement and redemption counters), expired once EndTime passes or the
// redemption cap is hit.
type Deal struct {
	ID            string       `json:"id" validate:"required"`
	VenueID       string       `json:"venue_id" validate:"required"`
	VenueType     string       `json:"venue_type,omitempty"`
	Category      string       `json:"category" validate:"required"`
	Title         string       `json:"title,omitempty"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`

	// Price is the undiscounted list price, used for price-range fit.
	Price float64 `json:"price,omitempty"`

	Location Location `json:"location"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Redemption counters. MaxRedemptions == 0 means uncapped.
	Redemptions    int `json:"redemptions"`
	MaxRedemptions int `json:"max_redemptions"`

	// Engagement counters, incremented by interaction events.
	Views  int `json:"views"`
	Saves  int `json:"saves"`
	Shares int `json:"shares"`

	CreatedAt time.Time `json:"created_at"`
}

// IsActive reports whether the deal can still be redeemed at t.
func (d *Deal) IsActive(t time.Time) bool {
	if t.After(d.EndTime) {
		return false
	}
	if d.MaxRedemptions > 0 && d.Redemptions >= d.MaxRedemptions {
		return false
	}
	return true
}

// Scarcity returns the fraction of redemption inventory remaining, in
// [0, 1]. Uncapped deals report full scarcity headroom of zero urgency.
func (d *Deal) Scarcity() float64 {
	if d.MaxRedemptions <= 0 {
		return 0
	}
	s := 1 - float64(d.Redemptions)/float64(d.MaxRedemptions)
	if s < 0 {
		return 0
	}
	return s
}

// RedemptionRate returns redemptions per view, 0 when unviewed.
func (d *Deal) RedemptionRate() float64 {
	if d.Views == 0 {
		return 0
	}
	return float64(d.Redemptions) / float64(d.Views)
}

// SaveRate returns saves per view, 0 when unviewed.
func (d *Deal) SaveRate() float64 {
	if d.Views == 0 {
		return 0
	}
	return float64(d.Saves) / float64(d.Views)
}
