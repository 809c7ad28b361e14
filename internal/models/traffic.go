// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package models

import "time"

// TrafficSample is one hourly foot-traffic observation for a venue on a
// 0-100 occupancy scale.
type TrafficSample struct {
	VenueID   string    `json:"venue_id" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Traffic   float64   `json:"traffic" validate:"gte=0,lte=100"`
}

// Hour returns the sample's hour of day.
func (s TrafficSample) Hour() int {
	return s.Timestamp.Hour()
}

// Day returns the sample's day of week.
func (s TrafficSample) Day() time.Weekday {
	return s.Timestamp.Weekday()
}
