// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package models

import "time"

// CustomerRecord is a per venue-customer aggregate, the segmentation
// input. Loaded from history by the repository layer; synthetic records
// are produced only by the demo package.
type CustomerRecord struct {
	CustomerID string `json:"customer_id"`
	VenueID    string `json:"venue_id"`

	VisitCount int     `json:"visit_count"`
	TotalSpend float64 `json:"total_spend"`
	AvgSpend   float64 `json:"avg_spend"`

	FirstVisit time.Time `json:"first_visit"`
	LastVisit  time.Time `json:"last_visit"`

	Redemptions        int      `json:"redemptions"`
	FavoriteCategories []string `json:"favorite_categories,omitempty"`
}

// AgeInMonths returns how many whole months the customer relationship has
// existed as of now, at least 1.
func (c *CustomerRecord) AgeInMonths(now time.Time) float64 {
	months := now.Sub(c.FirstVisit).Hours() / (24 * 30)
	if months < 1 {
		return 1
	}
	return months
}

// RedemptionRate returns redemptions per visit, 0 for no visits.
func (c *CustomerRecord) RedemptionRate() float64 {
	if c.VisitCount == 0 {
		return 0
	}
	return float64(c.Redemptions) / float64(c.VisitCount)
}

// AvgInterVisitDays returns the customer's historical average gap between
// visits in days. Returns 0 when fewer than two visits exist.
func (c *CustomerRecord) AvgInterVisitDays() float64 {
	if c.VisitCount < 2 {
		return 0
	}
	span := c.LastVisit.Sub(c.FirstVisit).Hours() / 24
	return span / float64(c.VisitCount-1)
}

// CustomerSegment is an output cluster from segmentation. Segments are
// recomputed on demand; a new run supersedes the previous one outright.
type CustomerSegment struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	CustomerIDs []string `json:"customer_ids"`

	// Centroid-derived characteristics.
	AvgSpend       float64 `json:"avg_spend"`
	VisitFrequency float64 `json:"visit_frequency"`
	ChurnRisk      float64 `json:"churn_risk"`
	LifetimeValue  float64 `json:"lifetime_value"`

	PreferredDealTypes []string `json:"preferred_deal_types,omitempty"`

	// Recommendations are templated marketing suggestions for the venue.
	Recommendations []string `json:"recommendations"`

	// Note carries caveats such as the small-population fallback notice.
	Note string `json:"note,omitempty"`
}
