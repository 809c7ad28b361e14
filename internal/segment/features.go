// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package segment

import (
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// RFM bucket thresholds. Each score runs 1 (worst) to 5 (best).
var (
	recencyDayThresholds = []float64{90, 60, 30, 14}
	frequencyThresholds  = []float64{1, 3, 6, 10}
	monetaryThresholds   = []float64{50, 100, 200, 400}
)

// recencyScore buckets days since last visit: over 90 days scores 1,
// within 14 days scores 5.
func recencyScore(daysSinceLastVisit float64) float64 {
	switch {
	case daysSinceLastVisit > recencyDayThresholds[0]:
		return 1
	case daysSinceLastVisit > recencyDayThresholds[1]:
		return 2
	case daysSinceLastVisit > recencyDayThresholds[2]:
		return 3
	case daysSinceLastVisit > recencyDayThresholds[3]:
		return 4
	default:
		return 5
	}
}

// frequencyScore buckets lifetime visit count.
func frequencyScore(visits int) float64 {
	v := float64(visits)
	switch {
	case v <= frequencyThresholds[0]:
		return 1
	case v <= frequencyThresholds[1]:
		return 2
	case v <= frequencyThresholds[2]:
		return 3
	case v <= frequencyThresholds[3]:
		return 4
	default:
		return 5
	}
}

// monetaryScore buckets total spend.
func monetaryScore(totalSpend float64) float64 {
	switch {
	case totalSpend <= monetaryThresholds[0]:
		return 1
	case totalSpend <= monetaryThresholds[1]:
		return 2
	case totalSpend <= monetaryThresholds[2]:
		return 3
	case totalSpend <= monetaryThresholds[3]:
		return 4
	default:
		return 5
	}
}

// featureVector maps a customer onto [recency, frequency, monetary,
// redemptionRate].
func featureVector(c *models.CustomerRecord, now time.Time) []float64 {
	days := now.Sub(c.LastVisit).Hours() / 24
	return []float64{
		recencyScore(days),
		frequencyScore(c.VisitCount),
		monetaryScore(c.TotalSpend),
		c.RedemptionRate(),
	}
}

// normalizeColumns min-max scales each feature column to [0, 1] in place.
// A column with no variance collapses to 0.5 for every member so it stops
// influencing distances without distorting them.
func normalizeColumns(features [][]float64) {
	if len(features) == 0 {
		return
	}

	dims := len(features[0])
	for col := 0; col < dims; col++ {
		min, max := features[0][col], features[0][col]
		for _, row := range features[1:] {
			if row[col] < min {
				min = row[col]
			}
			if row[col] > max {
				max = row[col]
			}
		}

		if min == max {
			for _, row := range features {
				row[col] = 0.5
			}
			continue
		}

		span := max - min
		for _, row := range features {
			row[col] = (row[col] - min) / span
		}
	}
}
