// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package segment

import (
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// churnProbability estimates how likely the customer is gone for good.
// Base risk grows linearly with absence up to 0.9 at 120 days, adjusted
// against the customer's own visiting rhythm and discounted for loyalty.
func churnProbability(c *models.CustomerRecord, now time.Time) float64 {
	daysSinceLastVisit := now.Sub(c.LastVisit).Hours() / 24
	if daysSinceLastVisit < 0 {
		daysSinceLastVisit = 0
	}

	churn := daysSinceLastVisit / 120
	if churn > 0.9 {
		churn = 0.9
	}

	// A gap out of character for this customer is a stronger signal than
	// the absolute number of days.
	if avg := c.AvgInterVisitDays(); avg > 0 {
		if daysSinceLastVisit > 2*avg {
			churn += 0.2
			if churn > 0.95 {
				churn = 0.95
			}
		} else if daysSinceLastVisit < avg {
			churn -= 0.1
			if churn < 0.05 {
				churn = 0.05
			}
		}
	}

	switch {
	case c.VisitCount > 10:
		churn *= 0.7
	case c.VisitCount > 5:
		churn *= 0.85
	}

	return churn
}

// lifetimeValue projects remaining customer value: monthly spend scaled
// by expected tenure, where tenure is the inverse of churn probability.
func lifetimeValue(c *models.CustomerRecord, churn float64, now time.Time) float64 {
	monthlySpend := c.TotalSpend / c.AgeInMonths(now)
	if churn < 0.1 {
		churn = 0.1
	}
	return monthlySpend * (1 / churn)
}
