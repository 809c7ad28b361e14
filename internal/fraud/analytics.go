// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import "sort"

// EntityRisk ranks an entity by the mean confidence of its alerts.
type EntityRisk struct {
	EntityID   string  `json:"entity_id"`
	AlertCount int     `json:"alert_count"`
	MeanScore  float64 `json:"mean_score"`
}

// Analytics aggregates alert activity for the venue operations view.
type Analytics struct {
	TotalAlerts int `json:"total_alerts"`

	BySeverity map[Severity]int    `json:"by_severity"`
	ByType     map[AlertType]int   `json:"by_type"`
	ByStatus   map[AlertStatus]int `json:"by_status"`

	TopRiskUsers  []EntityRisk `json:"top_risk_users"`
	TopRiskVenues []EntityRisk `json:"top_risk_venues"`

	// EstimatedSavings assumes each resolved non-low alert prevented the
	// loss of one average-value deal.
	EstimatedSavings float64 `json:"estimated_savings"`
}

// GetFraudAnalytics tallies all stored alerts. avgDealValue feeds the
// estimated-savings figure.
func (e *Engine) GetFraudAnalytics(avgDealValue float64) Analytics {
	alerts := e.store.All()

	a := Analytics{
		TotalAlerts: len(alerts),
		BySeverity:  make(map[Severity]int),
		ByType:      make(map[AlertType]int),
		ByStatus:    make(map[AlertStatus]int),
	}

	userScores := make(map[string][]float64)
	venueScores := make(map[string][]float64)
	resolvedActionable := 0

	for _, alert := range alerts {
		a.BySeverity[alert.Severity]++
		a.ByType[alert.Type]++
		a.ByStatus[alert.Status]++

		switch alert.EntityType {
		case EntityUser:
			userScores[alert.EntityID] = append(userScores[alert.EntityID], alert.Confidence)
		case EntityVenue:
			venueScores[alert.EntityID] = append(venueScores[alert.EntityID], alert.Confidence)
		}

		if alert.Status == StatusResolved && alert.Severity != SeverityLow {
			resolvedActionable++
		}
	}

	a.TopRiskUsers = rankByMeanScore(userScores)
	a.TopRiskVenues = rankByMeanScore(venueScores)
	a.EstimatedSavings = float64(resolvedActionable) * avgDealValue

	return a
}

// rankByMeanScore orders entities descending by mean alert confidence,
// breaking ties by alert count then ID for determinism.
func rankByMeanScore(scores map[string][]float64) []EntityRisk {
	out := make([]EntityRisk, 0, len(scores))
	for id, vals := range scores {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		out = append(out, EntityRisk{
			EntityID:   id,
			AlertCount: len(vals),
			MeanScore:  sum / float64(len(vals)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanScore != out[j].MeanScore {
			return out[i].MeanScore > out[j].MeanScore
		}
		if out[i].AlertCount != out[j].AlertCount {
			return out[i].AlertCount > out[j].AlertCount
		}
		return out[i].EntityID < out[j].EntityID
	})

	return out
}
