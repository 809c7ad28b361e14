// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package popularity

import (
	"sort"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// Overall blend weights across the four sub-scores.
const (
	blendEngagement = 0.25
	blendTrending   = 0.30
	blendConversion = 0.25
	blendVelocity   = 0.20
)

// neutralScore is the fallback for deals with no engagement data yet.
const neutralScore = 50

// Scorer computes popularity scores over a loaded deal set.
type Scorer struct {
	config Config

	deals      map[string]*models.Deal
	histograms map[string]*HourlyHistogram
}

// NewScorer creates a popularity scorer.
func NewScorer(cfg Config) *Scorer {
	if cfg.EngagementCeiling <= 0 {
		cfg.EngagementCeiling = 10000
	}
	if cfg.TrendingWindowHours <= 0 || cfg.TrendingWindowHours >= 24 {
		cfg.TrendingWindowHours = 6
	}

	return &Scorer{
		config:     cfg,
		deals:      make(map[string]*models.Deal),
		histograms: make(map[string]*HourlyHistogram),
	}
}

// LoadDealMetrics bulk-replaces the scored deal set. Histograms for
// previously unseen deals start empty.
func (s *Scorer) LoadDealMetrics(deals []*models.Deal) {
	s.deals = make(map[string]*models.Deal, len(deals))
	retained := make(map[string]*HourlyHistogram, len(deals))
	for _, d := range deals {
		s.deals[d.ID] = d
		if h, ok := s.histograms[d.ID]; ok {
			retained[d.ID] = h
		} else {
			retained[d.ID] = &HourlyHistogram{}
		}
	}
	s.histograms = retained
	logging.Debug().Int("deals", len(deals)).Msg("popularity deal set loaded")
}

// RecordActivity folds one interaction into the deal's hourly histogram.
// Only views and redemptions shape the time-based sub-scores.
func (s *Scorer) RecordActivity(dealID string, action models.ActionType, at time.Time) {
	hist, ok := s.histograms[dealID]
	if !ok {
		return
	}
	switch action {
	case models.ActionView:
		hist.Views[at.Hour()]++
	case models.ActionRedeem:
		hist.Redemptions[at.Hour()]++
	}
}

// ScoreAll computes fresh scores for every loaded deal with venue-wide
// ranks assigned, best overall first. Rank is derived inside this single
// pass so it can never go stale against the scores it accompanies.
func (s *Scorer) ScoreAll(now time.Time) []Score {
	defer metrics.ObserveScoring("popularity", "score_all", time.Now())

	scores := make([]Score, 0, len(s.deals))
	for id, deal := range s.deals {
		scores = append(scores, s.scoreDeal(id, deal, now))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Overall != scores[j].Overall {
			return scores[i].Overall > scores[j].Overall
		}
		return scores[i].DealID < scores[j].DealID
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores
}

// GetTopDeals returns the top limit deals by overall score.
func (s *Scorer) GetTopDeals(limit int, now time.Time) []Score {
	scores := s.ScoreAll(now)
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// scoreDeal computes the four sub-scores, blend, and badges for one deal.
func (s *Scorer) scoreDeal(id string, deal *models.Deal, now time.Time) Score {
	hist := s.histograms[id]

	// No engagement signal at all: neutral score, flagged as new.
	if deal.Views == 0 && deal.Saves == 0 && deal.Shares == 0 && deal.Redemptions == 0 {
		return Score{
			DealID:            id,
			Engagement:        neutralScore,
			Trending:          neutralScore,
			Conversion:        neutralScore,
			Velocity:          neutralScore,
			Overall:           neutralScore,
			Badges:            []Badge{BadgeNew},
			PredictedPeakHour: hist.PeakHour(),
		}
	}

	score := Score{
		DealID:            id,
		Engagement:        engagementScore(deal, s.config.EngagementCeiling),
		Trending:          trendingScore(hist, now.Hour(), s.config.TrendingWindowHours),
		Conversion:        conversionScore(deal),
		Velocity:          velocityScore(deal, hist, now),
		PredictedPeakHour: hist.PeakHour(),
	}
	score.Overall = clamp100(blendEngagement*score.Engagement +
		blendTrending*score.Trending +
		blendConversion*score.Conversion +
		blendVelocity*score.Velocity)
	score.Badges = badges(deal, score, now)

	return score
}

// badges attaches every qualifying badge.
func badges(deal *models.Deal, score Score, now time.Time) []Badge {
	var out []Badge

	if score.Engagement > 70 && score.Conversion > 60 {
		out = append(out, BadgeHot)
	}
	if score.Trending > 75 {
		out = append(out, BadgeTrending)
	}
	if score.Engagement > 60 {
		out = append(out, BadgePopular)
	}
	if now.Sub(deal.StartTime) < 2*time.Hour {
		out = append(out, BadgeNew)
	}
	if deal.IsActive(now) && deal.EndTime.Sub(now) < time.Hour {
		out = append(out, BadgeEndingSoon)
	}

	return out
}
