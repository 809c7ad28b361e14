// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// ErrUnknownDeal is returned when an interaction references a deal that
// is not in the catalog.
var ErrUnknownDeal = errors.New("unknown deal")

// Engine scores candidate deals per user. It owns the deal catalog, the
// per-user preference profiles and the cross-user activity log, all
// bulk-replaced by the loader layer.
type Engine struct {
	config Config

	deals      map[string]*models.Deal
	prefs      map[string]*models.UserPreferences
	activities []models.UserActivity
}

// NewEngine creates a recommendation engine.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.NeighborLimit <= 0 {
		cfg.NeighborLimit = 10
	}

	return &Engine{
		config: cfg,
		deals:  make(map[string]*models.Deal),
		prefs:  make(map[string]*models.UserPreferences),
	}
}

// LoadCatalog bulk-replaces the deal catalog.
func (e *Engine) LoadCatalog(deals []*models.Deal) {
	e.deals = make(map[string]*models.Deal, len(deals))
	for _, d := range deals {
		e.deals[d.ID] = d
	}
	logging.Debug().Int("deals", len(deals)).Msg("recommendation catalog loaded")
}

// LoadUserProfiles bulk-replaces the preference profiles.
func (e *Engine) LoadUserProfiles(profiles []*models.UserPreferences) {
	e.prefs = make(map[string]*models.UserPreferences, len(profiles))
	for _, p := range profiles {
		e.prefs[p.UserID] = p
	}
}

// LoadActivities bulk-replaces the cross-user activity log.
func (e *Engine) LoadActivities(activities []models.UserActivity) {
	e.activities = activities
}

// Deal returns the catalog entry for id, or nil.
func (e *Engine) Deal(id string) *models.Deal {
	return e.deals[id]
}

// Preferences returns the profile for userID, or nil if the user has
// never interacted.
func (e *Engine) Preferences(userID string) *models.UserPreferences {
	return e.prefs[userID]
}

// RecordInteraction applies a single interaction: deal counters always,
// profile counters and preference nudges depending on the action. The
// profile is created lazily on first activity.
func (e *Engine) RecordInteraction(dealID, userID string, action models.ActionType, now time.Time) error {
	if !action.Valid() {
		metrics.InteractionsRejected.WithLabelValues("invalid_action").Inc()
		return fmt.Errorf("invalid action %q", action)
	}

	deal, ok := e.deals[dealID]
	if !ok {
		metrics.InteractionsRejected.WithLabelValues("unknown_deal").Inc()
		return fmt.Errorf("%w: %s", ErrUnknownDeal, dealID)
	}

	prefs, ok := e.prefs[userID]
	if !ok {
		prefs = models.NewUserPreferences(userID, now)
		e.prefs[userID] = prefs
	}

	switch action {
	case models.ActionView:
		deal.Views++
		prefs.Views++
	case models.ActionSave:
		deal.Saves++
		prefs.Saves++
	case models.ActionShare:
		deal.Shares++
	case models.ActionRedeem:
		deal.Redemptions++
		applyRedemptionNudge(prefs, deal, now)
	}

	e.activities = append(e.activities, models.UserActivity{
		DealID:    dealID,
		UserID:    userID,
		VenueID:   deal.VenueID,
		Action:    action,
		Timestamp: now,
	})

	metrics.InteractionsRecorded.WithLabelValues(string(action)).Inc()
	return nil
}

// GetRecommendations returns up to limit scored deals for the user,
// highest score first. Users without a profile get the cold-start
// popularity ranking; the list is never empty while an active deal
// exists.
func (e *Engine) GetRecommendations(userID string, limit int, now time.Time) []Recommendation {
	defer metrics.ObserveScoring("recommend", "get_recommendations", time.Now())

	// Callers that validate their own limit get exactly what they asked
	// for; MaxResults only fills in a missing limit.
	if limit <= 0 {
		limit = e.config.MaxResults
	}

	candidates := e.activeDeals(now)
	if len(candidates) == 0 {
		return nil
	}

	prefs, ok := e.prefs[userID]
	if !ok {
		return e.coldStart(candidates, limit)
	}

	sets := interactionSets(e.activities)
	neighbors := topNeighbors(userID, sets, e.config.SimilarityThreshold, e.config.NeighborLimit)
	endorsed := neighborEndorsements(neighbors, e.activities)

	recs := make([]Recommendation, 0, len(candidates))
	for _, deal := range candidates {
		content, reasons := ContentScore(deal, prefs, now)
		popularity := PopularityScore(deal)
		recency := RecencyBoost(deal, now)

		score := content + popularity + recency

		if _, ok := endorsed[deal.ID]; ok {
			score += collaborativeBoost
			reasons = append(reasons, "popular with people like you")
		}
		if popularity > 0.3 {
			reasons = append(reasons, "proven crowd favorite")
		}
		if recency > 0 {
			reasons = append(reasons, "just launched")
		}
		if len(reasons) == 0 {
			reasons = append(reasons, "worth a look nearby")
		}

		recs = append(recs, Recommendation{
			Deal:                           deal,
			Score:                          clamp01(score),
			PredictedRedemptionProbability: e.redemptionProbability(prefs, content, popularity),
			Reasons:                        reasons,
		})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// coldStart ranks purely by popularity for users with no profile.
func (e *Engine) coldStart(candidates []*models.Deal, limit int) []Recommendation {
	recs := make([]Recommendation, 0, len(candidates))
	for _, deal := range candidates {
		recs = append(recs, Recommendation{
			Deal:    deal,
			Score:   PopularityScore(deal),
			Reasons: []string{"trending in your area"},
		})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// redemptionProbability estimates the chance this user redeems a deal
// with the given content and popularity scores, capped at 0.9.
func (e *Engine) redemptionProbability(prefs *models.UserPreferences, content, popularity float64) float64 {
	ratio := 0.0
	if prefs.Views > 0 {
		ratio = float64(prefs.Redemptions) / float64(prefs.Views)
	}

	prob := (0.6*content + 0.4*popularity) * (ratio + 0.1)
	if prob > 0.9 {
		return 0.9
	}
	if prob < 0 {
		return 0
	}
	return prob
}

// activeDeals filters the catalog to deals still redeemable at now,
// ordered by ID for deterministic iteration.
func (e *Engine) activeDeals(now time.Time) []*models.Deal {
	ids := make([]string, 0, len(e.deals))
	for id := range e.deals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*models.Deal
	for _, id := range ids {
		if deal := e.deals[id]; deal.IsActive(now) {
			out = append(out, deal)
		}
	}
	return out
}

// sortRecommendations orders by score descending, breaking ties by deal
// ID so equal scores rank deterministically.
func sortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Deal.ID < recs[j].Deal.ID
	})
}
