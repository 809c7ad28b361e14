// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"sort"

	"github.com/tomtom215/dealradar/internal/models"
)

// collaborativeBoost is added when a sufficiently similar user saved or
// redeemed the candidate deal.
const collaborativeBoost = 0.15

// neighbor is a similar user with their similarity score.
type neighbor struct {
	userID     string
	similarity float64
}

// JaccardSimilarity returns intersection-over-union of two deal-ID sets.
// Two empty sets have zero similarity.
func JaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// interactionSets groups the activity log into per-user deal-ID sets.
func interactionSets(activities []models.UserActivity) map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{})
	for _, a := range activities {
		set, ok := sets[a.UserID]
		if !ok {
			set = make(map[string]struct{})
			sets[a.UserID] = set
		}
		set[a.DealID] = struct{}{}
	}
	return sets
}

// topNeighbors returns at most limit users most similar to userID,
// keeping only those above threshold. Ties break by user ID so results
// are deterministic.
func topNeighbors(userID string, sets map[string]map[string]struct{}, threshold float64, limit int) []neighbor {
	target, ok := sets[userID]
	if !ok {
		return nil
	}

	var neighbors []neighbor
	for otherID, otherSet := range sets {
		if otherID == userID {
			continue
		}
		if sim := JaccardSimilarity(target, otherSet); sim > threshold {
			neighbors = append(neighbors, neighbor{userID: otherID, similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].userID < neighbors[j].userID
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors
}

// neighborEndorsements returns the deal IDs that any of the neighbors
// saved or redeemed. Views alone do not count as endorsement.
func neighborEndorsements(neighbors []neighbor, activities []models.UserActivity) map[string]struct{} {
	ids := make(map[string]struct{}, len(neighbors))
	for _, n := range neighbors {
		ids[n.userID] = struct{}{}
	}

	endorsed := make(map[string]struct{})
	for _, a := range activities {
		if _, ok := ids[a.UserID]; !ok {
			continue
		}
		if a.Action == models.ActionSave || a.Action == models.ActionRedeem {
			endorsed[a.DealID] = struct{}{}
		}
	}
	return endorsed
}
