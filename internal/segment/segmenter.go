// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package segment

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// archetypeLabels are assigned to clusters in discovery order, cycling if
// k ever exceeds the list. The labels are illustrative shorthand for the
// venue dashboard, not derived from the centroid.
var archetypeLabels = []string{
	"VIP Champions",
	"Loyal Regulars",
	"Deal Hunters",
	"At-Risk",
	"New Explorers",
}

// smallPopulationNote accompanies the single-segment fallback.
const smallPopulationNote = "not enough customers to segment meaningfully; collect more visit history"

// Config contains segmentation tunables.
type Config struct {
	// MinCustomers is the population below which clustering is skipped in
	// favor of a single catch-all segment.
	MinCustomers int

	// MaxClusters caps k. Effective k is min(MaxClusters, n/3).
	MaxClusters int

	// MaxIterations bounds the k-means reassignment loop.
	MaxIterations int
}

// DefaultConfig returns default segmentation configuration.
func DefaultConfig() Config {
	return Config{
		MinCustomers:  5,
		MaxClusters:   5,
		MaxIterations: 100,
	}
}

// Segmenter clusters venue customers. The random source drives centroid
// seeding only; pass a fixed-seed source for reproducible runs.
type Segmenter struct {
	config Config
	rng    *rand.Rand
}

// NewSegmenter creates a segmenter with the given random source.
func NewSegmenter(cfg Config, rng *rand.Rand) *Segmenter {
	if cfg.MinCustomers <= 0 {
		cfg.MinCustomers = 5
	}
	if cfg.MaxClusters <= 0 {
		cfg.MaxClusters = 5
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 100
	}

	return &Segmenter{config: cfg, rng: rng}
}

// SegmentCustomers clusters the venue's customers and returns enriched
// segments sorted by lifetime value, highest first. Populations under
// MinCustomers come back as a single segment with an explanatory note.
func (s *Segmenter) SegmentCustomers(venueID string, customers []*models.CustomerRecord, now time.Time) []models.CustomerSegment {
	defer metrics.ObserveScoring("segment", "segment_customers", time.Now())

	if len(customers) == 0 {
		return nil
	}

	if len(customers) < s.config.MinCustomers {
		return []models.CustomerSegment{s.fallbackSegment(venueID, customers, now)}
	}

	// Canonical order makes the partition independent of caller ordering:
	// with a fixed seed the same customer set always clusters identically.
	customers = append([]*models.CustomerRecord(nil), customers...)
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerID < customers[j].CustomerID
	})

	features := make([][]float64, len(customers))
	for i, c := range customers {
		features[i] = featureVector(c, now)
	}
	normalizeColumns(features)

	k := len(customers) / 3
	if k > s.config.MaxClusters {
		k = s.config.MaxClusters
	}
	if k < 1 {
		k = 1
	}

	assignments := kMeans(features, k, s.config.MaxIterations, s.rng)

	groups := make([][]*models.CustomerRecord, k)
	for i, cluster := range assignments {
		groups[cluster] = append(groups[cluster], customers[i])
	}

	segments := make([]models.CustomerSegment, 0, k)
	for i, members := range groups {
		if len(members) == 0 {
			continue
		}
		seg := s.buildSegment(venueID, i, members, now)
		segments = append(segments, seg)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].LifetimeValue > segments[j].LifetimeValue
	})

	logging.Debug().
		Str("venue_id", venueID).
		Int("customers", len(customers)).
		Int("segments", len(segments)).
		Msg("customers segmented")

	return segments
}

// buildSegment aggregates a cluster's members into a labeled segment.
func (s *Segmenter) buildSegment(venueID string, clusterIndex int, members []*models.CustomerRecord, now time.Time) models.CustomerSegment {
	seg := models.CustomerSegment{
		ID:    fmt.Sprintf("%s-seg-%d", venueID, clusterIndex),
		Label: archetypeLabels[clusterIndex%len(archetypeLabels)],
	}

	var totalSpendPerVisit, totalVisits, totalChurn, totalLTV float64
	categories := make(map[string]int)

	for _, c := range members {
		seg.CustomerIDs = append(seg.CustomerIDs, c.CustomerID)

		if c.VisitCount > 0 {
			totalSpendPerVisit += c.TotalSpend / float64(c.VisitCount)
		}
		totalVisits += float64(c.VisitCount)

		churn := churnProbability(c, now)
		totalChurn += churn
		totalLTV += lifetimeValue(c, churn, now)

		for _, cat := range c.FavoriteCategories {
			categories[cat]++
		}
	}

	n := float64(len(members))
	seg.AvgSpend = totalSpendPerVisit / n
	seg.VisitFrequency = totalVisits / n
	seg.ChurnRisk = totalChurn / n
	seg.LifetimeValue = totalLTV / n
	seg.PreferredDealTypes = topCategories(categories, 3)
	seg.Recommendations = marketingSuggestions(seg)

	return seg
}

// fallbackSegment is the under-populated catch-all.
func (s *Segmenter) fallbackSegment(venueID string, customers []*models.CustomerRecord, now time.Time) models.CustomerSegment {
	seg := s.buildSegment(venueID, 0, customers, now)
	seg.ID = venueID + "-seg-all"
	seg.Label = "All Customers"
	seg.Note = smallPopulationNote
	return seg
}

// marketingSuggestions emits templated campaign ideas gated on segment
// characteristics. At least one suggestion always comes back.
func marketingSuggestions(seg models.CustomerSegment) []string {
	var out []string

	if seg.ChurnRisk > 0.5 {
		out = append(out, "send re-engagement campaign with a limited-time comeback offer")
	}
	if seg.AvgSpend > 100 {
		out = append(out, "invite to a VIP loyalty tier with early access to new deals")
	}
	if seg.VisitFrequency > 8 {
		out = append(out, "reward frequency with a punch-card style repeat-visit perk")
	} else if seg.VisitFrequency < 2 {
		out = append(out, "offer a first-repeat incentive to convert one-time visitors")
	}
	if len(seg.PreferredDealTypes) > 0 {
		out = append(out, fmt.Sprintf("target promotions around %s deals", seg.PreferredDealTypes[0]))
	}

	if len(out) == 0 {
		out = append(out, "run a broad awareness promotion to learn this segment's tastes")
	}
	return out
}

// topCategories returns up to limit categories by member count, count
// descending with name as tie-break.
func topCategories(counts map[string]int, limit int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
