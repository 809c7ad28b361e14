// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

func TestContentScorePerfectMatchCapped(t *testing.T) {
	now := time.Date(2026, 3, 6, 19, 0, 0, 0, time.UTC) // Friday 19:00

	prefs := models.NewUserPreferences("u1", now)
	prefs.CuisineAffinity["italian"] = 1.0
	prefs.PriceRange = models.PriceRange{Min: 10, Max: 40}
	prefs.FavoriteVenueTypes = []string{"restaurant"}
	prefs.Location = models.Location{Latitude: 40.7128, Longitude: -74.0060}
	prefs.PreferredHours = []int{19}
	prefs.PreferredDays = []time.Weekday{time.Friday}

	deal := &models.Deal{
		ID:        "d1",
		Category:  "italian",
		VenueType: "restaurant",
		Price:     25,
		Location:  models.Location{Latitude: 40.7128, Longitude: -74.0060},
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	}

	score, reasons := ContentScore(deal, prefs, now)

	// 0.25 + 0.2 + 0.15 + 0.2 + 0.1 + 0.1 = 1.0, capped at 1.0.
	if score != 1.0 {
		t.Errorf("perfect match score = %v, want 1.0", score)
	}
	if len(reasons) != 6 {
		t.Errorf("got %d reasons, want 6: %v", len(reasons), reasons)
	}
}

func TestContentScoreCuisineScalesWithAffinity(t *testing.T) {
	now := time.Now()
	prefs := models.NewUserPreferences("u1", now)
	prefs.CuisineAffinity["sushi"] = 0.4

	deal := &models.Deal{ID: "d1", Category: "sushi"}

	score, _ := ContentScore(deal, prefs, now)

	// 0.25 * 0.4 cuisine + 0.2 price fit (zero range matches everything).
	want := 0.25*0.4 + 0.2
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestProximityScoreDecay(t *testing.T) {
	base := models.Location{Latitude: 40.7128, Longitude: -74.0060}

	tests := []struct {
		name     string
		dealLoc  models.Location
		radiusKm float64
		wantZero bool
	}{
		{name: "same point full weight", dealLoc: base, radiusKm: 5},
		{name: "beyond radius", dealLoc: models.Location{Latitude: 41.0, Longitude: -74.0060}, radiusKm: 5, wantZero: true},
		{name: "unknown deal location", dealLoc: models.Location{}, radiusKm: 5, wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := models.NewUserPreferences("u1", time.Now())
			prefs.Location = base
			prefs.RadiusKm = tt.radiusKm

			deal := &models.Deal{ID: "d1", Location: tt.dealLoc}
			got := proximityScore(deal, prefs)

			if tt.wantZero && got != 0 {
				t.Errorf("proximityScore = %v, want 0", got)
			}
			if !tt.wantZero && got <= 0 {
				t.Errorf("proximityScore = %v, want > 0", got)
			}
		})
	}

	// Zero distance scores the full proximity weight.
	prefs := models.NewUserPreferences("u1", time.Now())
	prefs.Location = base
	prefs.RadiusKm = 5
	deal := &models.Deal{ID: "d1", Location: base}
	if got := proximityScore(deal, prefs); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("zero-distance proximityScore = %v, want 0.2", got)
	}
}

func TestRecencyBoost(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		start time.Time
		want  float64
	}{
		{name: "just launched", start: now, want: 0.1},
		{name: "five hours old", start: now.Add(-5 * time.Hour), want: 0.05},
		{name: "twelve hours old", start: now.Add(-12 * time.Hour), want: 0},
		{name: "starts in future", start: now.Add(time.Hour), want: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := &models.Deal{ID: "d1", StartTime: tt.start}
			if got := RecencyBoost(deal, now); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RecencyBoost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJaccardSimilarity(t *testing.T) {
	set := func(ids ...string) map[string]struct{} {
		s := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s[id] = struct{}{}
		}
		return s
	}

	tests := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{name: "identical", a: set("d1", "d2"), b: set("d1", "d2"), want: 1.0},
		{name: "disjoint", a: set("d1"), b: set("d2"), want: 0},
		{name: "half overlap", a: set("d1", "d2"), b: set("d2", "d3"), want: 1.0 / 3.0},
		{name: "empty left", a: set(), b: set("d1"), want: 0},
		{name: "both empty", a: set(), b: set(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JaccardSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JaccardSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopNeighborsThresholdAndOrder(t *testing.T) {
	activities := []models.UserActivity{
		{UserID: "me", DealID: "d1", VenueID: "v1", Action: models.ActionView, Timestamp: time.Now()},
		{UserID: "me", DealID: "d2", VenueID: "v1", Action: models.ActionView, Timestamp: time.Now()},
		{UserID: "twin", DealID: "d1", VenueID: "v1", Action: models.ActionView, Timestamp: time.Now()},
		{UserID: "twin", DealID: "d2", VenueID: "v1", Action: models.ActionView, Timestamp: time.Now()},
		{UserID: "stranger", DealID: "d9", VenueID: "v2", Action: models.ActionView, Timestamp: time.Now()},
	}

	sets := interactionSets(activities)
	neighbors := topNeighbors("me", sets, 0.1, 10)

	if len(neighbors) != 1 {
		t.Fatalf("got %d neighbors, want 1: %+v", len(neighbors), neighbors)
	}
	if neighbors[0].userID != "twin" {
		t.Errorf("neighbor = %q, want twin", neighbors[0].userID)
	}
	if neighbors[0].similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", neighbors[0].similarity)
	}
}
