// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package forecast

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// samplesFor generates hourly samples for the trailing n days with the
// traffic value per slot supplied by fn(day, hour).
func samplesFor(venueID string, days int, now time.Time, fn func(day, hour int) float64) []models.TrafficSample {
	var out []models.TrafficSample
	for d := 1; d <= days; d++ {
		for h := 0; h < 24; h++ {
			ts := now.AddDate(0, 0, -d).Truncate(24 * time.Hour).Add(time.Duration(h) * time.Hour)
			out = append(out, models.TrafficSample{
				VenueID:   venueID,
				Timestamp: ts,
				Traffic:   fn(d, h),
			})
		}
	}
	return out
}

func newTestForecaster(seed int64) *Forecaster {
	return NewForecaster(DefaultConfig(), rand.New(rand.NewSource(seed)))
}

func TestComputeIndices(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	// Flat 40 everywhere except hour 19 at 80: hour 19 index above 1,
	// other hours just below.
	samples := samplesFor("v1", 7, now, func(_, h int) float64 {
		if h == 19 {
			return 80
		}
		return 40
	})

	idx := computeIndices(samples)
	if idx.hourly[19] <= 1 {
		t.Errorf("peak hour index = %v, want > 1", idx.hourly[19])
	}
	if idx.hourly[3] >= 1 {
		t.Errorf("off-peak hour index = %v, want < 1", idx.hourly[3])
	}

	// Uniform traffic means every index is exactly neutral.
	flat := computeIndices(samplesFor("v1", 7, now, func(_, _ int) float64 { return 50 }))
	for h, v := range flat.hourly {
		if math.Abs(v-1) > 1e-9 {
			t.Errorf("flat hourly index[%d] = %v, want 1", h, v)
		}
	}
}

func TestComputeIndicesNoData(t *testing.T) {
	idx := computeIndices(nil)
	for h, v := range idx.hourly {
		if v != 1 {
			t.Errorf("empty hourly index[%d] = %v, want neutral 1", h, v)
		}
	}
	for d, v := range idx.daily {
		if v != 1 {
			t.Errorf("empty daily index[%d] = %v, want neutral 1", d, v)
		}
	}
}

func TestSmoothedBaseline(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	// Constant traffic smooths to itself.
	flat := samplesFor("v1", 7, now, func(_, _ int) float64 { return 60 })
	if got := smoothedBaseline(flat, 0.3, now); math.Abs(got-60) > 1e-9 {
		t.Errorf("flat baseline = %v, want 60", got)
	}

	// No data at all falls back to mid-scale.
	if got := smoothedBaseline(nil, 0.3, now); got != 50 {
		t.Errorf("empty baseline = %v, want 50", got)
	}
}

func TestWeeklyTrend(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		thisWeek float64
		lastWeek float64
		want     Trend
	}{
		{name: "increasing", thisWeek: 60, lastWeek: 40, want: TrendIncreasing},
		{name: "decreasing", thisWeek: 30, lastWeek: 60, want: TrendDecreasing},
		{name: "stable", thisWeek: 50, lastWeek: 48, want: TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := samplesFor("v1", 14, now, func(d, _ int) float64 {
				if d <= 7 {
					return tt.thisWeek
				}
				return tt.lastWeek
			})
			if got := weeklyTrend(samples, now); got != tt.want {
				t.Errorf("weeklyTrend = %q, want %q", got, tt.want)
			}
		})
	}

	if got := weeklyTrend(nil, now); got != TrendStable {
		t.Errorf("no-data trend = %q, want stable", got)
	}
}

func TestForecastDemandClampAndTags(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newTestForecaster(1)

	// Dead afternoons, packed evenings.
	f.LoadHistoricalData("v1", samplesFor("v1", 14, now, func(_, h int) float64 {
		if h >= 18 && h <= 21 {
			return 95
		}
		if h >= 14 && h < 17 {
			return 5
		}
		return 50
	}))

	forecast := f.ForecastDemand("v1", now.AddDate(0, 0, 1), now)

	if len(forecast.Hours) != 24 {
		t.Fatalf("got %d hourly predictions, want 24", len(forecast.Hours))
	}
	for _, h := range forecast.Hours {
		if h.PredictedTraffic < 0 || h.PredictedTraffic > 100 {
			t.Errorf("hour %d prediction %v outside [0, 100]", h.Hour, h.PredictedTraffic)
		}
		switch {
		case h.PredictedTraffic < quietThreshold && h.Action != ActionCreateDeal:
			t.Errorf("hour %d traffic %v tagged %q, want create_deal", h.Hour, h.PredictedTraffic, h.Action)
		case h.PredictedTraffic > busyThreshold && h.Action != ActionBusy:
			t.Errorf("hour %d traffic %v tagged %q, want busy", h.Hour, h.PredictedTraffic, h.Action)
		}
		if h.Action == ActionCreateDeal && h.SuggestedDealType == "" {
			t.Errorf("hour %d create_deal missing suggested deal type", h.Hour)
		}
	}

	if forecast.Hours[19].Action != ActionBusy {
		t.Errorf("peak hour tagged %q, want busy", forecast.Hours[19].Action)
	}
	if forecast.Hours[15].Action != ActionCreateDeal {
		t.Errorf("dead hour tagged %q, want create_deal", forecast.Hours[15].Action)
	}
}

func TestSeasonalNotes(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newTestForecaster(1)

	// Strong 19:00 peak, dead 04:00, Saturdays well above the rest of the
	// week.
	f.LoadHistoricalData("v1", samplesFor("v1", 14, now, func(d, h int) float64 {
		ts := now.AddDate(0, 0, -d)
		base := 40.0
		if ts.Weekday() == time.Saturday {
			base = 70
		}
		switch h {
		case 19:
			return base * 2
		case 4:
			return base / 4
		default:
			return base
		}
	}))

	forecast := f.ForecastDemand("v1", now.AddDate(0, 0, 1), now)
	if len(forecast.SeasonalNotes) == 0 {
		t.Fatal("pronounced pattern produced no seasonal notes")
	}

	joined := strings.Join(forecast.SeasonalNotes, "\n")
	for _, want := range []string{"19:00", "04:00", "saturday"} {
		if !strings.Contains(joined, want) {
			t.Errorf("seasonal notes missing %q:\n%s", want, joined)
		}
	}
}

func TestSeasonalNotesFlatVenue(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newTestForecaster(1)
	f.LoadHistoricalData("v1", samplesFor("v1", 14, now, func(_, _ int) float64 { return 50 }))

	forecast := f.ForecastDemand("v1", now.AddDate(0, 0, 1), now)
	if len(forecast.SeasonalNotes) != 0 {
		t.Errorf("flat venue produced notes: %v", forecast.SeasonalNotes)
	}

	// No history at all stays silent too.
	empty := f.ForecastDemand("unseen", now.AddDate(0, 0, 1), now)
	if len(empty.SeasonalNotes) != 0 {
		t.Errorf("no-history venue produced notes: %v", empty.SeasonalNotes)
	}
}

func TestForecastDeterministicWithFixedSeed(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	samples := samplesFor("v1", 7, now, func(_, h int) float64 { return float64(20 + h*2) })

	run := func() DemandForecast {
		f := newTestForecaster(99)
		f.LoadHistoricalData("v1", samples)
		return f.ForecastDemand("v1", now.AddDate(0, 0, 1), now)
	}

	a, b := run(), run()
	for h := range a.Hours {
		if a.Hours[h].PredictedTraffic != b.Hours[h].PredictedTraffic {
			t.Fatalf("hour %d differs across identical seeded runs: %v vs %v",
				h, a.Hours[h].PredictedTraffic, b.Hours[h].PredictedTraffic)
		}
	}
}

func TestConfidenceGrowsWithData(t *testing.T) {
	tests := []struct {
		samples int
		want    float64
	}{
		{samples: 0, want: 0.6},
		{samples: 50, want: 0.775},
		{samples: 100, want: 0.95},
		{samples: 1000, want: 0.95},
	}

	for _, tt := range tests {
		if got := confidenceFromSamples(tt.samples); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("confidence(%d) = %v, want %v", tt.samples, got, tt.want)
		}
	}
}

func TestPredictDealPerformance(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newTestForecaster(5)
	f.LoadHistoricalData("v1", samplesFor("v1", 14, now, func(_, _ int) float64 { return 50 }))

	base := DealProposal{
		VenueID:         "v1",
		Category:        "food",
		DiscountPercent: 20,
		StartTime:       time.Date(2026, 6, 16, 12, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 6, 16, 16, 0, 0, 0, time.UTC),
		Price:           30,
	}

	perf := f.PredictDealPerformance(base)

	// Neutral indices and a 20% anchor discount leave the defaults intact.
	if math.Abs(perf.PredictedViews-defaultBaselineViews) > 1e-9 {
		t.Errorf("predicted views = %v, want baseline %v", perf.PredictedViews, defaultBaselineViews)
	}
	if perf.PredictedRevenue <= 0 {
		t.Errorf("predicted revenue = %v, want > 0", perf.PredictedRevenue)
	}

	// Deeper discount projects more redemptions.
	deeper := base
	deeper.DiscountPercent = 40
	if got := f.PredictDealPerformance(deeper); got.PredictedRedemptions <= perf.PredictedRedemptions {
		t.Errorf("40%% discount projects %v redemptions, want more than %v",
			got.PredictedRedemptions, perf.PredictedRedemptions)
	}

	if perf.OptimalStartHour < 11 || perf.OptimalStartHour > 17 {
		t.Errorf("optimal start hour = %d, want within 11-17", perf.OptimalStartHour)
	}
}

func TestPredictDealPerformanceNotes(t *testing.T) {
	f := newTestForecaster(5)
	start := time.Date(2026, 6, 16, 12, 0, 0, 0, time.UTC)

	p := DealProposal{
		VenueID:         "v1",
		Category:        "drinks",
		DiscountPercent: 60,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		MaxRedemptions:  1,
		Price:           10,
	}

	perf := f.PredictDealPerformance(p)
	if len(perf.RiskFlags) != 3 {
		t.Errorf("got %d risk flags, want 3 (deep discount, short duration, low cap): %v",
			len(perf.RiskFlags), perf.RiskFlags)
	}

	shallow := p
	shallow.DiscountPercent = 10
	shallow.MaxRedemptions = 0
	shallow.EndTime = start.Add(4 * time.Hour)
	perf = f.PredictDealPerformance(shallow)
	if len(perf.Suggestions) == 0 {
		t.Error("shallow discount produced no suggestion")
	}
	if len(perf.RiskFlags) != 0 {
		t.Errorf("unexpected risk flags: %v", perf.RiskFlags)
	}
}

func TestBaselinesFromHistory(t *testing.T) {
	f := newTestForecaster(5)
	f.LoadDealMetrics("v1", []*models.Deal{
		{ID: "d1", Views: 100, Saves: 20, Redemptions: 10},
		{ID: "d2", Views: 300, Saves: 40, Redemptions: 30},
	})

	views, saves, redemptions := f.baselines("v1")
	if views != 200 || saves != 30 || redemptions != 20 {
		t.Errorf("baselines = %v/%v/%v, want 200/30/20", views, saves, redemptions)
	}

	views, saves, redemptions = f.baselines("unknown")
	if views != defaultBaselineViews || saves != defaultBaselineSaves || redemptions != defaultBaselineRedemptions {
		t.Errorf("unknown venue baselines = %v/%v/%v, want defaults", views, saves, redemptions)
	}
}
