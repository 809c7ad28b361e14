// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// seasonalIndices holds multiplicative demand factors per time slot. An
// index of 1 means the slot tracks the venue's overall average.
type seasonalIndices struct {
	hourly [24]float64
	daily  [7]float64
}

// computeIndices derives hour-of-day and day-of-week indices from the
// sample set. Slots with no samples, and everything when the overall mean
// is zero, default to a neutral 1.
func computeIndices(samples []models.TrafficSample) seasonalIndices {
	idx := seasonalIndices{}
	for h := range idx.hourly {
		idx.hourly[h] = 1
	}
	for d := range idx.daily {
		idx.daily[d] = 1
	}

	if len(samples) == 0 {
		return idx
	}

	var total float64
	var hourSums [24]float64
	var hourCounts [24]int
	var daySums [7]float64
	var dayCounts [7]int

	for _, s := range samples {
		total += s.Traffic
		h, d := s.Hour(), int(s.Day())
		hourSums[h] += s.Traffic
		hourCounts[h]++
		daySums[d] += s.Traffic
		dayCounts[d]++
	}

	overallMean := total / float64(len(samples))
	if overallMean == 0 {
		return idx
	}

	for h := range idx.hourly {
		if hourCounts[h] > 0 {
			idx.hourly[h] = (hourSums[h] / float64(hourCounts[h])) / overallMean
		}
	}
	for d := range idx.daily {
		if dayCounts[d] > 0 {
			idx.daily[d] = (daySums[d] / float64(dayCounts[d])) / overallMean
		}
	}

	return idx
}

// Index distance from neutral before a slot is worth mentioning.
const notableIndexDelta = 0.2

// notes turns the indices into plain-language observations for the
// venue operator. Only pronounced slots are mentioned, so a flat venue
// gets no notes at all.
func (idx seasonalIndices) notes() []string {
	var out []string

	peakHour, peakVal := extreme(idx.hourly[:], true)
	if peakVal >= 1+notableIndexDelta {
		out = append(out, fmt.Sprintf("%02d:00 runs about %d%% above your average traffic", peakHour, pctFromNeutral(peakVal)))
	}
	quietHour, quietVal := extreme(idx.hourly[:], false)
	if quietVal <= 1-notableIndexDelta {
		out = append(out, fmt.Sprintf("%02d:00 runs about %d%% below your average traffic", quietHour, pctFromNeutral(quietVal)))
	}

	bestDay, bestVal := extreme(idx.daily[:], true)
	if bestVal >= 1+notableIndexDelta {
		out = append(out, fmt.Sprintf("%ss are your strongest day, about %d%% above average", strings.ToLower(time.Weekday(bestDay).String()), pctFromNeutral(bestVal)))
	}
	slowDay, slowVal := extreme(idx.daily[:], false)
	if slowVal <= 1-notableIndexDelta {
		out = append(out, fmt.Sprintf("%ss are your quietest day, about %d%% below average", strings.ToLower(time.Weekday(slowDay).String()), pctFromNeutral(slowVal)))
	}

	return out
}

// extreme returns the position of the largest (or smallest) index. Ties
// go to the earlier slot.
func extreme(indices []float64, largest bool) (int, float64) {
	pos, val := 0, indices[0]
	for i, v := range indices[1:] {
		if (largest && v > val) || (!largest && v < val) {
			pos, val = i+1, v
		}
	}
	return pos, val
}

// pctFromNeutral converts an index to its whole-percent distance from 1.
func pctFromNeutral(index float64) int {
	return int(math.Round(math.Abs(index-1) * 100))
}

// smoothedBaseline runs single exponential smoothing over the trailing
// seven days of samples in chronological order and returns the final
// smoothed value. Falls back to the overall mean when the window is
// empty, and 50 (mid-scale) with no data at all.
func smoothedBaseline(samples []models.TrafficSample, alpha float64, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)

	window := make([]models.TrafficSample, 0, len(samples))
	var total float64
	for _, s := range samples {
		total += s.Traffic
		if s.Timestamp.After(cutoff) {
			window = append(window, s)
		}
	}

	if len(window) == 0 {
		if len(samples) == 0 {
			return 50
		}
		return total / float64(len(samples))
	}

	sort.Slice(window, func(i, j int) bool {
		return window[i].Timestamp.Before(window[j].Timestamp)
	})

	smoothed := window[0].Traffic
	for _, s := range window[1:] {
		smoothed = alpha*s.Traffic + (1-alpha)*smoothed
	}
	return smoothed
}

// weeklyTrend compares this week's average traffic to the prior week's.
func weeklyTrend(samples []models.TrafficSample, now time.Time) Trend {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var thisSum, priorSum float64
	var thisCount, priorCount int
	for _, s := range samples {
		switch {
		case s.Timestamp.After(weekAgo):
			thisSum += s.Traffic
			thisCount++
		case s.Timestamp.After(twoWeeksAgo):
			priorSum += s.Traffic
			priorCount++
		}
	}

	if thisCount == 0 || priorCount == 0 {
		return TrendStable
	}

	thisAvg := thisSum / float64(thisCount)
	priorAvg := priorSum / float64(priorCount)
	if priorAvg == 0 {
		return TrendStable
	}

	ratio := thisAvg / priorAvg
	switch {
	case ratio >= 1.1:
		return TrendIncreasing
	case ratio <= 0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
