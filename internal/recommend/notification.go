// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import (
	"time"

	"github.com/tomtom215/dealradar/internal/metrics"
	"github.com/tomtom215/dealradar/internal/models"
)

// defaultNotificationHour is used when a user has no observable hourly
// pattern yet. Early evening outperforms every other slot across the
// whole user base.
const defaultNotificationHour = 18

// pushEngagementThreshold splits push from email: push interrupts, so it
// is reserved for users who demonstrably act on content.
const pushEngagementThreshold = 0.3

// PredictNotificationTime picks the hour, channel and cadence most
// likely to get userID to open a deal notification.
func (e *Engine) PredictNotificationTime(userID string, now time.Time) NotificationPlan {
	defer metrics.ObserveScoring("recommend", "predict_notification_time", time.Now())

	prefs := e.prefs[userID]

	plan := NotificationPlan{
		Hour:      e.bestHour(userID, prefs),
		Channel:   ChannelEmail,
		Frequency: FrequencyMonthly,
	}

	if prefs == nil {
		plan.EngagementProbability = 0.1
		return plan
	}

	plan.EngagementProbability = engagementProbability(prefs)
	if plan.EngagementProbability > pushEngagementThreshold {
		plan.Channel = ChannelPush
	}
	plan.Frequency = cadenceFor(e.recentActivityCount(userID, now))

	return plan
}

// bestHour is the modal activity hour for the user; preferred hours and
// then the global default fill in when the log is empty. Ties go to the
// earlier hour.
func (e *Engine) bestHour(userID string, prefs *models.UserPreferences) int {
	var counts [24]int
	seen := false
	for _, a := range e.activities {
		if a.UserID == userID {
			counts[a.Timestamp.Hour()]++
			seen = true
		}
	}
	if seen {
		best := 0
		for h := 1; h < 24; h++ {
			if counts[h] > counts[best] {
				best = h
			}
		}
		return best
	}

	if prefs != nil && len(prefs.PreferredHours) > 0 {
		return prefs.PreferredHours[0]
	}
	return defaultNotificationHour
}

// engagementProbability estimates how likely the user is to act on a
// notification, from their save/redeem rate per view.
func engagementProbability(prefs *models.UserPreferences) float64 {
	if prefs.Views == 0 {
		return 0.1
	}
	prob := float64(prefs.Saves+prefs.Redemptions) / float64(prefs.Views)
	return clamp01(prob)
}

// recentActivityCount counts the user's interactions in the trailing
// seven days.
func (e *Engine) recentActivityCount(userID string, now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	n := 0
	for _, a := range e.activities {
		if a.UserID == userID && a.Timestamp.After(cutoff) {
			n++
		}
	}
	return n
}

// cadenceFor maps weekly interaction volume to a notification cadence.
// Roughly: twice daily or more gets daily, a few per week gets weekly.
func cadenceFor(weeklyInteractions int) Frequency {
	switch {
	case weeklyInteractions >= 14:
		return FrequencyDaily
	case weeklyInteractions >= 3:
		return FrequencyWeekly
	default:
		return FrequencyMonthly
	}
}
