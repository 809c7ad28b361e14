// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package recommend

import "github.com/tomtom215/dealradar/internal/models"

// Config contains engine tunables.
type Config struct {
	// MaxResults is how many recommendations a request gets when the
	// caller does not supply a limit.
	MaxResults int

	// SimilarityThreshold is the minimum Jaccard similarity for a user to
	// count as a collaborative neighbor. Typical range: 0.1-0.3.
	SimilarityThreshold float64

	// NeighborLimit restricts the collaborative boost to the most similar
	// users.
	NeighborLimit int
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxResults:          20,
		SimilarityThreshold: 0.1,
		NeighborLimit:       10,
	}
}

// Recommendation is a scored candidate deal with its reasoning.
type Recommendation struct {
	Deal *models.Deal `json:"deal"`

	// Score is the blended recommendation score in [0, 1].
	Score float64 `json:"score"`

	// PredictedRedemptionProbability estimates how likely this user is to
	// redeem the deal, in [0, 0.9].
	PredictedRedemptionProbability float64 `json:"predicted_redemption_probability"`

	// Reasons lists the contributing factors in ranked order.
	Reasons []string `json:"reasons"`
}

// Channel is a notification delivery channel.
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
)

// Frequency is a notification cadence tier.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// NotificationPlan is the side-channel output of PredictNotificationTime.
type NotificationPlan struct {
	// Hour is the user's historically most active hour of day (0-23).
	Hour int `json:"hour"`

	// Channel is push when engagement probability exceeds 0.3, else email.
	Channel Channel `json:"channel"`

	// Frequency derives from the recency and volume of activity.
	Frequency Frequency `json:"frequency"`

	// EngagementProbability is the estimate the channel choice rests on.
	EngagementProbability float64 `json:"engagement_probability"`
}

// clamp01 caps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
