// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package models

import "time"

// ActionType classifies a user's interaction with a deal.
type ActionType string

const (
	ActionView   ActionType = "view"
	ActionSave   ActionType = "save"
	ActionShare  ActionType = "share"
	ActionRedeem ActionType = "redeem"
)

// Valid reports whether the action is one of the known interaction types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionView, ActionSave, ActionShare, ActionRedeem:
		return true
	default:
		return false
	}
}

// UserActivity is an immutable interaction record. It is append-only and
// never mutated after creation.
type UserActivity struct {
	DealID  string     `json:"deal_id" validate:"required"`
	UserID  string     `json:"user_id" validate:"required"`
	VenueID string     `json:"venue_id" validate:"required"`
	Action  ActionType `json:"action" validate:"required,oneof=view save share redeem"`

	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Location is optional; the (0,0) sentinel means unknown.
	Location Location `json:"location,omitempty"`

	// DeviceID is optional and only populated by clients that report it.
	// The collusion fraud check depends on it.
	DeviceID string `json:"device_id,omitempty"`
}

// RedemptionEvent is a UserActivity whose action is ActionRedeem, carried
// as its own type so the fraud pipeline's contract is explicit.
type RedemptionEvent struct {
	DealID  string `json:"deal_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	VenueID string `json:"venue_id" validate:"required"`

	Timestamp time.Time `json:"timestamp" validate:"required"`
	Location  Location  `json:"location,omitempty"`
	DeviceID  string    `json:"device_id,omitempty"`

	// AccountCreatedAt is the redeeming account's creation time, used by
	// the new-account abuse check. Zero means unknown.
	AccountCreatedAt time.Time `json:"account_created_at,omitempty"`
}

// Activity converts the redemption into its equivalent activity record.
func (r *RedemptionEvent) Activity() UserActivity {
	return UserActivity{
		DealID:    r.DealID,
		UserID:    r.UserID,
		VenueID:   r.VenueID,
		Action:    ActionRedeem,
		Timestamp: r.Timestamp,
		Location:  r.Location,
		DeviceID:  r.DeviceID,
	}
}
