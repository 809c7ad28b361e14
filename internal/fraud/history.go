// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

// MemoryHistory is the in-memory implementation of History. It keeps
// per-user and per-venue redemption logs plus a device-to-users index.
//
// MemoryHistory performs no internal synchronization. Concurrent calls
// for different users and venues are safe only through an external
// per-entity lock or single-writer queue owned by the caller.
type MemoryHistory struct {
	userEvents  map[string][]models.RedemptionEvent
	venueEvents map[string][]models.RedemptionEvent

	// deviceUsers maps device ID to the set of user IDs seen on it.
	deviceUsers map[string]map[string]struct{}

	// dealRedemptions counts redemptions per (userID, dealID).
	dealRedemptions map[string]map[string]int

	// venueFirstSeen anchors the daily-average window per venue.
	venueFirstSeen map[string]time.Time
}

// NewMemoryHistory creates an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		userEvents:      make(map[string][]models.RedemptionEvent),
		venueEvents:     make(map[string][]models.RedemptionEvent),
		deviceUsers:     make(map[string]map[string]struct{}),
		dealRedemptions: make(map[string]map[string]int),
		venueFirstSeen:  make(map[string]time.Time),
	}
}

// Append records a redemption in every index. Called by the engine after
// all checks have evaluated the event, so a check never sees the event it
// is currently scoring.
func (h *MemoryHistory) Append(event *models.RedemptionEvent) {
	h.userEvents[event.UserID] = append(h.userEvents[event.UserID], *event)
	h.venueEvents[event.VenueID] = append(h.venueEvents[event.VenueID], *event)

	if event.DeviceID != "" {
		users, ok := h.deviceUsers[event.DeviceID]
		if !ok {
			users = make(map[string]struct{})
			h.deviceUsers[event.DeviceID] = users
		}
		users[event.UserID] = struct{}{}
	}

	deals, ok := h.dealRedemptions[event.UserID]
	if !ok {
		deals = make(map[string]int)
		h.dealRedemptions[event.UserID] = deals
	}
	deals[event.DealID]++

	if first, ok := h.venueFirstSeen[event.VenueID]; !ok || event.Timestamp.Before(first) {
		h.venueFirstSeen[event.VenueID] = event.Timestamp
	}
}

// UserRedemptionsSince returns the user's redemptions at or after since.
func (h *MemoryHistory) UserRedemptionsSince(userID string, since time.Time) []models.RedemptionEvent {
	var out []models.RedemptionEvent
	for _, e := range h.userEvents[userID] {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// LastUserRedemption returns the user's most recent redemption, or nil.
func (h *MemoryHistory) LastUserRedemption(userID string) *models.RedemptionEvent {
	events := h.userEvents[userID]
	if len(events) == 0 {
		return nil
	}
	last := events[0]
	for _, e := range events[1:] {
		if e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}
	return &last
}

// UserDealRedemptions returns how many times the user has redeemed a deal.
func (h *MemoryHistory) UserDealRedemptions(userID, dealID string) int {
	return h.dealRedemptions[userID][dealID]
}

// UserRedemptionCount returns the user's lifetime redemption count.
func (h *MemoryHistory) UserRedemptionCount(userID string) int {
	return len(h.userEvents[userID])
}

// DeviceUsers returns the distinct user IDs seen on a device.
func (h *MemoryHistory) DeviceUsers(deviceID string) []string {
	users := h.deviceUsers[deviceID]
	out := make([]string, 0, len(users))
	for id := range users {
		out = append(out, id)
	}
	return out
}

// VenueRedemptionsSince returns the venue's redemptions at or after since.
func (h *MemoryHistory) VenueRedemptionsSince(venueID string, since time.Time) []models.RedemptionEvent {
	var out []models.RedemptionEvent
	for _, e := range h.venueEvents[venueID] {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// VenueDailyAverage returns the venue's historical average redemptions per
// day since its first recorded event. Windows shorter than one day count
// as one day so young venues are not flagged on their first busy hour.
func (h *MemoryHistory) VenueDailyAverage(venueID string) float64 {
	events := h.venueEvents[venueID]
	if len(events) == 0 {
		return 0
	}

	first := h.venueFirstSeen[venueID]
	last := events[0].Timestamp
	for _, e := range events {
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}

	days := last.Sub(first).Hours() / 24
	if days < 1 {
		days = 1
	}
	return float64(len(events)) / days
}
