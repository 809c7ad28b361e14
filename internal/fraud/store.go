// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"errors"
	"fmt"
	"sort"
)

// ErrAlertNotFound is returned for status transitions on unknown alerts.
var ErrAlertNotFound = errors.New("alert not found")

// AlertStore keeps generated alerts and owns their status transitions.
// The transition methods are the only mutation path after creation.
type AlertStore struct {
	alerts map[string]*Alert
	order  []string // insertion order for stable listings
}

// NewAlertStore creates an empty alert store.
func NewAlertStore() *AlertStore {
	return &AlertStore{
		alerts: make(map[string]*Alert),
	}
}

// Save adds an alert to the store.
func (s *AlertStore) Save(alert *Alert) {
	if _, exists := s.alerts[alert.ID]; !exists {
		s.order = append(s.order, alert.ID)
	}
	s.alerts[alert.ID] = alert
}

// Get returns the alert with the given ID, or nil.
func (s *AlertStore) Get(id string) *Alert {
	return s.alerts[id]
}

// Pending returns all alerts still awaiting review, newest first.
func (s *AlertStore) Pending() []*Alert {
	var out []*Alert
	for _, id := range s.order {
		if a := s.alerts[id]; a.Status == StatusPending {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DetectedAt.After(out[j].DetectedAt)
	})
	return out
}

// All returns every alert in insertion order.
func (s *AlertStore) All() []*Alert {
	out := make([]*Alert, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.alerts[id])
	}
	return out
}

// Review marks a pending alert as reviewed.
func (s *AlertStore) Review(id string) error {
	return s.transition(id, StatusPending, StatusReviewed)
}

// Resolve marks a pending or reviewed alert as resolved.
func (s *AlertStore) Resolve(id string) error {
	alert, ok := s.alerts[id]
	if !ok {
		return ErrAlertNotFound
	}
	if alert.Status == StatusResolved {
		return fmt.Errorf("alert %s is already resolved", id)
	}
	alert.Status = StatusResolved
	return nil
}

// transition moves an alert from one status to another, rejecting any
// other starting state.
func (s *AlertStore) transition(id string, from, to AlertStatus) error {
	alert, ok := s.alerts[id]
	if !ok {
		return ErrAlertNotFound
	}
	if alert.Status != from {
		return fmt.Errorf("alert %s is %s, expected %s", id, alert.Status, from)
	}
	alert.Status = to
	return nil
}
