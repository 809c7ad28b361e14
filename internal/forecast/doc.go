// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package forecast predicts per-venue demand from hourly traffic history.
//
// # Architecture
//
// The model is deliberately simple: seasonal indices for hour-of-day and
// day-of-week (slot mean over overall mean) layered on an exponentially
// smoothed baseline of the trailing week. Hourly predictions multiply the
// three together, perturb with bounded noise, and clamp to the 0-100
// occupancy scale. Quiet hours get a create-a-deal recommendation with a
// deal archetype keyed to the hour band.
//
// PredictDealPerformance reuses the seasonal indices to project the
// engagement a not-yet-live deal would earn, and scans them for the best
// three-hour start window.
//
// Noise uses an injected *rand.Rand so tests can fix the sequence.
package forecast
