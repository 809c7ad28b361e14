// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package recommend implements the per-user deal recommendation engine.
//
// # Architecture
//
// The engine blends four signal families into a single score per
// candidate deal:
//
//   - Content-Based: cuisine affinity, price fit, venue type, proximity,
//     time-of-day and day-of-week match against the user's profile
//   - Collaborative: a boost from users with overlapping deal-interaction
//     sets (Jaccard similarity)
//   - Popularity: redemption rate, save rate and scarcity
//   - Recency: a small bonus for freshly started deals
//
// Users without a preference profile get the cold-start path: a pure
// popularity ranking flagged "trending in your area". An empty result is
// never returned while any active deal exists.
//
// # Explainability
//
// Every contributing factor emits a human-readable reason string carried
// on the recommendation. Reasons exist for operator and user trust, not
// just ranking.
//
// # Thread Safety
//
// The engine holds per-user profiles and the cross-user activity log as
// plain maps with no internal synchronization. Calls for different users
// are independent; concurrent calls for the same user must be serialized
// by the caller.
package recommend
