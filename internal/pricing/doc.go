// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package pricing recommends discount levels from historical deal
// performance and competitor benchmarks.
//
// # Architecture
//
// The optimizer estimates price elasticity from the spread between the
// lowest- and highest-discount historical deals in a category, derives an
// optimal discount from the standard elasticity markup rule adjusted by
// how far redemptions lag the target, and projects redemptions and
// revenue at the recommended level. Sparse categories fall back to a
// default elasticity rather than failing.
//
// Every recommendation carries human-readable reasoning assembled from
// competitor and historical comparisons; the venue operator sees why, not
// just what. CompareDeals runs a two-proportion z-test for A/B readouts.
package pricing
