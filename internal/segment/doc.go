// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package segment clusters a venue's customers into behavioral segments.
//
// # Architecture
//
// The pipeline is: per-customer RFM feature vectors, min-max column
// normalization, k-means clustering, then post-hoc enrichment (archetype
// labels, churn probability, lifetime value, marketing suggestions).
// Populations under the configured minimum skip clustering entirely and
// come back as a single catch-all segment.
//
// Clustering depends on random centroid seeding, so the Segmenter takes
// an explicit *rand.Rand. Production wiring seeds it from the clock;
// tests seed it deterministically.
package segment
