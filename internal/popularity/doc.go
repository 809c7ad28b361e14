// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package popularity scores deals on a venue dashboard 0-100 scale.
//
// # Architecture
//
// Four sub-scores feed a weighted overall score: engagement (weighted
// interaction volume), trending (recent hourly slots against the rest of
// the day), conversion (redemption and save rates against marketplace
// benchmarks), and velocity (recent redemption pace against remaining
// inventory and time). Badges are non-exclusive tags derived from the
// sub-scores; venue-wide rank is recomputed from scratch on every scoring
// pass so it can never serve stale.
//
// Deals with no engagement at all fall back to a neutral score of 50 and
// the new badge rather than a meaningless zero.
package popularity
