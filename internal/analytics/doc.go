// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package analytics is the coordination layer over the six scoring
// engines: recommendations, segmentation, forecasting, pricing, fraud
// detection and popularity.
//
// # Architecture
//
// The Service owns one instance of each engine and exposes the ingestion,
// loader and query surface the API layer talks to. Engines themselves are
// pure in-memory computations with no internal locking; the Service
// serializes access with a single mutex, which keeps the read-modify-write
// paths (interaction recording, fraud history mutation) safe under
// concurrent HTTP handlers.
//
// Loaders bulk-replace per-venue or per-user state and mark the entity as
// known. Queries against entities no loader has ever touched fail with
// ErrUnknownEntity; known entities with sparse data fall back to each
// engine's defaults instead of failing.
package analytics
