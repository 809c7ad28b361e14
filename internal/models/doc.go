// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package models defines the shared domain model for the analytics engine.
//
// The model is deliberately flat: deals, interaction events, user preference
// profiles, and per-venue customer aggregates. All analytics components
// consume these types; none of them mutate a value owned by another
// component. Interaction events are append-only and never modified after
// creation.
//
// Persistence is out of scope. A repository layer owned by the caller loads
// these values into memory and hands them to the engines.
package models
