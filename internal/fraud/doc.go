// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package fraud streams redemption events through a bank of anomaly
// checks and emits ranked alerts.
//
// # Architecture
//
// Each check implements the Detector interface and evaluates one class of
// abuse independently:
//
//   - Velocity: too many redemptions by one user in 24 hours
//   - New-account abuse: heavy redemption from a very young account
//   - Impossible travel: implausible geographic transitions
//   - Deal abuse: repeated redemption of the same deal
//   - Collusion: many accounts sharing one device
//   - Venue anomaly: a venue's redemption rate spiking past its history
//
// The Engine runs every enabled check for every event so no signal is
// silently skipped, then surfaces only the single highest-severity alert
// per event. Alerts are advisory: callers must never treat them as
// automatic blocks without reviewer confirmation.
//
// # State
//
// Event histories and user profiles live in an in-memory History updated
// after each evaluation. The engine performs no I/O and no internal
// synchronization beyond its own maps; concurrent calls for the same user
// or venue must be serialized by the caller.
//
// # Alert lifecycle
//
// Alerts start pending. The only mutation path after creation is an
// explicit reviewer transition to reviewed or resolved.
package fraud
