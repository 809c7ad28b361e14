// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

/*
Package websocket provides real-time bidirectional communication for live updates.

This package implements WebSocket support for pushing fraud alerts and
popularity score updates to connected venue-dashboard clients. It uses the
gorilla/websocket library with a hub-client architecture for efficient
message broadcasting.

Key Components:

  - Hub: Central message broker that manages client connections and broadcasts
  - Client: Represents a single WebSocket connection with read/write goroutines
  - Message: Typed message structure for different event types

Architecture:

The package implements a hub-and-spoke pattern:

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│          │         │         │
	│ Client1  │ Client2 │ Client3 │ Client4
	│          │         │         │
	└──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Reads from WebSocket, handles pings
  - writePump: Writes to WebSocket, sends pongs

Message Types:

The following message types are supported:

  - fraud_alert: A redemption tripped a fraud check (single winning alert)
  - score_update: A deal's popularity score or venue rank changed
  - forecast_ready: A demand forecast finished computing
  - ping/pong: Connection liveness

Usage Example - Server:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	// WebSocket upgrade endpoint
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
	    websocket.ServeWS(hub, w, r)
	})

The hub's broadcast channel is buffered; producers never block on slow
clients, and clients that stop draining are dropped.
*/
package websocket
