// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

/*
Package api provides the HTTP surface over the analytics service.

Routing uses Chi with a layered middleware stack:

	RequestID -> RealIP -> Recoverer -> CORS -> RateLimit -> PrometheusMetrics -> handler

Every endpoint responds with the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 4}
	}

Endpoint groups (all under /api/v1):

  - Ingestion: POST /interactions, POST /redemptions
  - Users: GET /users/{userID}/recommendations, GET /users/{userID}/notification-plan
  - Venues: GET /venues/{venueID}/segments, /forecast, /pricing,
    POST /venues/{venueID}/deal-performance
  - Pricing: POST /pricing/compare
  - Fraud: GET /fraud/alerts, POST /fraud/alerts/{alertID}/review and /resolve,
    GET /fraud/analytics
  - Popularity: GET /deals/top
  - Realtime: GET /ws (fraud alerts and score updates over WebSocket)
  - Ops: GET /api/v1/health, GET /api/v1/performance, GET /metrics (Prometheus)

Unknown venues and users return 404 with code UNKNOWN_ENTITY; malformed
requests return 400 with code VALIDATION_ERROR.
*/
package api
