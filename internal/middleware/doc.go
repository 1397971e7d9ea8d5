// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package middleware provides HTTP middleware for the collaborator API.

Key Components:

  - RequestID: X-Request-ID propagation plus a fresh correlation id
  - RequestLogger: one zerolog access line per request
  - PrometheusMetrics: request count, latency and in-flight gauge

All three use the standard func(http.Handler) http.Handler shape and are
mounted with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestLogger)
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Metrics are labeled by chi route pattern (/api/v1/items/{resource}), which
is only known after routing, so PrometheusMetrics reads it once the
handler returns.
*/
package middleware
