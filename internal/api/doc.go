// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package api serves the snapshot, synthesis and actions over HTTP.

It is the collaborator surface of the sync core: dashboards, tray
applets and scripts read the in-memory snapshot here instead of polling
the Alignak backend themselves.

Routes (all under /api/v1 except /metrics and /swagger/):

	GET   /health                    connectivity, pending count, last polls
	GET   /synthesis                 live synthesis counts and percentages
	GET   /diff                      last synthesis diff
	GET   /items/{resource}          snapshot of one resource type
	GET   /items/{resource}/{id}     one item
	PATCH /items/{resource}/{id}     update fields, guarded by _etag
	GET   /problems                  unhandled host and service problems
	GET   /daemons                   daemon aliveness
	GET   /hosts/{id}/history        history of one host
	GET   /notifications             notifications for the current user
	POST  /actions/acknowledge       acknowledge a problem
	POST  /actions/downtime          schedule a downtime
	POST  /actions/check             force a check
	GET   /actions/pending           actions awaiting confirmation
	POST  /refresh                   poll every resource now
	GET   /ws                        WebSocket event stream
	GET   /metrics                   Prometheus
	GET   /swagger/*                 OpenAPI document and UI

Handlers carry swag annotations; the document in the docs package is
regenerated with go generate ./cmd/server.

Response Envelope:

	{"status":"success","data":...,"metadata":{"timestamp":...}}
	{"status":"error","data":null,"metadata":{...},"error":{"code":"NOT_FOUND","message":"..."}}

Error codes are VALIDATION_ERROR (400), NOT_FOUND (404), CONFLICT (409,
the backend rejected a PATCH because the item changed), RATE_LIMITED
(429), BACKEND_UNAVAILABLE (503) and INTERNAL_ERROR (500).

Middleware:

Every request gets a request id, a correlation id and an access log
line. RealIP, Recoverer and go-chi/cors run globally; /api/v1 adds a
per-IP go-chi/httprate limit and Prometheus instrumentation. Writes,
refresh and WebSocket upgrades have tighter limits of their own.
*/
package api
