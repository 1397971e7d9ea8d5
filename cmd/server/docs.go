// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// @title Alignak Watch API
// @version 1.0
// @description Live snapshot of an Alignak monitoring backend: synthesis, problems, daemons,
// @description items and user actions awaiting confirmation.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "BACKEND_UNAVAILABLE", "message": "Backend disconnected"},
// @description   "metadata": {"timestamp": "2026-10-19T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/alignak-watch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8090
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and service status
//
// @tag.name Snapshot
// @tag.description Reads served from the in-memory backend snapshot
//
// @tag.name Writes
// @tag.description Item updates and manual refresh
//
// @tag.name Actions
// @tag.description Acknowledgements, downtimes and forced checks tracked until the backend confirms them
//
// @tag.name Realtime
// @tag.description WebSocket push of snapshots and bus events
package main

//go:generate swag init --dir ../../ --generalInfo cmd/server/docs.go --output ../../docs --parseInternal --outputTypes go
