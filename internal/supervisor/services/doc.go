// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package services provides suture.Service wrappers for Alignak Watch
components whose lifecycle is not already a Serve(ctx) method.

# Available Services

Poll Scheduler (SchedulerService):
  - Wraps sync.Scheduler's Start/Stop lifecycle
  - Stop waits for every poll loop and in-flight request

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Configurable shutdown timeout for draining requests

WebSocket Hub (WebSocketHubService):
  - Runs websocket.Hub.RunWithContext
  - Closes client connections on shutdown

Journal Compactor (JournalCompactorService):
  - Periodically reclaims BadgerDB value log space of the pending-action journal

The reconnector, the action checker and the event forwarder implement
suture.Service themselves and are added to the tree directly.

# Error Handling

Serve returns ctx.Err() on graceful shutdown and a wrapped error when the
component fails to start, which makes suture restart it with backoff.
*/
package services
