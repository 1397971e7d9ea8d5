// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package main is the entry point for the Alignak Watch server.

Alignak Watch keeps an in-memory snapshot of an Alignak monitoring backend
(hosts, services, daemons, live synthesis, user, history, notifications),
polls each resource type on its own interval, computes synthesis diffs,
tracks user actions until the backend confirms them, and serves all of
it to collaborators over HTTP and WebSocket.

# Application Architecture

	RootSupervisor ("alignak-watch")
	├── SyncSupervisor ("sync-layer")
	│   ├── poll-scheduler
	│   ├── reconnector
	│   ├── action-checker
	│   └── journal-compactor (when a journal path is configured)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket-hub
	│   └── event-forwarder
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: koanf with defaults, config.yaml and environment
 2. Logging: zerolog from the logging section
 3. Backend client, then one login attempt (the reconnector retries)
 4. Snapshot store, diff engine, event bus (optionally mirrored to NATS)
 5. Action journal, tracker restore, submitter
 6. Poll scheduler, reconnector, action checker
 7. WebSocket hub, event forwarder, HTTP API
 8. Supervisor tree, served until SIGINT or SIGTERM

# Configuration

	ALIGNAK_URL=http://alignak:5000
	ALIGNAK_USERNAME=admin
	ALIGNAK_PASSWORD=admin
	ACTIONS_JOURNAL_PATH=/var/lib/alignak-watch/journal
	SERVER_PORT=8090

See internal/config for every key.

Swagger documentation is available at /swagger/index.html when the server
is running.

# Build Tags

	go build ./cmd/server                  # default
	go build -tags nats ./cmd/server       # mirror bus events to NATS (EVENTS_NATS_URL)
*/
package main
