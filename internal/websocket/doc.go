// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package websocket pushes monitoring events to connected WebSocket clients.

The Hub keeps the set of clients and fans every message out to them. The
events forwarder feeds it encoded bus events through BroadcastRaw, so a
client sees synthesis.diff, action.completed, action.expired and
backend.connection messages as they are published.

Message Format:

	{
	  "type": "synthesis.diff",
	  "timestamp": "2026-03-01T10:00:00Z",
	  "correlation_id": "9f0c...",
	  "data": { ... }
	}

On connect a client receives a "snapshot" message carrying the current
live synthesis and backend state, when the hub has a snapshot source.
The same message is broadcast after a manual refresh.

Client requests:

	{"type":"ping"}                                   -> {"type":"pong"}
	{"type":"snapshot"}                               -> {"type":"snapshot", ...}
	{"type":"subscribe","topics":["synthesis.diff"]}  -> {"type":"subscribed", ...}

A subscribed client only receives messages whose type is in its topic
list, plus snapshots. Subscribing with no topics clears the filter.
Unknown requests get an "error" reply. Requests are answered by the hub
goroutine; a request from a client that already left is ignored.
Protocol level ping/pong keeps idle connections alive.

Backpressure:

Broadcasts never block the caller. A full broadcast channel drops the
message; a client whose send buffer is full is disconnected.

Thread Safety:

All Hub methods are safe for concurrent use. RunWithContext must run in
exactly one goroutine.
*/
package websocket
