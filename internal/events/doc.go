// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package events carries synchronization events between components.
//
// The Bus is a Watermill GoChannel pub/sub. Every message payload is a JSON
// Event envelope {type, timestamp, correlation_id, data}:
//
//	synthesis.diff       models.DiffRecord after each live-synthesis poll
//	action.completed     models.Outcome for a confirmed action
//	action.expired       models.Outcome for an action that aged out
//	backend.connection   ConnectionChange after a (re)login
//
// The Forwarder pushes every event to the WebSocket hub. Built with
// -tags=nats, events are also mirrored to a NATS subject.
package events
