// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package backend is the REST client for the Alignak backend.
//
// A Client logs in once, with a username and password or with a bare token,
// and then authenticates every request with HTTP basic auth (token, empty
// password). Reads retry a transient failure once; writes never retry. When
// a request finally fails the client marks itself disconnected and signals
// Disconnects(), and the owner is expected to log in again before issuing
// more requests.
//
// Transient failures are transport errors, timeouts, 5xx responses and
// 401/403 responses. Other 4xx responses come back as *APIError.
package backend
