// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDisconnected is returned once a request has exhausted its attempts
	// and the client flipped to disconnected.
	ErrDisconnected = errors.New("backend disconnected")

	// ErrNotAuthenticated is returned when no token is available.
	ErrNotAuthenticated = errors.New("backend not authenticated")

	// ErrEtagMismatch is returned when a PATCH If-Match precondition fails.
	ErrEtagMismatch = errors.New("backend etag mismatch")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// Transient reports whether the status is worth a retry: server errors,
// and 401/403 which the backend returns when a token was revoked or the
// backend restarted with a new secret.
func (e *APIError) Transient() bool {
	return e.StatusCode >= http.StatusInternalServerError ||
		e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusForbidden
}

// transportError wraps a failure below HTTP (dial, TLS, timeout, reset).
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// isTransient classifies an attempt error. Caller cancellation is never
// transient: shutting down must not mark the backend as lost.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	var tErr *transportError
	return errors.As(err, &tErr)
}

// StatusCode extracts the HTTP status from an error chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
