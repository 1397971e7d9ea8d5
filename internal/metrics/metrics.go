// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Families:
//   - alignak_backend_*: REST client requests, retries and connection state
//   - alignak_poll_*: per-resource poll duration, errors and freshness
//   - alignak_synthesis_*: live-synthesis diff computations
//   - alignak_actions_*: pending action tracker
//   - circuit_breaker_*: reconnect breaker
//   - api_*, websocket_*: collaborator surfaces
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend client metrics
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_backend_requests_total",
			Help: "Total number of backend HTTP requests",
		},
		[]string{"method", "result"}, // result: "success", "transient", "client_error"
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alignak_backend_request_duration_seconds",
			Help:    "Duration of backend HTTP requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	BackendRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_backend_retries_total",
			Help: "Total number of GET retries after a transient failure",
		},
		[]string{"outcome"}, // "recovered", "exhausted"
	)

	BackendConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alignak_backend_connected",
			Help: "Backend connection flag (1=connected, 0=disconnected)",
		},
	)

	BackendLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_backend_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"mode", "result"}, // mode: "password", "token"
	)

	// Poll scheduler metrics
	PollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alignak_poll_duration_seconds",
			Help:    "Duration of a resource poll (fetch and replace) in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"resource"},
	)

	PollErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_poll_errors_total",
			Help: "Total number of failed poll cycles (stale snapshot kept)",
		},
		[]string{"resource"},
	)

	PollSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_poll_skipped_total",
			Help: "Total number of poll cycles skipped",
		},
		[]string{"resource", "reason"}, // reason: "disconnected", "dependency", "busy"
	)

	PollItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "alignak_poll_items",
			Help: "Number of items in the current snapshot per resource",
		},
		[]string{"resource"},
	)

	PollLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "alignak_poll_last_success_timestamp",
			Help: "Unix timestamp of the last successful poll per resource",
		},
		[]string{"resource"},
	)

	// Diff engine metrics
	SynthesisDiffs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_synthesis_diffs_total",
			Help: "Total number of live-synthesis diff computations",
		},
		[]string{"changed"},
	)

	// Pending action metrics
	ActionsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alignak_actions_pending",
			Help: "Current number of pending actions awaiting confirmation",
		},
	)

	ActionsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_actions_resolved_total",
			Help: "Total number of pending actions removed from the tracker",
		},
		[]string{"kind", "status"}, // status: "completed", "expired"
	)

	ActionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_actions_submitted_total",
			Help: "Total number of actions posted to the backend",
		},
		[]string{"kind", "result"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// WebSocket metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Total number of WebSocket messages dropped for slow clients",
		},
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alignak_events_published_total",
			Help: "Total number of events published on the bus",
		},
		[]string{"topic", "result"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordBackendRequest records one backend HTTP attempt.
func RecordBackendRequest(method, result string, duration time.Duration) {
	BackendRequests.WithLabelValues(method, result).Inc()
	BackendRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// SetBackendConnected updates the connection flag gauge.
func SetBackendConnected(connected bool) {
	if connected {
		BackendConnected.Set(1)
		return
	}
	BackendConnected.Set(0)
}

// RecordPoll records a completed poll cycle for a resource.
func RecordPoll(resource string, duration time.Duration, items int, err error) {
	PollDuration.WithLabelValues(resource).Observe(duration.Seconds())
	if err != nil {
		PollErrors.WithLabelValues(resource).Inc()
		return
	}
	PollItems.WithLabelValues(resource).Set(float64(items))
	PollLastSuccess.WithLabelValues(resource).Set(float64(time.Now().Unix()))
}

// RecordPollSkipped records a skipped poll cycle.
func RecordPollSkipped(resource, reason string) {
	PollSkipped.WithLabelValues(resource, reason).Inc()
}

// RecordSynthesisDiff records a diff computation.
func RecordSynthesisDiff(changed bool) {
	SynthesisDiffs.WithLabelValues(strconv.FormatBool(changed)).Inc()
}

// RecordActionResolved records an action leaving the tracker.
func RecordActionResolved(kind, status string) {
	ActionsResolved.WithLabelValues(kind, status).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
