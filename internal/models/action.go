// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

import "time"

// ActionKind is the kind of user-submitted mutation.
type ActionKind string

const (
	// ActionAcknowledge confirms via the item's ls_acknowledged flag.
	ActionAcknowledge ActionKind = "acknowledge"
	// ActionDowntime confirms via the item's ls_downtimed flag.
	ActionDowntime ActionKind = "downtime"
	// ActionProcess confirms via the processed flag of the action request.
	ActionProcess ActionKind = "process"
)

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionAcknowledge, ActionDowntime, ActionProcess:
		return true
	default:
		return false
	}
}

// PendingAction is a user-requested mutation awaiting backend confirmation.
type PendingAction struct {
	ID        string     `json:"id"`
	Kind      ActionKind `json:"kind"`
	HostID    string     `json:"host_id"`
	ServiceID string     `json:"service_id,omitempty"`
	// Handle is the _links.self.href of the backend action request.
	Handle      string    `json:"handle,omitempty"`
	Name        string    `json:"name,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OnService reports whether the action targets a service rather than a host.
func (a PendingAction) OnService() bool {
	return a.ServiceID != ""
}

// OutcomeStatus describes how a pending action left the tracker.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeExpired   OutcomeStatus = "expired"
)

// Outcome is a PendingAction removed from the tracker.
type Outcome struct {
	Action     PendingAction `json:"action"`
	Status     OutcomeStatus `json:"status"`
	ResolvedAt time.Time     `json:"resolved_at"`
}
