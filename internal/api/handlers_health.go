// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/alignak-watch/internal/models"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	// Status is "healthy" when the backend is connected, else "degraded".
	Status         string                                     `json:"status"`
	Connected      bool                                       `json:"connected"`
	PendingActions int                                        `json:"pending_actions"`
	Uptime         float64                                    `json:"uptime_seconds"`
	LastPolls      map[models.ResourceType]time.Time          `json:"last_polls"`
	Tasks          map[models.ResourceType]syncpkg.TaskStatus `json:"tasks,omitempty"`
}

// Health reports backend connectivity, pending actions and the last
// successful poll of every resource type. It always answers 200; callers
// read Status.
// @Summary Service health
// @Description Backend connectivity, pending action count and the last poll of every resource type
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.client != nil && h.client.Connected()

	health := HealthStatus{
		Status:    "healthy",
		Connected: connected,
		Uptime:    time.Since(h.startTime).Seconds(),
		LastPolls: h.store.UpdatedAt(),
	}
	if !connected {
		health.Status = "degraded"
	}
	if h.pending != nil {
		health.PendingActions = h.pending.Len()
	}
	if h.scheduler != nil {
		health.Tasks = h.scheduler.Status()
	}

	respondSuccess(w, http.StatusOK, health, models.Metadata{})
}
