// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/alignak-watch/internal/actions"
	"github.com/tomtom215/alignak-watch/internal/models"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
)

// submitAction runs one submitter call and writes the 202 response.
func (h *Handler) submitAction(w http.ResponseWriter, action models.PendingAction, err error) {
	if err != nil {
		respondBackendError(w, err)
		return
	}
	respondSuccess(w, http.StatusAccepted, action, models.Metadata{})
}

// Acknowledge submits an acknowledgement of a host or service problem.
// @Summary Acknowledge a problem
// @Tags Actions
// @Accept json
// @Produce json
// @Param request body actions.AckRequest true "Acknowledgement"
// @Success 202 {object} models.APIResponse{data=models.PendingAction}
// @Failure 400 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /actions/acknowledge [post]
func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	if h.submitter == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Action submission unavailable", nil)
		return
	}
	var req actions.AckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action, err := h.submitter.Acknowledge(r.Context(), req)
	h.submitAction(w, action, err)
}

// Downtime schedules a downtime for a host or service.
// @Summary Schedule a downtime
// @Tags Actions
// @Accept json
// @Produce json
// @Param request body actions.DowntimeRequest true "Downtime"
// @Success 202 {object} models.APIResponse{data=models.PendingAction}
// @Failure 400 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /actions/downtime [post]
func (h *Handler) Downtime(w http.ResponseWriter, r *http.Request) {
	if h.submitter == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Action submission unavailable", nil)
		return
	}
	var req actions.DowntimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action, err := h.submitter.Downtime(r.Context(), req)
	h.submitAction(w, action, err)
}

// ForceCheck requests an immediate check of a host or service.
// @Summary Force a check
// @Tags Actions
// @Accept json
// @Produce json
// @Param request body actions.CheckRequest true "Check"
// @Success 202 {object} models.APIResponse{data=models.PendingAction}
// @Failure 400 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /actions/check [post]
func (h *Handler) ForceCheck(w http.ResponseWriter, r *http.Request) {
	if h.submitter == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Action submission unavailable", nil)
		return
	}
	var req actions.CheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action, err := h.submitter.ForceCheck(r.Context(), req)
	h.submitAction(w, action, err)
}

// PendingActions lists the actions awaiting backend confirmation, oldest
// first.
// @Summary Pending actions
// @Tags Actions
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.PendingAction}
// @Router /actions/pending [get]
func (h *Handler) PendingActions(w http.ResponseWriter, r *http.Request) {
	if h.pending == nil {
		respondSuccess(w, http.StatusOK, []models.PendingAction{}, models.Metadata{})
		return
	}
	pending := h.pending.Pending()
	if pending == nil {
		pending = []models.PendingAction{}
	}
	respondSuccess(w, http.StatusOK, pending, models.Metadata{Count: len(pending)})
}

// Refresh polls every resource type once and returns when done. A
// complete refresh pushes a fresh snapshot to websocket clients.
// @Summary Refresh every resource type
// @Tags Writes
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Scheduler unavailable", nil)
		return
	}
	err := h.scheduler.RefreshAll(r.Context())
	switch {
	case err == nil:
		if h.wsHub != nil {
			h.wsHub.BroadcastSnapshot()
		}
		respondSuccess(w, http.StatusOK, h.scheduler.Status(), models.Metadata{})
	case errors.Is(err, syncpkg.ErrSkipped):
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Backend disconnected, refresh skipped", nil)
	default:
		respondError(w, http.StatusBadGateway, codeUnavailable, "Refresh incomplete", err)
	}
}
