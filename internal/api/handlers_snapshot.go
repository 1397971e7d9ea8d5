// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/synthesis"
)

// SynthesisView is the body of GET /synthesis.
type SynthesisView struct {
	Counts      models.SynthesisCount       `json:"counts"`
	Percentages models.SynthesisPercentages `json:"percentages"`
}

// DiffView is the body of GET /diff.
type DiffView struct {
	Diff   models.DiffRecord     `json:"diff"`
	Counts models.SynthesisCount `json:"counts"`
}

// entryMeta describes the snapshot of one resource type.
func (h *Handler) entryMeta(rt models.ResourceType, count int) models.Metadata {
	entry := h.store.Entry(rt)
	return models.Metadata{
		UpdatedAt:  timePtr(entry.UpdatedAt),
		Generation: entry.Generation,
		Count:      count,
	}
}

// resourceParam parses the {resource} URL parameter. It writes a 404 and
// returns false for unknown types.
func resourceParam(w http.ResponseWriter, r *http.Request) (models.ResourceType, bool) {
	name := chi.URLParam(r, "resource")
	rt, ok := models.ParseResourceType(name)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "Unknown resource type: "+sanitizeLogValue(name), nil)
		return "", false
	}
	return rt, true
}

// Synthesis returns the aggregated live synthesis with percentages.
// @Summary Live synthesis
// @Description Aggregated host and service counters with percentages
// @Tags Snapshot
// @Produce json
// @Success 200 {object} models.APIResponse{data=SynthesisView}
// @Router /synthesis [get]
func (h *Handler) Synthesis(w http.ResponseWriter, r *http.Request) {
	counts := h.store.SynthesisCounts()
	view := SynthesisView{
		Counts:      counts,
		Percentages: synthesis.Percentages(counts),
	}
	respondSuccess(w, http.StatusOK, view, h.entryMeta(models.ResourceLiveSynthesis, 0))
}

// Diff returns the last synthesis diff. Before the first live-synthesis
// poll it answers 404.
// @Summary Last synthesis diff
// @Tags Snapshot
// @Produce json
// @Success 200 {object} models.APIResponse{data=DiffView}
// @Failure 404 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /diff [get]
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	if h.diffs == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Diff engine unavailable", nil)
		return
	}
	diff, counts, ok := h.diffs.Last()
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "No synthesis computed yet", nil)
		return
	}
	meta := models.Metadata{UpdatedAt: timePtr(diff.ComputedAt)}
	respondSuccess(w, http.StatusOK, DiffView{Diff: diff, Counts: counts}, meta)
}

// Items lists the snapshot of one resource type. limit and offset page
// through it; limit 0 returns everything.
// @Summary List snapshot items
// @Tags Snapshot
// @Produce json
// @Param resource path string true "Resource type" Enums(host, service, alignakdaemon, livesynthesis, user, history, notifications, realm, timeperiod)
// @Param offset query int false "Items to skip"
// @Param limit query int false "Maximum items, 0 for all"
// @Success 200 {object} models.APIResponse{data=[]models.Item}
// @Failure 404 {object} models.APIResponse
// @Router /items/{resource} [get]
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceParam(w, r)
	if !ok {
		return
	}

	entry := h.store.Entry(rt)
	items := page(entry.Items, getIntParam(r, "offset", 0), getIntParam(r, "limit", 0))
	respondSuccess(w, http.StatusOK, items, h.entryMeta(rt, len(entry.Items)))
}

// Item returns one snapshot item.
// @Summary Get one snapshot item
// @Tags Snapshot
// @Produce json
// @Param resource path string true "Resource type"
// @Param id path string true "Backend item id"
// @Success 200 {object} models.APIResponse{data=models.Item}
// @Failure 404 {object} models.APIResponse
// @Router /items/{resource}/{id} [get]
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	item, found := h.store.Get(rt, id)
	if !found {
		respondError(w, http.StatusNotFound, codeNotFound, "Item not found", nil)
		return
	}
	respondSuccess(w, http.StatusOK, item, h.entryMeta(rt, 1))
}

// Problems lists unhandled host and service problems.
// @Summary Unhandled problems
// @Tags Snapshot
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /problems [get]
func (h *Handler) Problems(w http.ResponseWriter, r *http.Request) {
	problems := h.store.Problems()
	count := len(problems.Hosts) + len(problems.Services)
	respondSuccess(w, http.StatusOK, problems, models.Metadata{Count: count})
}

// Daemons summarizes daemon aliveness.
// @Summary Daemon status
// @Tags Snapshot
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /daemons [get]
func (h *Handler) Daemons(w http.ResponseWriter, r *http.Request) {
	status := h.store.DaemonsStatus()
	respondSuccess(w, http.StatusOK, status, h.entryMeta(models.ResourceDaemon, status.Total))
}

// HostHistory lists the history entries of one host.
// @Summary Host history
// @Tags Snapshot
// @Produce json
// @Param id path string true "Host id"
// @Success 200 {object} models.APIResponse{data=[]models.Item}
// @Failure 404 {object} models.APIResponse
// @Router /hosts/{id}/history [get]
func (h *Handler) HostHistory(w http.ResponseWriter, r *http.Request) {
	hostID := chi.URLParam(r, "id")
	if _, ok := h.store.Get(models.ResourceHost, hostID); !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "Host not found", nil)
		return
	}
	entries := h.store.HistoryFor(hostID)
	respondSuccess(w, http.StatusOK, entries, h.entryMeta(models.ResourceHistory, len(entries)))
}

// Notifications lists the notifications addressed to the current user.
// @Summary User notifications
// @Tags Snapshot
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Item}
// @Router /notifications [get]
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items(models.ResourceNotifications)
	respondSuccess(w, http.StatusOK, items, h.entryMeta(models.ResourceNotifications, len(items)))
}

// page returns items[offset:offset+limit], clamped. A zero limit means no
// limit.
func page(items []models.Item, offset, limit int) []models.Item {
	if offset >= len(items) {
		return []models.Item{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// timePtr returns nil for the zero time.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
