// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// PatchRequest is the body of PATCH /items/{resource}/{id}.
type PatchRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required,min=1"`
}

// PatchResult is the body of a successful PATCH. Refreshed is false when
// the item could not be re-read after the update; Item is then the
// pre-update snapshot.
type PatchResult struct {
	Item      models.Item `json:"item"`
	Refreshed bool        `json:"refreshed"`
}

// reservedFields returns the fields the backend manages itself, sorted.
func reservedFields(fields map[string]interface{}) []string {
	var reserved []string
	for key := range fields {
		if strings.HasPrefix(key, "_") {
			reserved = append(reserved, key)
		}
	}
	sort.Strings(reserved)
	return reserved
}

// PatchItem updates an item on the backend, guarded by the etag of the
// snapshot copy, then re-reads it into the store.
// @Summary Update an item
// @Description Sends a PATCH guarded by the snapshot etag, then re-reads the item
// @Tags Writes
// @Accept json
// @Produce json
// @Param resource path string true "Resource type"
// @Param id path string true "Backend item id"
// @Param request body PatchRequest true "Fields to update"
// @Success 200 {object} models.APIResponse{data=PatchResult}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /items/{resource}/{id} [patch]
func (h *Handler) PatchItem(w http.ResponseWriter, r *http.Request) {
	rt, ok := resourceParam(w, r)
	if !ok {
		return
	}
	if !rt.IsCollection() {
		respondError(w, http.StatusBadRequest, codeValidation, "Resource type is read-only: "+rt.String(), nil)
		return
	}
	if h.client == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Backend client unavailable", nil)
		return
	}

	var req PatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if reserved := reservedFields(req.Fields); len(reserved) > 0 {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    codeValidation,
			Message: "Fields starting with _ are managed by the backend",
			Details: map[string]interface{}{"fields": reserved},
		})
		return
	}

	id := chi.URLParam(r, "id")
	current, found := h.store.Get(rt, id)
	if !found {
		respondError(w, http.StatusNotFound, codeNotFound, "Item not found", nil)
		return
	}

	ctx := r.Context()
	endpoint := rt.Endpoint() + "/" + id
	if _, err := h.client.Patch(ctx, endpoint, current.Etag(), req.Fields); err != nil {
		respondBackendError(w, err)
		return
	}

	log := logging.Ctx(ctx)
	resp, err := h.client.GetItem(ctx, rt.Endpoint(), id, nil)
	if err != nil {
		log.Warn().Err(err).Str("resource", rt.String()).Str("id", id).Msg("Item patched but refresh failed")
		respondSuccess(w, http.StatusOK, PatchResult{Item: current}, h.entryMeta(rt, 1))
		return
	}

	updated := resp.Item()
	if !h.store.UpdateItem(rt, updated) {
		// A poll replaced the collection without this id in between.
		log.Debug().Str("resource", rt.String()).Str("id", id).Msg("Patched item no longer in snapshot")
	}
	log.Info().Str("resource", rt.String()).Str("id", id).Int("fields", len(req.Fields)).Msg("Item patched")

	respondSuccess(w, http.StatusOK, PatchResult{Item: updated, Refreshed: true}, h.entryMeta(rt, 1))
}
