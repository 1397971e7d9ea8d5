// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/alignak-watch/internal/actions"
	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
	ws "github.com/tomtom215/alignak-watch/internal/websocket"
)

// Backend is the backend client surface the API uses.
type Backend interface {
	Connected() bool
	GetItem(ctx context.Context, endpoint, id string, projection []string) (*backend.Response, error)
	Patch(ctx context.Context, endpoint, etag string, payload map[string]interface{}) (bool, error)
}

// Scheduler refreshes the snapshot on demand and reports poll status.
type Scheduler interface {
	RefreshAll(ctx context.Context) error
	Status() map[models.ResourceType]syncpkg.TaskStatus
}

// DiffSource exposes the last synthesis diff.
type DiffSource interface {
	Last() (diff models.DiffRecord, counts models.SynthesisCount, ok bool)
}

// ActionSubmitter posts backend actions.
type ActionSubmitter interface {
	Acknowledge(ctx context.Context, req actions.AckRequest) (models.PendingAction, error)
	Downtime(ctx context.Context, req actions.DowntimeRequest) (models.PendingAction, error)
	ForceCheck(ctx context.Context, req actions.CheckRequest) (models.PendingAction, error)
}

// PendingLister lists tracked actions.
type PendingLister interface {
	Pending() []models.PendingAction
	Len() int
}

var (
	_ Backend         = (*backend.Client)(nil)
	_ Scheduler       = (*syncpkg.Scheduler)(nil)
	_ ActionSubmitter = (*actions.Submitter)(nil)
	_ PendingLister   = (*actions.Tracker)(nil)
)

// Dependencies wires a Handler. Store is required; every other field may
// be nil, in which case the endpoints that need it answer 503.
type Dependencies struct {
	Store     *store.Store
	Client    Backend
	Scheduler Scheduler
	Diffs     DiffSource
	Submitter ActionSubmitter
	Pending   PendingLister
	Hub       *ws.Hub

	// AllowedOrigins is checked against the Origin header of WebSocket
	// upgrades. "*" allows any origin.
	AllowedOrigins []string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: response envelope and shared helpers
//   - handlers_health.go: health endpoint
//   - handlers_snapshot.go: read-only snapshot endpoints
//   - handlers_items.go: item PATCH
//   - handlers_actions.go: action submission, pending list, refresh
type Handler struct {
	store          *store.Store
	client         Backend
	scheduler      Scheduler
	diffs          DiffSource
	submitter      ActionSubmitter
	pending        PendingLister
	wsHub          *ws.Hub
	allowedOrigins []string
	startTime      time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		store:          deps.Store,
		client:         deps.Client,
		scheduler:      deps.Scheduler,
		diffs:          deps.Diffs,
		submitter:      deps.Submitter,
		pending:        deps.Pending,
		wsHub:          deps.Hub,
		allowedOrigins: deps.AllowedOrigins,
		startTime:      time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins. Requests
// without an Origin header come from non-browser collaborators and are
// accepted.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// WebSocket upgrades the connection and registers it with the hub.
// @Summary Live event stream
// @Description Upgrades to a WebSocket. The first message is a snapshot; bus events follow.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 503 {object} models.APIResponse
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
