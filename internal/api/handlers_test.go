// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/alignak-watch/internal/actions"
	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
)

// ========================================
// Health
// ========================================

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		connected  bool
		wantStatus string
	}{
		{"connected", true, "healthy"},
		{"disconnected", false, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env.backend.connected = tt.connected
			env.pending.items = []models.PendingAction{{ID: "a1"}, {ID: "a2"}}
			env.seedHosts()

			w := env.do(t, http.MethodGet, "/api/v1/health", "")
			checkStatus(t, w, http.StatusOK)

			var health HealthStatus
			decodeData(t, w, &health)
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if health.Connected != tt.connected {
				t.Errorf("connected = %v, want %v", health.Connected, tt.connected)
			}
			if health.PendingActions != 2 {
				t.Errorf("pending_actions = %d, want 2", health.PendingActions)
			}
			if _, ok := health.LastPolls[models.ResourceHost]; !ok {
				t.Error("last_polls is missing host")
			}
		})
	}
}

func TestHealth_NilClient(t *testing.T) {
	t.Parallel()
	handler := NewHandler(Dependencies{Store: store.New()})

	w := httptest.NewRecorder()
	handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	checkStatus(t, w, http.StatusOK)

	var health HealthStatus
	decodeData(t, w, &health)
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}
}

// ========================================
// Envelope
// ========================================

func TestEnvelope_Headers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/synthesis", "")
	checkStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("ETag header missing")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if env := decodeEnvelope(t, w); env.Metadata.Timestamp.IsZero() {
		t.Error("metadata timestamp is zero")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/nope", "")
	checkErrorCode(t, w, http.StatusNotFound, codeNotFound)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/metrics", "")
	checkStatus(t, w, http.StatusOK)
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte("hello"))
	if a != generateETag([]byte("hello")) {
		t.Error("etag is not deterministic")
	}
	if a == generateETag([]byte("hellp")) {
		t.Error("different data produced the same etag")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	got := sanitizeLogValue("host\nforged line")
	if strings.Contains(got, "\n") {
		t.Errorf("sanitizeLogValue kept a newline: %q", got)
	}
	if got != `host\x0aforged line` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}

// ========================================
// Snapshot reads
// ========================================

func TestSynthesis(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.Replace(models.ResourceLiveSynthesis, []models.Item{
		item(map[string]interface{}{
			"_id":              "ls1",
			"hosts_total":      4,
			"hosts_up_hard":    3,
			"hosts_down_hard":  1,
			"services_total":   10,
			"services_ok_hard": 10,
		}),
	})

	w := env.do(t, http.MethodGet, "/api/v1/synthesis", "")
	checkStatus(t, w, http.StatusOK)

	var view SynthesisView
	resp := decodeData(t, w, &view)
	if view.Counts.Hosts.Total != 4 || view.Counts.Hosts.Up != 3 || view.Counts.Hosts.Down != 1 {
		t.Errorf("host counts = %+v", view.Counts.Hosts)
	}
	if view.Percentages.Hosts["up"] != 75 {
		t.Errorf("hosts up percentage = %v, want 75", view.Percentages.Hosts["up"])
	}
	if resp.Metadata.Generation != 1 {
		t.Errorf("generation = %d, want 1", resp.Metadata.Generation)
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("before first computation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/v1/diff", "")
		checkErrorCode(t, w, http.StatusNotFound, codeNotFound)
	})

	t.Run("after computation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.diffs.ok = true
		env.diffs.diff = models.DiffRecord{Changed: true, ComputedAt: time.Now()}
		env.diffs.diff.Hosts.Down = 2

		w := env.do(t, http.MethodGet, "/api/v1/diff", "")
		checkStatus(t, w, http.StatusOK)

		var view DiffView
		resp := decodeData(t, w, &view)
		if !view.Diff.Changed || view.Diff.Hosts.Down != 2 {
			t.Errorf("diff = %+v", view.Diff)
		}
		if resp.Metadata.UpdatedAt == nil {
			t.Error("updated_at missing")
		}
	})
}

func TestItems(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantCount int
	}{
		{"all", "", []string{hostA, hostB}, 2},
		{"limit", "?limit=1", []string{hostA}, 2},
		{"offset", "?offset=1", []string{hostB}, 2},
		{"offset past end", "?offset=5", []string{}, 2},
		{"invalid limit ignored", "?limit=abc", []string{hostA, hostB}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := env.do(t, http.MethodGet, "/api/v1/items/host"+tt.query, "")
			checkStatus(t, w, http.StatusOK)

			var items []models.Item
			resp := decodeData(t, w, &items)
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
				}
			}
			if resp.Metadata.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", resp.Metadata.Count, tt.wantCount)
			}
		})
	}
}

func TestItems_UnknownResource(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/items/contact", "")
	checkErrorCode(t, w, http.StatusNotFound, codeNotFound)
}

func TestItem(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()

	w := env.do(t, http.MethodGet, "/api/v1/items/host/"+hostA, "")
	checkStatus(t, w, http.StatusOK)
	var got models.Item
	decodeData(t, w, &got)
	if got.Name != "web-01" {
		t.Errorf("name = %q, want web-01", got.Name)
	}

	w = env.do(t, http.MethodGet, "/api/v1/items/host/"+svcA, "")
	checkErrorCode(t, w, http.StatusNotFound, codeNotFound)
}

func TestProblems(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()
	env.store.Replace(models.ResourceService, []models.Item{
		item(map[string]interface{}{"_id": svcA, "name": "http", "host": hostA, "ls_state": "CRITICAL", "ls_acknowledged": true}),
	})

	w := env.do(t, http.MethodGet, "/api/v1/problems", "")
	checkStatus(t, w, http.StatusOK)

	var problems store.Problems
	resp := decodeData(t, w, &problems)
	if len(problems.Hosts) != 1 || problems.Hosts[0].ID != hostA {
		t.Errorf("host problems = %+v", problems.Hosts)
	}
	if len(problems.Services) != 0 {
		t.Errorf("acknowledged service listed as problem: %+v", problems.Services)
	}
	if resp.Metadata.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Metadata.Count)
	}
}

func TestDaemons(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.Replace(models.ResourceDaemon, []models.Item{
		item(map[string]interface{}{"_id": "d1", "name": "scheduler-master", "alive": true}),
		item(map[string]interface{}{"_id": "d2", "name": "poller-master", "alive": false}),
	})

	w := env.do(t, http.MethodGet, "/api/v1/daemons", "")
	checkStatus(t, w, http.StatusOK)

	var status store.DaemonsStatus
	decodeData(t, w, &status)
	if status.Alive != 1 || status.Total != 2 {
		t.Errorf("daemons = %+v", status)
	}
	if len(status.Dead) != 1 || status.Dead[0] != "poller-master" {
		t.Errorf("dead = %v", status.Dead)
	}
}

func TestHostHistory(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()
	env.store.Replace(models.ResourceHistory, []models.Item{
		item(map[string]interface{}{"_id": "h1", "host": hostA, "type": "check.result"}),
		item(map[string]interface{}{"_id": "h2", "host": hostB, "type": "check.result"}),
	})

	w := env.do(t, http.MethodGet, "/api/v1/hosts/"+hostA+"/history", "")
	checkStatus(t, w, http.StatusOK)
	var entries []models.Item
	decodeData(t, w, &entries)
	if len(entries) != 1 || entries[0].ID != "h1" {
		t.Errorf("history = %+v", entries)
	}

	w = env.do(t, http.MethodGet, "/api/v1/hosts/unknown/history", "")
	checkErrorCode(t, w, http.StatusNotFound, codeNotFound)
}

func TestNotifications(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.Replace(models.ResourceNotifications, []models.Item{
		item(map[string]interface{}{"_id": "n1", "message": "admin;web-01;DOWN"}),
	})

	w := env.do(t, http.MethodGet, "/api/v1/notifications", "")
	checkStatus(t, w, http.StatusOK)
	var items []models.Item
	resp := decodeData(t, w, &items)
	if len(items) != 1 || resp.Metadata.Count != 1 {
		t.Errorf("notifications = %+v, count %d", items, resp.Metadata.Count)
	}
}

// ========================================
// PATCH
// ========================================

func TestPatchItem(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()
	env.backend.object = map[string]interface{}{"_id": hostA, "_etag": "etag-a2", "name": "web-01", "notes": "rebooted"}

	w := env.do(t, http.MethodPatch, "/api/v1/items/host/"+hostA, `{"fields":{"notes":"rebooted"}}`)
	checkStatus(t, w, http.StatusOK)

	var result PatchResult
	decodeData(t, w, &result)
	if !result.Refreshed {
		t.Error("refreshed = false, want true")
	}
	if result.Item.Etag() != "etag-a2" {
		t.Errorf("etag = %q, want etag-a2", result.Item.Etag())
	}

	if len(env.backend.patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(env.backend.patches))
	}
	call := env.backend.patches[0]
	if call.endpoint != "host/"+hostA || call.etag != "etag-a" {
		t.Errorf("patch call = %+v", call)
	}

	stored, _ := env.store.Get(models.ResourceHost, hostA)
	if stored.String("notes") != "rebooted" {
		t.Errorf("store not updated: %+v", stored.Data)
	}
}

func TestPatchItem_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		patchErr   error
		wantStatus int
		wantCode   string
	}{
		{"etag mismatch", "/api/v1/items/host/" + hostA, `{"fields":{"notes":"x"}}`, backend.ErrEtagMismatch, http.StatusConflict, codeConflict},
		{"disconnected", "/api/v1/items/host/" + hostA, `{"fields":{"notes":"x"}}`, backend.ErrDisconnected, http.StatusServiceUnavailable, codeUnavailable},
		{"unexpected", "/api/v1/items/host/" + hostA, `{"fields":{"notes":"x"}}`, errors.New("boom"), http.StatusInternalServerError, codeInternal},
		{"missing item", "/api/v1/items/host/" + svcA, `{"fields":{"notes":"x"}}`, nil, http.StatusNotFound, codeNotFound},
		{"read-only resource", "/api/v1/items/livesynthesis/ls1", `{"fields":{"notes":"x"}}`, nil, http.StatusBadRequest, codeValidation},
		{"empty fields", "/api/v1/items/host/" + hostA, `{"fields":{}}`, nil, http.StatusBadRequest, codeValidation},
		{"reserved field", "/api/v1/items/host/" + hostA, `{"fields":{"_etag":"x"}}`, nil, http.StatusBadRequest, codeValidation},
		{"invalid json", "/api/v1/items/host/" + hostA, `{"fields":`, nil, http.StatusBadRequest, codeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env.seedHosts()
			env.backend.patchErr = tt.patchErr

			w := env.do(t, http.MethodPatch, tt.path, tt.body)
			checkErrorCode(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestPatchItem_RefreshFails(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()
	env.backend.getErr = backend.ErrDisconnected

	w := env.do(t, http.MethodPatch, "/api/v1/items/host/"+hostA, `{"fields":{"notes":"x"}}`)
	checkStatus(t, w, http.StatusOK)

	var result PatchResult
	decodeData(t, w, &result)
	if result.Refreshed {
		t.Error("refreshed = true, want false")
	}
	if result.Item.Etag() != "etag-a" {
		t.Errorf("etag = %q, want the pre-update etag-a", result.Item.Etag())
	}
}

func TestPatchItem_BodyTooLarge(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedHosts()

	body := fmt.Sprintf(`{"fields":{"notes":%q}}`, strings.Repeat("x", maxBodyBytes))
	w := env.do(t, http.MethodPatch, "/api/v1/items/host/"+hostA, body)
	checkErrorCode(t, w, http.StatusRequestEntityTooLarge, codeValidation)
}

func TestReservedFields(t *testing.T) {
	t.Parallel()

	got := reservedFields(map[string]interface{}{"_id": 1, "notes": 2, "_etag": 3})
	if len(got) != 2 || got[0] != "_etag" || got[1] != "_id" {
		t.Errorf("reservedFields = %v", got)
	}
	if got := reservedFields(map[string]interface{}{"notes": 1}); len(got) != 0 {
		t.Errorf("reservedFields = %v, want none", got)
	}
}

// ========================================
// Actions
// ========================================

func TestActions_Accepted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		body string
		kind models.ActionKind
	}{
		{"acknowledge", "/api/v1/actions/acknowledge", `{"host_id":"` + hostA + `","comment":"on it","sticky":true}`, models.ActionAcknowledge},
		{"downtime", "/api/v1/actions/downtime", `{"host_id":"` + hostA + `","service_id":"` + svcA + `","comment":"maintenance","fixed":true,"start_time":100,"end_time":200}`, models.ActionDowntime},
		{"check", "/api/v1/actions/check", `{"host_id":"` + hostA + `"}`, models.ActionProcess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			w := env.do(t, http.MethodPost, tt.path, tt.body)
			checkStatus(t, w, http.StatusAccepted)

			var action models.PendingAction
			decodeData(t, w, &action)
			if action.Kind != tt.kind || action.HostID != hostA {
				t.Errorf("action = %+v", action)
			}
		})
	}
}

func TestActions_ForwardsRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := `{"host_id":"` + hostA + `","service_id":"` + svcA + `","comment":"looking","sticky":true,"notify":true}`
	w := env.do(t, http.MethodPost, "/api/v1/actions/acknowledge", body)
	checkStatus(t, w, http.StatusAccepted)

	if len(env.submitter.acks) != 1 {
		t.Fatalf("acks = %d, want 1", len(env.submitter.acks))
	}
	want := actions.AckRequest{HostID: hostA, ServiceID: svcA, Comment: "looking", Sticky: true, Notify: true}
	if env.submitter.acks[0] != want {
		t.Errorf("ack request = %+v, want %+v", env.submitter.acks[0], want)
	}
}

func TestActions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		submitErr  error
		wantStatus int
		wantCode   string
	}{
		{"missing host", "/api/v1/actions/acknowledge", `{"comment":"x"}`, nil, http.StatusBadRequest, codeValidation},
		{"malformed host id", "/api/v1/actions/check", `{"host_id":"web-01"}`, nil, http.StatusBadRequest, codeValidation},
		{"missing comment", "/api/v1/actions/downtime", `{"host_id":"` + hostA + `"}`, nil, http.StatusBadRequest, codeValidation},
		{"no user yet", "/api/v1/actions/check", `{"host_id":"` + hostA + `"}`, actions.ErrNoUser, http.StatusServiceUnavailable, codeUnavailable},
		{"invalid window", "/api/v1/actions/downtime", `{"host_id":"` + hostA + `","comment":"x"}`, fmt.Errorf("%w: downtime ends before it starts", actions.ErrInvalidAction), http.StatusBadRequest, codeValidation},
		{"backend down", "/api/v1/actions/acknowledge", `{"host_id":"` + hostA + `","comment":"x"}`, fmt.Errorf("post actionacknowledge: %w", backend.ErrDisconnected), http.StatusServiceUnavailable, codeUnavailable},
		{"no handle", "/api/v1/actions/acknowledge", `{"host_id":"` + hostA + `","comment":"x"}`, actions.ErrNoHandle, http.StatusInternalServerError, codeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env.submitter.err = tt.submitErr

			w := env.do(t, http.MethodPost, tt.path, tt.body)
			checkErrorCode(t, w, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestActions_ValidationDetails(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/actions/check", `{"host_id":"nope"}`)
	checkStatus(t, w, http.StatusBadRequest)

	resp := decodeEnvelope(t, w)
	if resp.Error == nil || resp.Error.Details == nil {
		t.Fatalf("error details missing: %s", w.Body.String())
	}
}

func TestActions_NoSubmitter(t *testing.T) {
	t.Parallel()
	handler := NewHandler(Dependencies{Store: store.New()})
	router := NewRouter(handler, &ChiMiddlewareConfig{}).SetupChi()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/check", strings.NewReader(`{"host_id":"`+hostA+`"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	checkErrorCode(t, w, http.StatusServiceUnavailable, codeUnavailable)
}

func TestPendingActions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.pending.items = []models.PendingAction{
		{ID: "a1", Kind: models.ActionAcknowledge, HostID: hostA},
	}

	w := env.do(t, http.MethodGet, "/api/v1/actions/pending", "")
	checkStatus(t, w, http.StatusOK)

	var pending []models.PendingAction
	resp := decodeData(t, w, &pending)
	if len(pending) != 1 || pending[0].ID != "a1" || resp.Metadata.Count != 1 {
		t.Errorf("pending = %+v", pending)
	}
}

func TestPendingActions_EmptyIsArray(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/actions/pending", "")
	checkStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want an empty array", w.Body.String())
	}
}

// ========================================
// Refresh
// ========================================

func TestRefresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"skipped", syncpkg.ErrSkipped, http.StatusServiceUnavailable},
		{"partial failure", errors.New("host: timeout"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env.scheduler.err = tt.err
			env.scheduler.status = map[models.ResourceType]syncpkg.TaskStatus{
				models.ResourceHost: {Items: 2},
			}

			w := env.do(t, http.MethodPost, "/api/v1/refresh", "")
			checkStatus(t, w, tt.wantStatus)
			if env.scheduler.calls != 1 {
				t.Errorf("RefreshAll calls = %d, want 1", env.scheduler.calls)
			}
		})
	}
}

// ========================================
// Rate limiting
// ========================================

func TestRateLimit(t *testing.T) {
	t.Parallel()
	handler := NewHandler(Dependencies{Store: store.New()})
	router := NewRouter(handler, &ChiMiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	}).SetupChi()

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/synthesis", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}
	checkErrorCode(t, last, http.StatusTooManyRequests, "RATE_LIMITED")
}

func TestRateLimitCustom_Disabled(t *testing.T) {
	t.Parallel()
	m := NewChiMiddleware(&ChiMiddlewareConfig{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		m.RateLimitCustom(RateLimitRefresh)(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
}
