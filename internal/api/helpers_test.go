// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/alignak-watch/internal/actions"
	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
)

const (
	hostA = "5a0e4ef4b9f3b5a1a1000001"
	hostB = "5a0e4ef4b9f3b5a1a1000002"
	svcA  = "5a0e4ef4b9f3b5a1a2000001"
)

// ========================================
// Fakes
// ========================================

type fakeBackend struct {
	mu        sync.Mutex
	connected bool
	patchErr  error
	getErr    error
	object    map[string]interface{}
	patches   []patchCall
}

type patchCall struct {
	endpoint string
	etag     string
	payload  map[string]interface{}
}

func (f *fakeBackend) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBackend) GetItem(_ context.Context, _, _ string, _ []string) (*backend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &backend.Response{Object: f.object}, nil
}

func (f *fakeBackend) Patch(_ context.Context, endpoint, etag string, payload map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{endpoint: endpoint, etag: etag, payload: payload})
	if f.patchErr != nil {
		return false, f.patchErr
	}
	return true, nil
}

type fakeScheduler struct {
	err    error
	calls  int
	status map[models.ResourceType]syncpkg.TaskStatus
}

func (f *fakeScheduler) RefreshAll(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeScheduler) Status() map[models.ResourceType]syncpkg.TaskStatus {
	return f.status
}

type fakeDiffs struct {
	diff   models.DiffRecord
	counts models.SynthesisCount
	ok     bool
}

func (f *fakeDiffs) Last() (models.DiffRecord, models.SynthesisCount, bool) {
	return f.diff, f.counts, f.ok
}

type fakeSubmitter struct {
	err  error
	acks []actions.AckRequest
	dts  []actions.DowntimeRequest
	chks []actions.CheckRequest
}

func (f *fakeSubmitter) result(kind models.ActionKind, hostID string) (models.PendingAction, error) {
	if f.err != nil {
		return models.PendingAction{}, f.err
	}
	return models.PendingAction{Kind: kind, HostID: hostID, Handle: "actionacknowledge/1"}, nil
}

func (f *fakeSubmitter) Acknowledge(_ context.Context, req actions.AckRequest) (models.PendingAction, error) {
	f.acks = append(f.acks, req)
	return f.result(models.ActionAcknowledge, req.HostID)
}

func (f *fakeSubmitter) Downtime(_ context.Context, req actions.DowntimeRequest) (models.PendingAction, error) {
	f.dts = append(f.dts, req)
	return f.result(models.ActionDowntime, req.HostID)
}

func (f *fakeSubmitter) ForceCheck(_ context.Context, req actions.CheckRequest) (models.PendingAction, error) {
	f.chks = append(f.chks, req)
	return f.result(models.ActionProcess, req.HostID)
}

type fakePending struct {
	items []models.PendingAction
}

func (f *fakePending) Pending() []models.PendingAction { return f.items }
func (f *fakePending) Len() int                        { return len(f.items) }

// ========================================
// Setup
// ========================================

// testEnv bundles a router over fakes.
type testEnv struct {
	store     *store.Store
	backend   *fakeBackend
	scheduler *fakeScheduler
	diffs     *fakeDiffs
	submitter *fakeSubmitter
	pending   *fakePending
	router    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:     store.New(),
		backend:   &fakeBackend{connected: true},
		scheduler: &fakeScheduler{},
		diffs:     &fakeDiffs{},
		submitter: &fakeSubmitter{},
		pending:   &fakePending{},
	}
	handler := NewHandler(Dependencies{
		Store:     env.store,
		Client:    env.backend,
		Scheduler: env.scheduler,
		Diffs:     env.diffs,
		Submitter: env.submitter,
		Pending:   env.pending,
	})
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 0
	env.router = NewRouter(handler, cfg).SetupChi()
	return env
}

func item(doc map[string]interface{}) models.Item {
	return models.ItemFromMap(doc)
}

// seedHosts stores two hosts: hostA DOWN and unhandled, hostB UP.
func (env *testEnv) seedHosts() {
	env.store.Replace(models.ResourceHost, []models.Item{
		item(map[string]interface{}{"_id": hostA, "_etag": "etag-a", "name": "web-01", "ls_state": "DOWN"}),
		item(map[string]interface{}{"_id": hostB, "_etag": "etag-b", "name": "web-02", "ls_state": "UP"}),
	})
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// envelope is the decoded response envelope with Data kept raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return env
}

// ========================================
// Assertions
// ========================================

func checkStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func checkErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	checkStatus(t, w, status)
	env := decodeEnvelope(t, w)
	if env.Status != "error" {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil {
		t.Fatal("envelope error is nil")
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	if env.Status != "success" {
		t.Fatalf("envelope status = %q, want success (body %s)", env.Status, w.Body.String())
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return env
}
