// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package actions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/models"
)

type postCall struct {
	endpoint string
	payload  map[string]interface{}
}

type fakePoster struct {
	mu    sync.Mutex
	calls []postCall
	href  string
	err   error
}

func (p *fakePoster) Post(_ context.Context, endpoint string, payload map[string]interface{}) (*backend.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, postCall{endpoint: endpoint, payload: payload})
	if p.err != nil {
		return nil, p.err
	}
	obj := map[string]interface{}{"_id": "new"}
	if p.href != "" {
		obj["_links"] = map[string]interface{}{"self": map[string]interface{}{"href": p.href}}
	}
	return &backend.Response{Object: obj}, nil
}

type fakeSnapshot struct {
	user  *models.Item
	items map[string]models.Item
}

func (s *fakeSnapshot) User() (models.Item, bool) {
	if s.user == nil {
		return models.Item{}, false
	}
	return *s.user, true
}

func (s *fakeSnapshot) Get(rt models.ResourceType, id string) (models.Item, bool) {
	item, ok := s.items[string(rt)+"/"+id]
	return item, ok
}

func newSnapshot() *fakeSnapshot {
	user := models.ItemFromMap(map[string]interface{}{"_id": "u1", "name": "admin"})
	return &fakeSnapshot{
		user: &user,
		items: map[string]models.Item{
			"host/h1":    models.ItemFromMap(map[string]interface{}{"_id": "h1", "name": "router"}),
			"service/s1": models.ItemFromMap(map[string]interface{}{"_id": "s1", "name": "http"}),
		},
	}
}

func TestSubmitterAcknowledge(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{href: "actionacknowledge/a1"}
	tr := NewTracker(newFakeFetcher(), TrackerConfig{})
	sub := NewSubmitter(poster, newSnapshot(), tr)

	a, err := sub.Acknowledge(context.Background(), AckRequest{HostID: "h1", ServiceID: "s1", Comment: "on it", Sticky: true})
	checkNoError(t, err)

	if a.Kind != models.ActionAcknowledge || a.Handle != "actionacknowledge/a1" || a.Name != "router/http" {
		t.Errorf("unexpected action %+v", a)
	}
	checkIntEqual(t, "pending", tr.Len(), 1)

	call := poster.calls[0]
	if call.endpoint != "actionacknowledge" {
		t.Errorf("endpoint: got %q", call.endpoint)
	}
	if call.payload["action"] != "add" || call.payload["user"] != "u1" || call.payload["service"] != "s1" || call.payload["sticky"] != true {
		t.Errorf("payload: %v", call.payload)
	}
}

func TestSubmitterDowntimeDefaults(t *testing.T) {
	t.Parallel()

	poster := &fakePoster{href: "actiondowntime/d1"}
	tr := NewTracker(newFakeFetcher(), TrackerConfig{})
	sub := NewSubmitter(poster, newSnapshot(), tr)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	sub.now = func() time.Time { return now }

	a, err := sub.Downtime(context.Background(), DowntimeRequest{HostID: "h1", Comment: "maintenance", Duration: 3600})
	checkNoError(t, err)
	if a.Name != "router" || a.OnService() {
		t.Errorf("unexpected action %+v", a)
	}

	p := poster.calls[0].payload
	if p["start_time"] != now.Unix() || p["end_time"] != now.Unix()+3600 || p["duration"] != int64(3600) {
		t.Errorf("downtime window: %v", p)
	}
	if p["service"] != nil {
		t.Errorf("host downtime must send a null service, got %v", p["service"])
	}

	_, err = sub.Downtime(context.Background(), DowntimeRequest{HostID: "h1", Comment: "x", StartTime: 200, EndTime: 100})
	if !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for inverted window, got %v", err)
	}
}

func TestSubmitterForceCheck(t *testing.T) {
	t.Parallel()

	tr := NewTracker(newFakeFetcher(), TrackerConfig{})

	sub := NewSubmitter(&fakePoster{href: "actionforcecheck/c1"}, newSnapshot(), tr)
	a, err := sub.ForceCheck(context.Background(), CheckRequest{HostID: "h1"})
	checkNoError(t, err)
	if a.Kind != models.ActionProcess || a.Handle != "actionforcecheck/c1" {
		t.Errorf("unexpected action %+v", a)
	}

	sub = NewSubmitter(&fakePoster{}, newSnapshot(), tr)
	if _, err := sub.ForceCheck(context.Background(), CheckRequest{HostID: "h1"}); !errors.Is(err, ErrNoHandle) {
		t.Errorf("expected ErrNoHandle, got %v", err)
	}
	checkIntEqual(t, "pending", tr.Len(), 1)
}

func TestSubmitterErrors(t *testing.T) {
	t.Parallel()

	tr := NewTracker(newFakeFetcher(), TrackerConfig{})

	noUser := NewSubmitter(&fakePoster{}, &fakeSnapshot{}, tr)
	if _, err := noUser.Acknowledge(context.Background(), AckRequest{HostID: "h1", Comment: "x"}); !errors.Is(err, ErrNoUser) {
		t.Errorf("expected ErrNoUser, got %v", err)
	}

	failing := NewSubmitter(&fakePoster{err: backend.ErrDisconnected}, newSnapshot(), tr)
	if _, err := failing.Acknowledge(context.Background(), AckRequest{HostID: "h1", Comment: "x"}); !errors.Is(err, backend.ErrDisconnected) {
		t.Errorf("expected ErrDisconnected, got %v", err)
	}
	checkIntEqual(t, "pending", tr.Len(), 0)
}
