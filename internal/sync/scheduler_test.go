// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/alignak-watch/internal/events"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	"github.com/tomtom215/alignak-watch/internal/synthesis"
)

// ========================================
// Poll
// ========================================

func TestPollReplacesStore(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("host",
		map[string]interface{}{"_id": "h1", "name": "web", "ls_state": "UP"},
		map[string]interface{}{"_id": "h2", "name": "db", "ls_state": "DOWN"},
	)
	s, st := newTestScheduler(f, nil)

	checkNoError(t, s.Poll(context.Background(), models.ResourceHost))

	checkIntEqual(t, "hosts", st.Len(models.ResourceHost), 2)
	item, ok := st.Get(models.ResourceHost, "h2")
	if !ok {
		t.Fatal("expected h2 in store")
	}
	checkStringEqual(t, "state", item.String(models.FieldState), "DOWN")

	calls := f.callsTo("host")
	checkIntEqual(t, "calls", len(calls), 1)
	if !calls[0].all {
		t.Error("expected host poll to read every page")
	}

	status := s.Status()[models.ResourceHost]
	checkIntEqual(t, "status items", status.Items, 2)
	checkStringEqual(t, "status error", status.LastError, "")
}

func TestPollFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("service", map[string]interface{}{"_id": "s1"})
	s, st := newTestScheduler(f, nil)
	checkNoError(t, s.Poll(context.Background(), models.ResourceService))

	f.fail("service", errors.New("boom"))
	if err := s.Poll(context.Background(), models.ResourceService); err == nil {
		t.Fatal("expected error")
	}

	checkIntEqual(t, "services", st.Len(models.ResourceService), 1)
	if _, ok := st.Get(models.ResourceService, "s1"); !ok {
		t.Error("previous snapshot should survive a failed poll")
	}
	if s.Status()[models.ResourceService].LastError == "" {
		t.Error("expected status to record the error")
	}
}

func TestPollSkipsWhenDisconnected(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.connected.Store(false)
	s, _ := newTestScheduler(f, nil)

	checkSkipped(t, s.Poll(context.Background(), models.ResourceHost))
	checkIntEqual(t, "calls", len(f.callsTo("host")), 0)
}

func TestPollSkipsUnbuildableRequest(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	s, _ := newTestScheduler(f, nil)

	checkSkipped(t, s.Poll(context.Background(), models.ResourceHistory))
	checkIntEqual(t, "calls", len(f.callsTo("history")), 0)
}

func TestPollUnknownType(t *testing.T) {
	t.Parallel()
	s, _ := newTestScheduler(newFakeFetcher(), nil)

	err := s.Poll(context.Background(), models.ResourceType("bogus"))
	if err == nil || errors.Is(err, ErrSkipped) {
		t.Errorf("expected unknown type error, got %v", err)
	}
}

func TestPollNeverOverlaps(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("host", map[string]interface{}{"_id": "h1"})
	f.blockEndpoint("host")
	s, st := newTestScheduler(f, nil)

	done := make(chan error, 1)
	go func() { done <- s.Poll(context.Background(), models.ResourceHost) }()

	select {
	case <-f.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first poll never reached the backend")
	}

	// A second cycle while the first is in flight is dropped.
	checkSkipped(t, s.Poll(context.Background(), models.ResourceHost))

	// Other resource types are independent.
	checkNoError(t, s.Poll(context.Background(), models.ResourceRealm))

	close(f.release)
	select {
	case err := <-done:
		checkNoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first poll did not finish")
	}
	checkIntEqual(t, "hosts", st.Len(models.ResourceHost), 1)
	checkIntEqual(t, "host calls", len(f.callsTo("host")), 1)

	// The guard is released once the cycle ends.
	f.mu.Lock()
	f.blockOn = ""
	f.mu.Unlock()
	checkNoError(t, s.Poll(context.Background(), models.ResourceHost))
}

func TestPollHonorsFetchTimeout(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.blockEndpoint("alignakdaemon")
	st := store.New()
	s := NewScheduler(f, st, synthesis.NewEngine(), nil, Config{FetchTimeout: 50 * time.Millisecond})

	err := s.Poll(context.Background(), models.ResourceDaemon)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	checkIntEqual(t, "daemons", st.Len(models.ResourceDaemon), 0)
}

// ========================================
// Live synthesis diff
// ========================================

func synthesisDoc(id string, up, down int) map[string]interface{} {
	return map[string]interface{}{
		"_id":             id,
		"hosts_total":     up + down,
		"hosts_up_hard":   up,
		"hosts_down_soft": down,
	}
}

func TestLiveSynthesisPublishesDiff(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	pub := &recordingPublisher{}
	s, _ := newTestScheduler(f, pub)

	var mu sync.Mutex
	var diffs []models.DiffRecord
	s.OnDiff(func(d models.DiffRecord) {
		mu.Lock()
		diffs = append(diffs, d)
		mu.Unlock()
	})

	f.set("livesynthesis", synthesisDoc("r1", 3, 1), synthesisDoc("r2", 2, 0))
	checkNoError(t, s.Poll(context.Background(), models.ResourceLiveSynthesis))

	f.set("livesynthesis", synthesisDoc("r1", 2, 2), synthesisDoc("r2", 2, 0))
	checkNoError(t, s.Poll(context.Background(), models.ResourceLiveSynthesis))

	mu.Lock()
	defer mu.Unlock()
	checkIntEqual(t, "diffs", len(diffs), 2)

	if !diffs[0].First || diffs[0].Changed {
		t.Errorf("first diff: expected First and unchanged, got %+v", diffs[0])
	}
	checkIntEqual(t, "first up", diffs[0].Hosts.Up, 0)

	if !diffs[1].Changed {
		t.Error("second diff should be changed")
	}
	checkIntEqual(t, "up delta", diffs[1].Hosts.Up, -1)
	checkIntEqual(t, "down delta", diffs[1].Hosts.Down, 1)
	checkIntEqual(t, "total delta", diffs[1].Hosts.Total, 0)

	topics := pub.topics()
	checkIntEqual(t, "events", len(topics), 2)
	for _, topic := range topics {
		checkStringEqual(t, "topic", topic, events.TopicSynthesisDiff)
	}
}

func TestOtherTypesDoNotDiff(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("host", map[string]interface{}{"_id": "h1"})
	pub := &recordingPublisher{}
	s, _ := newTestScheduler(f, pub)

	checkNoError(t, s.Poll(context.Background(), models.ResourceHost))
	checkIntEqual(t, "events", len(pub.topics()), 0)
}

// ========================================
// RefreshAll
// ========================================

func TestRefreshAllResolvesDependencies(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("host", map[string]interface{}{"_id": "h1"}, map[string]interface{}{"_id": "h2"})
	f.set("user", map[string]interface{}{"_id": "u1", "name": "admin"})
	f.set("history", map[string]interface{}{"_id": "e1", "host": "h1"})
	s, st := newTestScheduler(f, nil)

	checkNoError(t, s.RefreshAll(context.Background()))

	for _, rt := range models.AllResourceTypes {
		if _, ok := s.Status()[rt]; !ok {
			t.Errorf("%s was not polled", rt)
		}
	}

	// history and notifications both read the history endpoint, after
	// hosts and user were stored.
	calls := f.callsTo("history")
	checkIntEqual(t, "history calls", len(calls), 2)
	var sawHosts, sawUser bool
	for _, c := range calls {
		if _, ok := c.query.Where["host"]; ok {
			sawHosts = true
		}
		if c.query.Where["type"] == notificationType {
			sawUser = true
		}
	}
	if !sawHosts || !sawUser {
		t.Errorf("dependent requests not built: hosts=%v user=%v", sawHosts, sawUser)
	}
	checkIntEqual(t, "history items", st.Len(models.ResourceHistory), 1)
}

func TestRefreshAllReportsFailures(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.fail("realm", errors.New("realm down"))
	s, _ := newTestScheduler(f, nil)

	err := s.RefreshAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrSkipped) {
		t.Errorf("skips should not be reported: %v", err)
	}
}

func TestRefreshAllDisconnected(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.connected.Store(false)
	s, _ := newTestScheduler(f, nil)

	checkSkipped(t, s.RefreshAll(context.Background()))
}

// ========================================
// Start / Stop
// ========================================

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()

	f := newFakeFetcher()
	f.set("livesynthesis", synthesisDoc("r1", 1, 0))
	st := store.New()
	s := NewScheduler(f, st, synthesis.NewEngine(), nil, Config{
		Intervals: map[models.ResourceType]time.Duration{
			models.ResourceLiveSynthesis: 10 * time.Millisecond,
		},
	})

	checkNoError(t, s.Start(context.Background()))
	if err := s.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(f.callsTo("livesynthesis")) < 3 {
		if time.Now().After(deadline) {
			t.Fatal("poll loop did not tick")
		}
		time.Sleep(5 * time.Millisecond)
	}

	checkNoError(t, s.Stop())
	if err := s.Stop(); err == nil {
		t.Error("second Stop should fail")
	}

	after := len(f.callsTo("livesynthesis"))
	time.Sleep(50 * time.Millisecond)
	checkIntEqual(t, "calls after stop", len(f.callsTo("livesynthesis")), after)
	checkIntEqual(t, "synthesis items", st.Len(models.ResourceLiveSynthesis), 1)
}
