// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/alignak-watch/internal/backend"
)

// Test assertion helpers with "check" prefix.
// Using t.Helper() ensures error messages point to the calling line.

// checkStringEqual checks that got equals want
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkNoError fails the test immediately on error
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkSkipped checks that err is an ErrSkipped
func checkSkipped(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrSkipped) {
		t.Errorf("expected ErrSkipped, got %v", err)
	}
}

// fetchCall records one Get.
type fetchCall struct {
	endpoint string
	query    backend.Query
	all      bool
}

// fakeFetcher serves canned documents per endpoint.
type fakeFetcher struct {
	connected atomic.Bool
	token     string

	mu    sync.Mutex
	docs  map[string][]map[string]interface{}
	errs  map[string]error
	calls []fetchCall

	// Calls to blockOn signal entered, then wait for release.
	blockOn string
	release chan struct{}
	entered chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	f := &fakeFetcher{
		token: "tok",
		docs:  make(map[string][]map[string]interface{}),
		errs:  make(map[string]error),
	}
	f.connected.Store(true)
	return f
}

// blockEndpoint makes Get calls to endpoint wait until release is closed.
func (f *fakeFetcher) blockEndpoint(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockOn = endpoint
	f.release = make(chan struct{})
	f.entered = make(chan struct{}, 1)
}

func (f *fakeFetcher) set(endpoint string, docs ...map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[endpoint] = docs
	delete(f.errs, endpoint)
}

func (f *fakeFetcher) fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[endpoint] = err
}

func (f *fakeFetcher) Get(ctx context.Context, endpoint string, q backend.Query, all bool) (*backend.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{endpoint: endpoint, query: q, all: all})
	blocked := f.blockOn != "" && f.blockOn == endpoint
	docs, err := f.docs[endpoint], f.errs[endpoint]
	f.mu.Unlock()

	if blocked {
		f.entered <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &backend.Response{Items: docs}, nil
}

func (f *fakeFetcher) Connected() bool { return f.connected.Load() }

func (f *fakeFetcher) Token() string { return f.token }

// callsTo returns the recorded calls to endpoint.
func (f *fakeFetcher) callsTo(endpoint string) []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fetchCall
	for _, c := range f.calls {
		if c.endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

// published is one recorded event.
type published struct {
	topic string
	data  interface{}
}

// recordingPublisher records published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, data: data})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}
