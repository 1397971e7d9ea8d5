// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/alignak-watch/internal/config"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/supervisor"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ALIGNAK_USERNAME", "admin")
	t.Setenv("ALIGNAK_PASSWORD", "admin")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestSchedulerConfig(t *testing.T) {
	t.Parallel()

	poll := config.PollConfig{
		LiveSynthesis: 10 * time.Second,
		Host:          15 * time.Second,
		History:       time.Minute,
		FetchTimeout:  5 * time.Second,
		HistoryLimit:  25,
	}
	got := schedulerConfig(poll)

	if len(got.Intervals) != len(models.AllResourceTypes) {
		t.Errorf("intervals for %d types, want %d", len(got.Intervals), len(models.AllResourceTypes))
	}
	if got.Intervals[models.ResourceHost] != 15*time.Second {
		t.Errorf("host interval = %v, want 15s", got.Intervals[models.ResourceHost])
	}
	if got.Intervals[models.ResourceService] != 0 {
		t.Errorf("unset service interval = %v, want 0", got.Intervals[models.ResourceService])
	}
	if got.FetchTimeout != 5*time.Second || got.HistoryLimit != 25 {
		t.Errorf("config = %+v", got)
	}
}

func TestMiddlewareConfig(t *testing.T) {
	t.Parallel()

	got := middlewareConfig(config.ServerConfig{
		CORSOrigins:       []string{"http://dash.local"},
		RateLimitRequests: 42,
		RateLimitWindow:   30 * time.Second,
	})
	if len(got.CORSAllowedOrigins) != 1 || got.CORSAllowedOrigins[0] != "http://dash.local" {
		t.Errorf("CORSAllowedOrigins = %v", got.CORSAllowedOrigins)
	}
	if got.RateLimitRequests != 42 || got.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d per %v", got.RateLimitRequests, got.RateLimitWindow)
	}
	if len(got.CORSAllowedMethods) == 0 {
		t.Error("default CORS methods were dropped")
	}
}

func TestNewEventBus_WithoutNATS(t *testing.T) {
	t.Parallel()

	bus := newEventBus(config.EventsConfig{Buffer: 8})
	if bus == nil {
		t.Fatal("newEventBus returned nil")
	}
	if err := bus.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewApp(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Actions.JournalPath = filepath.Join(t.TempDir(), "journal")

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	if a.journal == nil {
		t.Fatal("journal not opened")
	}
	if a.server.Addr != cfg.Server.Addr() {
		t.Errorf("server addr = %q, want %q", a.server.Addr, cfg.Server.Addr())
	}
	if a.credentials.Username != "admin" {
		t.Errorf("credentials username = %q", a.credentials.Username)
	}

	tree, err := supervisor.NewSupervisorTree(slog.New(slog.NewTextHandler(io.Discard, nil)), supervisor.TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	a.register(tree)

	// The router answers before anything is served.
	w := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	a.server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Errorf("swagger doc status = %d, want 200", w.Code)
	}
}

func TestNewApp_BadJournalPath(t *testing.T) {
	cfg := loadTestConfig(t)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Actions.JournalPath = file

	if _, err := newApp(cfg); err == nil {
		t.Fatal("newApp succeeded with a journal path that is a file")
	}
}

func TestApp_Snapshot(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Actions.JournalPath = ""
	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	state, ok := a.snapshot().(liveState)
	if !ok {
		t.Fatalf("snapshot type = %T, want liveState", a.snapshot())
	}
	if state.BackendConnected {
		t.Error("backend should start disconnected")
	}
	if state.LastDiff != nil {
		t.Error("no diff before the first live-synthesis poll")
	}
	if state.PendingActions != 0 {
		t.Errorf("pending actions = %d, want 0", state.PendingActions)
	}

	a.engine.Compute(models.SynthesisCount{})
	state = a.snapshot().(liveState)
	if state.LastDiff == nil {
		t.Error("snapshot should carry the last diff once computed")
	}
}
