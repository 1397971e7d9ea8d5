// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/alignak-watch/internal/actions"
	"github.com/tomtom215/alignak-watch/internal/api"
	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/config"
	"github.com/tomtom215/alignak-watch/internal/events"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	"github.com/tomtom215/alignak-watch/internal/supervisor"
	"github.com/tomtom215/alignak-watch/internal/supervisor/services"
	syncpkg "github.com/tomtom215/alignak-watch/internal/sync"
	"github.com/tomtom215/alignak-watch/internal/synthesis"
	ws "github.com/tomtom215/alignak-watch/internal/websocket"
)

// journalCompactInterval is how often the action journal reclaims space.
const journalCompactInterval = 10 * time.Minute

// app holds every long-lived component of the process.
type app struct {
	cfg         *config.Config
	credentials backend.Credentials

	client      *backend.Client
	store       *store.Store
	engine      *synthesis.Engine
	bus         *events.Bus
	journal     *actions.Journal
	tracker     *actions.Tracker
	scheduler   *syncpkg.Scheduler
	reconnector *syncpkg.Reconnector
	checker     *actions.Checker
	hub         *ws.Hub
	forwarder   *events.Forwarder
	server      *http.Server
}

// newApp builds the components. Nothing runs until register and Serve.
func newApp(cfg *config.Config) (*app, error) {
	username, password := cfg.Backend.Credentials()
	a := &app{
		cfg:         cfg,
		credentials: backend.Credentials{Username: username, Password: password},
		client: backend.NewClient(backend.Config{
			BaseURL:           cfg.Backend.URL,
			Timeout:           cfg.Backend.RequestTimeout,
			RequestsPerSecond: cfg.Backend.RequestsPerSecond,
			PageSize:          cfg.Backend.PageSize,
			PageWorkers:       cfg.Backend.PageWorkers,
		}),
		store:  store.New(),
		engine: synthesis.NewEngine(),
		bus:    newEventBus(cfg.Events),
		hub:    ws.NewHub(),
	}

	if cfg.Actions.JournalPath != "" {
		journal, err := actions.OpenJournal(cfg.Actions.JournalPath)
		if err != nil {
			_ = a.bus.Close()
			return nil, fmt.Errorf("open action journal: %w", err)
		}
		a.journal = journal
	}

	a.tracker = actions.NewTracker(a.client, actions.TrackerConfig{
		MaxAge:  cfg.Actions.MaxAge,
		Journal: a.journal,
	})
	if n, err := a.tracker.Restore(); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore pending actions")
	} else if n > 0 {
		logging.Info().Int("count", n).Msg("Restored pending actions from journal")
	}

	a.scheduler = syncpkg.NewScheduler(a.client, a.store, a.engine, a.bus, schedulerConfig(cfg.Poll))
	a.scheduler.OnDiff(logDiff)

	a.reconnector = syncpkg.NewReconnector(a.client, a.scheduler, a.bus, syncpkg.ReconnectorConfig{
		Credentials:        a.credentials,
		Interval:           cfg.Reconnect.Interval,
		BreakerMaxFailures: cfg.Reconnect.BreakerMaxFailures,
		BreakerTimeout:     cfg.Reconnect.BreakerTimeout,
	})
	a.checker = actions.NewChecker(a.tracker, a.client, a.bus, cfg.Actions.CheckInterval)
	a.forwarder = events.NewForwarder(a.bus, a.hub, events.AllTopics...)
	a.hub.SetSnapshotSource(a.snapshot)

	handler := api.NewHandler(api.Dependencies{
		Store:          a.store,
		Client:         a.client,
		Scheduler:      a.scheduler,
		Diffs:          a.engine,
		Submitter:      actions.NewSubmitter(a.client, a.store, a.tracker),
		Pending:        a.tracker,
		Hub:            a.hub,
		AllowedOrigins: cfg.Server.CORSOrigins,
	})
	router := api.NewRouter(handler, middlewareConfig(cfg.Server))

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

// register adds every service to its layer of the tree.
func (a *app) register(tree *supervisor.SupervisorTree) {
	tree.AddSyncService(services.NewSchedulerService(a.scheduler))
	tree.AddSyncService(a.reconnector)
	tree.AddSyncService(a.checker)
	if a.journal != nil {
		tree.AddSyncService(services.NewJournalCompactorService(a.journal, journalCompactInterval))
	}

	tree.AddMessagingService(services.NewWebSocketHubService(a.hub))
	tree.AddMessagingService(a.forwarder)

	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout))
}

// Close releases the bus and the journal after the tree has stopped.
func (a *app) Close() {
	if err := a.bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing action journal")
		}
	}
}

// liveState is the websocket snapshot: what a dashboard needs to draw its
// first frame.
type liveState struct {
	BackendConnected bool                        `json:"backend_connected"`
	Counts           models.SynthesisCount       `json:"counts"`
	Percentages      models.SynthesisPercentages `json:"percentages"`
	LastDiff         *models.DiffRecord          `json:"last_diff,omitempty"`
	PendingActions   int                         `json:"pending_actions"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (a *app) snapshot() interface{} {
	counts := a.store.SynthesisCounts()
	state := liveState{
		BackendConnected: a.client.Connected(),
		Counts:           counts,
		Percentages:      synthesis.Percentages(counts),
		PendingActions:   a.tracker.Len(),
		UpdatedAt:        a.store.Entry(models.ResourceLiveSynthesis).UpdatedAt,
	}
	if diff, _, ok := a.engine.Last(); ok {
		state.LastDiff = &diff
	}
	return state
}

// newEventBus creates the bus and attaches the NATS mirror when configured.
// A mirror that cannot be created is logged and skipped.
func newEventBus(cfg config.EventsConfig) *events.Bus {
	bus := events.NewBus(cfg.Buffer)
	if cfg.NATSURL == "" {
		return bus
	}

	pub, err := events.NewNATSMirror(cfg.NATSURL, bus.Logger())
	if err != nil {
		logging.Warn().Err(err).Str("url", cfg.NATSURL).Msg("NATS mirror disabled")
		return bus
	}
	bus.SetMirror(pub, cfg.NATSSubjectPrefix)
	logging.Info().Str("url", cfg.NATSURL).Str("prefix", cfg.NATSSubjectPrefix).Msg("Mirroring events to NATS")
	return bus
}

// schedulerConfig maps the poll section onto the scheduler.
func schedulerConfig(poll config.PollConfig) syncpkg.Config {
	intervals := make(map[models.ResourceType]time.Duration, len(models.AllResourceTypes))
	for _, rt := range models.AllResourceTypes {
		intervals[rt] = poll.Interval(rt)
	}
	return syncpkg.Config{
		Intervals:    intervals,
		FetchTimeout: poll.FetchTimeout,
		HistoryLimit: poll.HistoryLimit,
	}
}

// middlewareConfig maps the server section onto the API middleware.
func middlewareConfig(server config.ServerConfig) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = server.CORSOrigins
	mw.RateLimitRequests = server.RateLimitRequests
	mw.RateLimitWindow = server.RateLimitWindow
	return mw
}

func logDiff(diff models.DiffRecord) {
	if !diff.Changed {
		return
	}
	logging.Info().
		Int("hosts_down", diff.Hosts.Down).
		Int("hosts_unreachable", diff.Hosts.Unreachable).
		Int("services_critical", diff.Services.Critical).
		Int("services_warning", diff.Services.Warning).
		Msg("Live synthesis changed")
}
