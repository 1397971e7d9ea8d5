// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/events"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
	"github.com/tomtom215/alignak-watch/internal/synthesis"
)

// ErrSkipped is returned by Poll when a cycle was not run.
var ErrSkipped = errors.New("poll skipped")

// Fetcher is the backend surface the scheduler needs.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, q backend.Query, all bool) (*backend.Response, error)
	Connected() bool
	Token() string
}

var _ Fetcher = (*backend.Client)(nil)

// Publisher publishes scheduler events.
type Publisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
}

// Config configures a Scheduler.
type Config struct {
	// Intervals holds the poll period of every resource type. Types with no
	// interval are only refreshed by RefreshAll.
	Intervals map[models.ResourceType]time.Duration
	// FetchTimeout bounds each poll cycle.
	FetchTimeout time.Duration
	// HistoryLimit caps history and notification reads.
	HistoryLimit int
}

// TaskStatus is the outcome of the latest cycles of one resource type.
type TaskStatus struct {
	LastSuccess  time.Time     `json:"last_success,omitempty"`
	LastAttempt  time.Time     `json:"last_attempt,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	Items        int           `json:"items"`
}

// Scheduler runs one poll loop per resource type and writes results into
// the store.
type Scheduler struct {
	client Fetcher
	store  *store.Store
	engine *synthesis.Engine
	pub    Publisher
	cfg    Config

	inFlight map[models.ResourceType]*atomic.Bool

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	onDiff  []func(models.DiffRecord)
	status  map[models.ResourceType]TaskStatus
	wg      sync.WaitGroup

	now func() time.Time
}

// NewScheduler creates a scheduler. pub may be nil.
func NewScheduler(client Fetcher, st *store.Store, engine *synthesis.Engine, pub Publisher, cfg Config) *Scheduler {
	inFlight := make(map[models.ResourceType]*atomic.Bool, len(models.AllResourceTypes))
	for _, rt := range models.AllResourceTypes {
		inFlight[rt] = &atomic.Bool{}
	}
	return &Scheduler{
		client:   client,
		store:    st,
		engine:   engine,
		pub:      pub,
		cfg:      cfg,
		inFlight: inFlight,
		status:   make(map[models.ResourceType]TaskStatus, len(models.AllResourceTypes)),
		now:      time.Now,
	}
}

// OnDiff registers a callback invoked after each live-synthesis diff.
func (s *Scheduler) OnDiff(fn func(models.DiffRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDiff = append(s.onDiff, fn)
}

// Start launches an initial RefreshAll and the poll loops. It returns
// immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("poll scheduler is already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.mu.Unlock()

	logging.Info().Int("resources", len(s.cfg.Intervals)).Msg("Starting poll scheduler...")

	// Add all goroutines to the WaitGroup before starting them so Stop
	// never waits on a partial set.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.RefreshAll(ctx); err != nil {
			logging.Warn().Err(err).Msg("Initial refresh incomplete (will retry on schedule)")
		}
	}()

	for _, rt := range models.AllResourceTypes {
		interval := s.cfg.Intervals[rt]
		if interval <= 0 {
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, rt, interval)
	}
	return nil
}

// Stop cancels the poll loops and waits for running cycles to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("poll scheduler is not running")
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	logging.Info().Msg("Stopping poll scheduler...")
	cancel()
	s.wg.Wait()
	logging.Info().Msg("Poll scheduler stopped")
	return nil
}

func (s *Scheduler) loop(ctx context.Context, rt models.ResourceType, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Poll logs its own failures.
			_ = s.Poll(ctx, rt)
		}
	}
}

// RefreshAll polls every resource type once. Independent types run
// concurrently; history and notifications run after the hosts and user
// they depend on. Skipped cycles are not errors.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	if !s.client.Connected() {
		return fmt.Errorf("refresh: %w: backend disconnected", ErrSkipped)
	}

	var errs []error
	var mu sync.Mutex
	collect := func(err error) {
		if err != nil && !errors.Is(err, ErrSkipped) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, rt := range models.AllResourceTypes {
		if rt == models.ResourceHistory || rt == models.ResourceNotifications {
			continue
		}
		g.Go(func() error {
			collect(s.Poll(gctx, rt))
			return nil
		})
	}
	_ = g.Wait()

	g, gctx = errgroup.WithContext(ctx)
	for _, rt := range []models.ResourceType{models.ResourceHistory, models.ResourceNotifications} {
		g.Go(func() error {
			collect(s.Poll(gctx, rt))
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Poll runs one cycle for rt. A cycle never overlaps another cycle of the
// same type; an overlapping call returns ErrSkipped.
func (s *Scheduler) Poll(ctx context.Context, rt models.ResourceType) error {
	busy, ok := s.inFlight[rt]
	if !ok {
		return fmt.Errorf("unknown resource type %q", rt)
	}
	if !busy.CompareAndSwap(false, true) {
		metrics.RecordPollSkipped(rt.String(), "busy")
		return fmt.Errorf("%s: %w: previous cycle still running", rt, ErrSkipped)
	}
	defer busy.Store(false)

	if !s.client.Connected() {
		metrics.RecordPollSkipped(rt.String(), "disconnected")
		return fmt.Errorf("%s: %w: backend disconnected", rt, ErrSkipped)
	}

	req := s.buildRequest(rt)
	if req.skip != "" {
		metrics.RecordPollSkipped(rt.String(), req.skip)
		return fmt.Errorf("%s: %w: %s", rt, ErrSkipped, req.skip)
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}
	log := logging.Ctx(ctx).With().Str("resource", rt.String()).Logger()

	start := s.now()
	resp, err := s.client.Get(ctx, rt.Endpoint(), req.query, req.all)
	duration := s.now().Sub(start)

	if err != nil {
		metrics.RecordPoll(rt.String(), duration, 0, err)
		s.recordStatus(rt, start, duration, 0, err)
		log.Warn().Err(err).Dur("duration", duration).Msg("Poll failed")
		return fmt.Errorf("poll %s: %w", rt, err)
	}

	items := resp.Models()
	gen := s.store.Replace(rt, items)
	metrics.RecordPoll(rt.String(), duration, len(items), nil)
	s.recordStatus(rt, start, duration, len(items), nil)
	log.Debug().Int("items", len(items)).Uint64("generation", gen).Dur("duration", duration).Msg("Poll complete")

	if rt == models.ResourceLiveSynthesis {
		s.computeDiff(ctx)
	}
	return nil
}

func (s *Scheduler) computeDiff(ctx context.Context) {
	diff := s.engine.Compute(s.store.SynthesisCounts())

	if s.pub != nil {
		if err := s.pub.Publish(ctx, events.TopicSynthesisDiff, diff); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish synthesis diff")
		}
	}

	s.mu.RLock()
	callbacks := append([]func(models.DiffRecord){}, s.onDiff...)
	s.mu.RUnlock()
	for _, fn := range callbacks {
		fn(diff)
	}
}

func (s *Scheduler) recordStatus(rt models.ResourceType, start time.Time, d time.Duration, items int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status[rt]
	st.LastAttempt = start
	st.LastDuration = d
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastSuccess = start
		st.LastError = ""
		st.Items = items
	}
	s.status[rt] = st
}

// Status returns the latest cycle outcome of every resource type polled
// at least once.
func (s *Scheduler) Status() map[models.ResourceType]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[models.ResourceType]TaskStatus, len(s.status))
	for rt, st := range s.status {
		out[rt] = st
	}
	return out
}
