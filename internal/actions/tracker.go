// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Bucket groups pending actions by kind and target.
type Bucket string

const (
	BucketAckHost         Bucket = "acknowledge.host"
	BucketAckService      Bucket = "acknowledge.service"
	BucketDowntimeHost    Bucket = "downtime.host"
	BucketDowntimeService Bucket = "downtime.service"
	BucketProcess         Bucket = "process"
)

var allBuckets = []Bucket{
	BucketAckHost,
	BucketAckService,
	BucketDowntimeHost,
	BucketDowntimeService,
	BucketProcess,
}

// ErrInvalidAction is returned by Add for actions that cannot be confirmed.
var ErrInvalidAction = errors.New("invalid pending action")

// confirmProjection is the projection of a host or service confirmation read.
var confirmProjection = []string{models.FieldAcknowledged, models.FieldDowntimed}

// Fetcher reads the backend state that confirms an action.
type Fetcher interface {
	GetItem(ctx context.Context, endpoint, id string, projection []string) (*backend.Response, error)
	GetHref(ctx context.Context, href string) (*backend.Response, error)
}

var _ Fetcher = (*backend.Client)(nil)

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	// MaxAge expires actions still pending after this long. Zero keeps them
	// until confirmed.
	MaxAge time.Duration
	// Journal persists pending actions across restarts. Optional.
	Journal *Journal
}

// Tracker holds user actions until the backend confirms them.
type Tracker struct {
	mu      sync.Mutex
	buckets map[Bucket][]models.PendingAction

	client  Fetcher
	journal *Journal
	maxAge  time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewTracker creates an empty tracker.
func NewTracker(client Fetcher, cfg TrackerConfig) *Tracker {
	return &Tracker{
		buckets: make(map[Bucket][]models.PendingAction, len(allBuckets)),
		client:  client,
		journal: cfg.Journal,
		maxAge:  cfg.MaxAge,
		now:     time.Now,
		log:     logging.WithComponent("actions"),
	}
}

// BucketFor returns the bucket an action belongs to.
func BucketFor(a models.PendingAction) (Bucket, error) {
	switch a.Kind {
	case models.ActionAcknowledge:
		if a.OnService() {
			return BucketAckService, nil
		}
		return BucketAckHost, nil
	case models.ActionDowntime:
		if a.OnService() {
			return BucketDowntimeService, nil
		}
		return BucketDowntimeHost, nil
	case models.ActionProcess:
		return BucketProcess, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
	}
}

func validate(a models.PendingAction) error {
	if a.Kind == models.ActionProcess {
		if a.Handle == "" {
			return fmt.Errorf("%w: process action without handle", ErrInvalidAction)
		}
		return nil
	}
	if a.HostID == "" && a.ServiceID == "" {
		return fmt.Errorf("%w: %s action without target", ErrInvalidAction, a.Kind)
	}
	return nil
}

// Add starts tracking an action. Missing ids and submission times are
// filled in; the stored action is returned.
func (t *Tracker) Add(a models.PendingAction) (models.PendingAction, error) {
	b, err := BucketFor(a)
	if err != nil {
		return a, err
	}
	if err := validate(a); err != nil {
		return a, err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = t.now()
	}

	t.mu.Lock()
	t.buckets[b] = append(t.buckets[b], a)
	n := t.lenLocked()
	t.mu.Unlock()

	metrics.ActionsPending.Set(float64(n))

	if t.journal != nil {
		if err := t.journal.Save(a); err != nil {
			t.log.Warn().Err(err).Str("action_id", a.ID).Msg("Failed to journal pending action")
		}
	}

	t.log.Debug().
		Str("action_id", a.ID).
		Str("bucket", string(b)).
		Str("name", a.Name).
		Msg("Tracking pending action")
	return a, nil
}

// Restore reloads journaled actions. It is meant to run once at startup,
// before the checker.
func (t *Tracker) Restore() (int, error) {
	if t.journal == nil {
		return 0, nil
	}
	pending, err := t.journal.Load()
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	for _, a := range pending {
		b, err := BucketFor(a)
		if err != nil {
			continue
		}
		t.buckets[b] = append(t.buckets[b], a)
	}
	n := t.lenLocked()
	t.mu.Unlock()

	metrics.ActionsPending.Set(float64(n))
	return len(pending), nil
}

// Pending returns every pending action, oldest first.
func (t *Tracker) Pending() []models.PendingAction {
	t.mu.Lock()
	out := make([]models.PendingAction, 0, t.lenLocked())
	for _, b := range allBuckets {
		out = append(out, t.buckets[b]...)
	}
	t.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out
}

// Len returns the number of pending actions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lenLocked()
}

func (t *Tracker) lenLocked() int {
	n := 0
	for _, list := range t.buckets {
		n += len(list)
	}
	return n
}

// Check asks the backend about every pending action. Confirmed actions are
// removed and returned once as completed; with MaxAge set, actions that
// outlived it are removed and returned once as expired. A fetch error
// leaves the action pending.
func (t *Tracker) Check(ctx context.Context) []models.Outcome {
	type entry struct {
		bucket Bucket
		action models.PendingAction
	}

	t.mu.Lock()
	var work []entry
	for _, b := range allBuckets {
		for _, a := range t.buckets[b] {
			work = append(work, entry{bucket: b, action: a})
		}
	}
	t.mu.Unlock()

	if len(work) == 0 {
		return nil
	}

	resolved := make(map[string]models.OutcomeStatus)
	var outcomes []models.Outcome

	for _, w := range work {
		if ctx.Err() != nil {
			break
		}

		confirmed, err := t.confirmed(ctx, w.bucket, w.action)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).
				Str("action_id", w.action.ID).
				Str("bucket", string(w.bucket)).
				Msg("Pending action check failed")
		}

		var status models.OutcomeStatus
		switch {
		case confirmed:
			status = models.OutcomeCompleted
		case t.maxAge > 0 && t.now().Sub(w.action.SubmittedAt) >= t.maxAge:
			status = models.OutcomeExpired
		default:
			continue
		}

		resolved[w.action.ID] = status
		outcomes = append(outcomes, models.Outcome{
			Action:     w.action,
			Status:     status,
			ResolvedAt: t.now(),
		})
	}

	if len(resolved) == 0 {
		return nil
	}

	t.mu.Lock()
	for _, b := range allBuckets {
		var kept []models.PendingAction
		for _, a := range t.buckets[b] {
			if _, done := resolved[a.ID]; !done {
				kept = append(kept, a)
			}
		}
		t.buckets[b] = kept
	}
	n := t.lenLocked()
	t.mu.Unlock()

	metrics.ActionsPending.Set(float64(n))
	for _, o := range outcomes {
		metrics.RecordActionResolved(string(o.Action.Kind), string(o.Status))
		if t.journal != nil {
			if err := t.journal.Delete(o.Action.ID); err != nil {
				t.log.Warn().Err(err).Str("action_id", o.Action.ID).Msg("Failed to remove journaled action")
			}
		}
		logging.Ctx(ctx).Info().
			Str("action_id", o.Action.ID).
			Str("kind", string(o.Action.Kind)).
			Str("name", o.Action.Name).
			Str("status", string(o.Status)).
			Msg("Pending action resolved")
	}
	return outcomes
}

// confirmed reads the backend flag that proves an action took effect.
func (t *Tracker) confirmed(ctx context.Context, b Bucket, a models.PendingAction) (bool, error) {
	var (
		resp *backend.Response
		err  error
		flag string
	)

	switch b {
	case BucketAckHost:
		resp, err = t.client.GetItem(ctx, models.ResourceHost.Endpoint(), a.HostID, confirmProjection)
		flag = models.FieldAcknowledged
	case BucketAckService:
		resp, err = t.client.GetItem(ctx, models.ResourceService.Endpoint(), a.ServiceID, confirmProjection)
		flag = models.FieldAcknowledged
	case BucketDowntimeHost:
		resp, err = t.client.GetItem(ctx, models.ResourceHost.Endpoint(), a.HostID, confirmProjection)
		flag = models.FieldDowntimed
	case BucketDowntimeService:
		resp, err = t.client.GetItem(ctx, models.ResourceService.Endpoint(), a.ServiceID, confirmProjection)
		flag = models.FieldDowntimed
	case BucketProcess:
		resp, err = t.client.GetHref(ctx, a.Handle)
		flag = models.FieldProcessed
	}
	if err != nil {
		return false, err
	}
	return resp.Item().Bool(flag), nil
}
