// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package actions

import (
	"context"
	"time"

	"github.com/tomtom215/alignak-watch/internal/events"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Publisher publishes tracker outcomes.
type Publisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
}

// ConnectionState reports whether backend calls are allowed.
type ConnectionState interface {
	Connected() bool
}

// Checker runs Tracker.Check on a fixed interval and publishes outcomes.
// It implements suture.Service.
type Checker struct {
	tracker  *Tracker
	conn     ConnectionState
	pub      Publisher
	interval time.Duration
}

// NewChecker creates a checker. pub may be nil.
func NewChecker(tracker *Tracker, conn ConnectionState, pub Publisher, interval time.Duration) *Checker {
	return &Checker{
		tracker:  tracker,
		conn:     conn,
		pub:      pub,
		interval: interval,
	}
}

// Serve implements suture.Service.
func (c *Checker) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (c *Checker) String() string {
	return "action-checker"
}

// RunOnce performs a single check cycle. Nothing is checked while the
// backend is disconnected or the tracker is empty.
func (c *Checker) RunOnce(ctx context.Context) []models.Outcome {
	if c.tracker.Len() == 0 {
		return nil
	}
	if c.conn != nil && !c.conn.Connected() {
		logging.Debug().Msg("Skipping pending action check: backend disconnected")
		return nil
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	outcomes := c.tracker.Check(ctx)

	if c.pub == nil {
		return outcomes
	}
	for _, o := range outcomes {
		topic := events.TopicActionCompleted
		if o.Status == models.OutcomeExpired {
			topic = events.TopicActionExpired
		}
		if err := c.pub.Publish(ctx, topic, o); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("Failed to publish action outcome")
		}
	}
	return outcomes
}
