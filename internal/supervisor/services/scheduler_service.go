// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package services

import (
	"context"
	"fmt"
)

// StartStopper matches the poll scheduler lifecycle.
//
// Satisfied by *sync.Scheduler from internal/sync/scheduler.go.
type StartStopper interface {
	Start(ctx context.Context) error
	Stop() error
}

// SchedulerService wraps the poll scheduler as a supervised service.
//
// It adapts the Start/Stop lifecycle pattern to suture's Serve pattern:
//  1. Calls Start(ctx) to launch one poll loop per resource type
//  2. Waits for context cancellation
//  3. Calls Stop() which waits for the loops and in-flight polls
//
// Example usage:
//
//	scheduler := sync.NewScheduler(client, st, engine, bus, cfg)
//	tree.AddSyncService(services.NewSchedulerService(scheduler))
type SchedulerService struct {
	scheduler StartStopper
	name      string
}

// NewSchedulerService creates a new scheduler service wrapper.
func NewSchedulerService(scheduler StartStopper) *SchedulerService {
	return &SchedulerService{
		scheduler: scheduler,
		name:      "poll-scheduler",
	}
}

// Serve implements suture.Service. A failed Start is returned so suture
// restarts the service with backoff.
func (s *SchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("poll scheduler start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("poll scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *SchedulerService) String() string {
	return s.name
}
