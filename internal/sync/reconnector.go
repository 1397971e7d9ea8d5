// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/events"
	"github.com/tomtom215/alignak-watch/internal/logging"
)

// errLoginRejected marks a login attempt the backend refused.
var errLoginRejected = errors.New("backend login rejected")

// LoginClient is the backend surface the reconnector needs.
type LoginClient interface {
	Login(ctx context.Context, creds backend.Credentials) bool
	Disconnects() <-chan struct{}
	Connected() bool
}

var _ LoginClient = (*backend.Client)(nil)

// Refresher repopulates the store after a reconnect.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// ReconnectorConfig configures a Reconnector.
type ReconnectorConfig struct {
	Credentials        backend.Credentials
	Interval           time.Duration
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// Reconnector restores the backend session after the client reports a
// disconnect. It implements suture.Service.
type Reconnector struct {
	client    LoginClient
	refresher Refresher
	pub       Publisher
	creds     backend.Credentials
	interval  time.Duration
	breaker   *loginBreaker
}

// NewReconnector creates a reconnector. pub and refresher may be nil.
func NewReconnector(client LoginClient, refresher Refresher, pub Publisher, cfg ReconnectorConfig) *Reconnector {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Reconnector{
		client:    client,
		refresher: refresher,
		pub:       pub,
		creds:     cfg.Credentials,
		interval:  interval,
		breaker:   newLoginBreaker("backend-login", cfg.BreakerMaxFailures, cfg.BreakerTimeout),
	}
}

// Serve waits for disconnect signals until ctx is canceled. A client that
// is not connected when Serve starts is reconnected first.
func (r *Reconnector) Serve(ctx context.Context) error {
	if !r.client.Connected() {
		if err := r.reconnect(ctx); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.client.Disconnects():
			r.publish(ctx, events.ConnectionChange{Connected: false, Reason: "request failed"})
			if err := r.reconnect(ctx); err != nil {
				return err
			}
		}
	}
}

// String returns the service name for supervisor logging.
func (r *Reconnector) String() string {
	return "reconnector"
}

// reconnect retries login every interval until it succeeds or ctx ends.
func (r *Reconnector) reconnect(ctx context.Context) error {
	log := logging.WithComponent("reconnector")
	log.Warn().Dur("interval", r.interval).Msg("Backend connection lost, reconnecting")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	attempts := 0
	for {
		if r.client.Connected() {
			break
		}
		attempts++
		if r.attempt(ctx) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	log.Info().Int("attempts", attempts).Msg("Backend connection restored")
	r.publish(ctx, events.ConnectionChange{Connected: true, Reason: "login succeeded"})

	if r.refresher != nil {
		ctx = logging.ContextWithNewCorrelationID(ctx)
		if err := r.refresher.RefreshAll(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Refresh after reconnect incomplete")
		}
	}
	return nil
}

func (r *Reconnector) attempt(ctx context.Context) bool {
	ok, err := r.breaker.execute(func() (bool, error) {
		if !r.client.Login(ctx, r.creds) {
			return false, errLoginRejected
		}
		return true, nil
	})
	if err != nil {
		if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Debug().Err(err).Str("mode", r.creds.Mode()).Msg("Login attempt failed")
		}
		return false
	}
	return ok
}

func (r *Reconnector) publish(ctx context.Context, change events.ConnectionChange) {
	if r.pub == nil {
		return
	}
	if err := r.pub.Publish(ctx, events.TopicBackendConnection, change); err != nil {
		logging.Warn().Err(err).Msg("Failed to publish connection change")
	}
}
