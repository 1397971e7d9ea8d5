// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

var errSimulated = errors.New("simulated login failure")

// TestLoginBreaker_OpensAfterFailures verifies the circuit opens after
// maxFailures consecutive failures and rejects without calling fn.
func TestLoginBreaker_OpensAfterFailures(t *testing.T) {
	b := newLoginBreaker("test-opens", 3, time.Hour)

	if b.state() != gobreaker.StateClosed {
		t.Fatalf("Expected initial state Closed, got %v", b.state())
	}

	for i := 0; i < 3; i++ {
		if _, err := b.execute(func() (bool, error) { return false, errSimulated }); !errors.Is(err, errSimulated) {
			t.Fatalf("attempt %d: expected simulated failure, got %v", i, err)
		}
	}

	if b.state() != gobreaker.StateOpen {
		t.Fatalf("Expected Open after 3 failures, got %v", b.state())
	}

	called := false
	_, err := b.execute(func() (bool, error) {
		called = true
		return true, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState, got %v", err)
	}
	if called {
		t.Error("fn must not run while the circuit is open")
	}
}

// TestLoginBreaker_SuccessResetsCount verifies failures must be consecutive.
func TestLoginBreaker_SuccessResetsCount(t *testing.T) {
	b := newLoginBreaker("test-resets", 2, time.Hour)

	_, _ = b.execute(func() (bool, error) { return false, errSimulated })
	ok, err := b.execute(func() (bool, error) { return true, nil })
	if err != nil || !ok {
		t.Fatalf("expected success, got %v, %v", ok, err)
	}
	_, _ = b.execute(func() (bool, error) { return false, errSimulated })

	if b.state() != gobreaker.StateClosed {
		t.Errorf("Expected Closed, got %v", b.state())
	}
}

// TestLoginBreaker_HalfOpenProbe verifies a successful probe after the
// timeout closes the circuit.
func TestLoginBreaker_HalfOpenProbe(t *testing.T) {
	b := newLoginBreaker("test-probe", 1, 30*time.Millisecond)

	_, _ = b.execute(func() (bool, error) { return false, errSimulated })
	if b.state() != gobreaker.StateOpen {
		t.Fatalf("Expected Open, got %v", b.state())
	}

	time.Sleep(50 * time.Millisecond)
	if b.state() != gobreaker.StateHalfOpen {
		t.Fatalf("Expected HalfOpen after timeout, got %v", b.state())
	}

	if _, err := b.execute(func() (bool, error) { return true, nil }); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if b.state() != gobreaker.StateClosed {
		t.Errorf("Expected Closed after probe, got %v", b.state())
	}
}

func TestLoginBreaker_ZeroMaxFailures(t *testing.T) {
	b := newLoginBreaker("test-zero", 0, time.Hour)
	_, _ = b.execute(func() (bool, error) { return false, errSimulated })
	if b.state() != gobreaker.StateOpen {
		t.Errorf("Expected a zero threshold to trip on the first failure, got %v", b.state())
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		num   float64
		name  string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
		{gobreaker.State(99), -1, "unknown"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
		if got := stateToString(tt.state); got != tt.name {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.name)
		}
	}
}
