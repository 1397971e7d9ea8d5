// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package synthesis computes deltas between consecutive live-synthesis
// counts.
package synthesis

import (
	"sync"
	"time"

	"github.com/tomtom215/alignak-watch/internal/metrics"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Engine remembers the previous counts and diffs each new set against them.
type Engine struct {
	mu       sync.Mutex
	prev     models.SynthesisCount
	last     models.DiffRecord
	computed bool
	now      func() time.Time
}

// NewEngine returns an engine with no history.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Compute returns curr - prev field by field and stores curr as the new
// previous counts. The first call after construction returns an all-zero
// diff with Changed=false and First=true.
func (e *Engine) Compute(curr models.SynthesisCount) models.DiffRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := models.DiffRecord{ComputedAt: e.now()}
	if !e.computed {
		rec.First = true
		e.computed = true
	} else {
		rec.Hosts = subHosts(curr.Hosts, e.prev.Hosts)
		rec.Services = subServices(curr.Services, e.prev.Services)
		rec.Changed = rec.Hosts != (models.HostCounts{}) || rec.Services != (models.ServiceCounts{})
	}

	e.prev = curr
	e.last = rec
	metrics.RecordSynthesisDiff(rec.Changed)
	return rec
}

// Last returns the most recent diff and the counts it was computed from.
// ok is false before the first Compute.
func (e *Engine) Last() (diff models.DiffRecord, counts models.SynthesisCount, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.prev, e.computed
}

func subHosts(a, b models.HostCounts) models.HostCounts {
	return models.HostCounts{
		Total:        a.Total - b.Total,
		Up:           a.Up - b.Up,
		Down:         a.Down - b.Down,
		Unreachable:  a.Unreachable - b.Unreachable,
		Acknowledged: a.Acknowledged - b.Acknowledged,
		Downtimed:    a.Downtimed - b.Downtimed,
	}
}

func subServices(a, b models.ServiceCounts) models.ServiceCounts {
	return models.ServiceCounts{
		Total:        a.Total - b.Total,
		Ok:           a.Ok - b.Ok,
		Warning:      a.Warning - b.Warning,
		Critical:     a.Critical - b.Critical,
		Unknown:      a.Unknown - b.Unknown,
		Unreachable:  a.Unreachable - b.Unreachable,
		Acknowledged: a.Acknowledged - b.Acknowledged,
		Downtimed:    a.Downtimed - b.Downtimed,
	}
}
