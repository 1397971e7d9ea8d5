// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

import "time"

// HostCounts aggregates hosts by state.
type HostCounts struct {
	Total        int `json:"total"`
	Up           int `json:"up"`
	Down         int `json:"down"`
	Unreachable  int `json:"unreachable"`
	Acknowledged int `json:"acknowledged"`
	Downtimed    int `json:"downtimed"`
}

// ServiceCounts aggregates services by state.
type ServiceCounts struct {
	Total        int `json:"total"`
	Ok           int `json:"ok"`
	Warning      int `json:"warning"`
	Critical     int `json:"critical"`
	Unknown      int `json:"unknown"`
	Unreachable  int `json:"unreachable"`
	Acknowledged int `json:"acknowledged"`
	Downtimed    int `json:"downtimed"`
}

// SynthesisCount is the aggregate of every live-synthesis item in the snapshot.
// It is derived on demand and never stored on its own.
type SynthesisCount struct {
	Hosts    HostCounts    `json:"hosts"`
	Services ServiceCounts `json:"services"`
}

// DiffRecord is the signed delta between two consecutive SynthesisCounts.
type DiffRecord struct {
	Hosts    HostCounts    `json:"hosts"`
	Services ServiceCounts `json:"services"`

	// Changed is false when every delta is zero, and always false for the
	// first computation after startup.
	Changed bool `json:"changed"`
	// First marks the first computation after startup.
	First      bool      `json:"first"`
	ComputedAt time.Time `json:"computed_at"`
}

// SynthesisPercentages expresses each state as a percentage of its total.
type SynthesisPercentages struct {
	Hosts    map[string]float64 `json:"hosts"`
	Services map[string]float64 `json:"services"`
}
