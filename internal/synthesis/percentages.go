// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package synthesis

import (
	"math"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// Percentages expresses every state as a share of its total, rounded to two
// decimals. A zero total yields zero for every state.
func Percentages(c models.SynthesisCount) models.SynthesisPercentages {
	h, s := c.Hosts, c.Services
	return models.SynthesisPercentages{
		Hosts: map[string]float64{
			"up":           percent(h.Up, h.Total),
			"down":         percent(h.Down, h.Total),
			"unreachable":  percent(h.Unreachable, h.Total),
			"acknowledged": percent(h.Acknowledged, h.Total),
			"downtimed":    percent(h.Downtimed, h.Total),
		},
		Services: map[string]float64{
			"ok":           percent(s.Ok, s.Total),
			"warning":      percent(s.Warning, s.Total),
			"critical":     percent(s.Critical, s.Total),
			"unknown":      percent(s.Unknown, s.Total),
			"unreachable":  percent(s.Unreachable, s.Total),
			"acknowledged": percent(s.Acknowledged, s.Total),
			"downtimed":    percent(s.Downtimed, s.Total),
		},
	}
}

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
