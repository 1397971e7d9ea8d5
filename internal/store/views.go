// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package store

import (
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Host and service states as reported in ls_state.
const (
	HostUp          = "UP"
	HostDown        = "DOWN"
	HostUnreachable = "UNREACHABLE"

	ServiceOk          = "OK"
	ServiceWarning     = "WARNING"
	ServiceCritical    = "CRITICAL"
	ServiceUnknown     = "UNKNOWN"
	ServiceUnreachable = "UNREACHABLE"
)

// Problems lists hosts and services in a problem state that nobody has
// acknowledged or scheduled a downtime for.
type Problems struct {
	Hosts    []models.Item `json:"hosts"`
	Services []models.Item `json:"services"`
}

// DaemonsStatus summarizes Alignak daemon aliveness.
type DaemonsStatus struct {
	Alive int      `json:"alive"`
	Total int      `json:"total"`
	Dead  []string `json:"dead,omitempty"`
}

// OK reports whether every known daemon is alive.
func (d DaemonsStatus) OK() bool {
	return d.Alive == d.Total
}

// SynthesisCounts sums every live-synthesis item (one per realm). State
// counts add the hard and soft fields; missing fields count as zero.
func (s *Store) SynthesisCounts() models.SynthesisCount {
	items, _, _ := s.load(models.ResourceLiveSynthesis)

	var out models.SynthesisCount
	for _, item := range items {
		h := &out.Hosts
		h.Total += item.Int("hosts_total")
		h.Up += hardSoft(item, "hosts_up")
		h.Down += hardSoft(item, "hosts_down")
		h.Unreachable += hardSoft(item, "hosts_unreachable")
		h.Acknowledged += item.Int("hosts_acknowledged")
		h.Downtimed += item.Int("hosts_in_downtime")

		sv := &out.Services
		sv.Total += item.Int("services_total")
		sv.Ok += hardSoft(item, "services_ok")
		sv.Warning += hardSoft(item, "services_warning")
		sv.Critical += hardSoft(item, "services_critical")
		sv.Unknown += hardSoft(item, "services_unknown")
		sv.Unreachable += hardSoft(item, "services_unreachable")
		sv.Acknowledged += item.Int("services_acknowledged")
		sv.Downtimed += item.Int("services_in_downtime")
	}
	return out
}

func hardSoft(item models.Item, prefix string) int {
	return item.Int(prefix+"_hard") + item.Int(prefix+"_soft")
}

// User returns the logged-in user, if polled.
func (s *Store) User() (models.Item, bool) {
	items, _, _ := s.load(models.ResourceUser)
	if len(items) == 0 {
		return models.Item{}, false
	}
	return items[0].Clone(), true
}

// HostIDs returns the ids of every host in the snapshot.
func (s *Store) HostIDs() []string {
	items, _, _ := s.load(models.ResourceHost)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ServicesOf returns the services attached to a host.
func (s *Store) ServicesOf(hostID string) []models.Item {
	return s.filter(models.ResourceService, func(item models.Item) bool {
		return item.String(models.FieldHost) == hostID
	})
}

// HistoryFor returns the history entries of a host, newest first.
func (s *Store) HistoryFor(hostID string) []models.Item {
	return s.filter(models.ResourceHistory, func(item models.Item) bool {
		return item.String(models.FieldHost) == hostID
	})
}

// Problems returns unhandled hosts (DOWN, UNREACHABLE) and services
// (WARNING, CRITICAL, UNKNOWN).
func (s *Store) Problems() Problems {
	return Problems{
		Hosts: s.filter(models.ResourceHost, func(item models.Item) bool {
			switch item.String(models.FieldState) {
			case HostDown, HostUnreachable:
				return !handled(item)
			}
			return false
		}),
		Services: s.filter(models.ResourceService, func(item models.Item) bool {
			switch item.String(models.FieldState) {
			case ServiceWarning, ServiceCritical, ServiceUnknown:
				return !handled(item)
			}
			return false
		}),
	}
}

func handled(item models.Item) bool {
	return item.Bool(models.FieldAcknowledged) || item.Bool(models.FieldDowntimed)
}

// DaemonsStatus counts alive daemons.
func (s *Store) DaemonsStatus() DaemonsStatus {
	items, _, _ := s.load(models.ResourceDaemon)

	status := DaemonsStatus{Total: len(items)}
	for _, item := range items {
		if item.Bool("alive") {
			status.Alive++
			continue
		}
		status.Dead = append(status.Dead, item.Name)
	}
	return status
}

func (s *Store) filter(rt models.ResourceType, keep func(models.Item) bool) []models.Item {
	items, _, _ := s.load(rt)
	out := make([]models.Item, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
