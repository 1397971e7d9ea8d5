// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package sync

import (
	"regexp"

	"github.com/tomtom215/alignak-watch/internal/backend"
	"github.com/tomtom215/alignak-watch/internal/models"
)

// Field projections per resource type.
var (
	hostProjection = []string{
		"name", "alias", "address", "_realm", "business_impact", "parents",
		"ls_state", "ls_state_type", "ls_state_id", "ls_acknowledged", "ls_downtimed",
		"ls_last_check", "ls_last_state_changed", "ls_output", "ls_perf_data",
		"active_checks_enabled", "passive_checks_enabled", "notifications_enabled",
		"_overall_state_id",
	}
	serviceProjection = []string{
		"name", "alias", "host", "business_impact",
		"ls_state", "ls_state_type", "ls_state_id", "ls_acknowledged", "ls_downtimed",
		"ls_last_check", "ls_last_state_changed", "ls_output", "ls_perf_data",
		"active_checks_enabled", "passive_checks_enabled", "notifications_enabled",
		"_overall_state_id",
	}
	daemonProjection = []string{
		"name", "type", "alive", "reachable", "spare", "address", "port", "last_check",
	}
	historyProjection = []string{
		"service_name", "host_name", "host", "service", "user_name", "type", "message", "_created",
	}
)

// notificationType is the history type of monitoring notifications.
const notificationType = "monitoring.notification"

// request is a built poll request. A non-empty skip means the request
// cannot be built yet.
type request struct {
	query backend.Query
	all   bool
	skip  string
}

// buildRequest returns the query of one poll of rt. Requests that depend
// on other resources read them from the store.
func (s *Scheduler) buildRequest(rt models.ResourceType) request {
	switch rt {
	case models.ResourceHost:
		return request{
			query: backend.Query{
				Where:      map[string]interface{}{"_is_template": false},
				Projection: hostProjection,
			},
			all: true,
		}

	case models.ResourceService:
		return request{
			query: backend.Query{
				Where:      map[string]interface{}{"_is_template": false},
				Projection: serviceProjection,
			},
			all: true,
		}

	case models.ResourceDaemon:
		return request{query: backend.Query{Projection: daemonProjection}, all: true}

	case models.ResourceUser:
		token := s.client.Token()
		if token == "" {
			return request{skip: "no_token"}
		}
		return request{query: backend.Query{Where: map[string]interface{}{"token": token}}}

	case models.ResourceHistory:
		ids := s.store.HostIDs()
		if len(ids) == 0 {
			return request{skip: "no_hosts"}
		}
		return request{query: backend.Query{
			Where:      map[string]interface{}{"host": map[string]interface{}{"$in": ids}},
			Projection: historyProjection,
			Sort:       "-_id",
			MaxResults: s.cfg.HistoryLimit,
		}}

	case models.ResourceNotifications:
		user, ok := s.store.User()
		if !ok || user.Name == "" {
			return request{skip: "no_user"}
		}
		return request{query: backend.Query{
			Where: map[string]interface{}{
				"type":    notificationType,
				"message": map[string]interface{}{"$regex": ".*" + regexp.QuoteMeta(user.Name) + ".*;.*"},
			},
			Projection: historyProjection,
			Sort:       "-_id",
			MaxResults: s.cfg.HistoryLimit,
		}}

	default:
		// livesynthesis, realm, timeperiod: everything.
		return request{all: true}
	}
}
