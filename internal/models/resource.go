// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

// ResourceType names a kind of backend resource kept in the snapshot.
type ResourceType string

const (
	ResourceHost          ResourceType = "host"
	ResourceService       ResourceType = "service"
	ResourceDaemon        ResourceType = "alignakdaemon"
	ResourceLiveSynthesis ResourceType = "livesynthesis"
	ResourceUser          ResourceType = "user"
	ResourceHistory       ResourceType = "history"
	ResourceNotifications ResourceType = "notifications"
	ResourceRealm         ResourceType = "realm"
	ResourceTimeperiod    ResourceType = "timeperiod"
)

// AllResourceTypes lists every polled resource type.
var AllResourceTypes = []ResourceType{
	ResourceHost,
	ResourceService,
	ResourceDaemon,
	ResourceLiveSynthesis,
	ResourceUser,
	ResourceHistory,
	ResourceNotifications,
	ResourceRealm,
	ResourceTimeperiod,
}

// ParseResourceType validates a resource type name.
func ParseResourceType(s string) (ResourceType, bool) {
	for _, rt := range AllResourceTypes {
		if string(rt) == s {
			return rt, true
		}
	}
	return "", false
}

// Endpoint returns the backend endpoint serving this resource type.
// Notifications are history entries of type monitoring.notification.
func (r ResourceType) Endpoint() string {
	if r == ResourceNotifications {
		return string(ResourceHistory)
	}
	return string(r)
}

// IsCollection reports whether items are keyed by id. User is a singleton;
// history and notifications are ordered lists.
func (r ResourceType) IsCollection() bool {
	switch r {
	case ResourceUser, ResourceHistory, ResourceNotifications:
		return false
	default:
		return true
	}
}

// String implements fmt.Stringer.
func (r ResourceType) String() string {
	return string(r)
}
