// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" (see Data) or "error" (see Error):
//
//	{
//	  "status": "success",
//	  "data": {"hosts": {"total": 12, "up": 11, ...}},
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z", "generation": 42}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes the snapshot a response was served from.
//
// UpdatedAt and Generation refer to the resource type's last replace;
// both are omitted for responses not tied to a single resource.
type Metadata struct {
	Timestamp  time.Time  `json:"timestamp"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Generation uint64     `json:"generation,omitempty"`
	Count      int        `json:"count,omitempty"`
}

// APIError represents an error response with structured details.
//
// Codes:
//   - VALIDATION_ERROR: invalid request body or parameters
//   - NOT_FOUND: unknown resource type or item id
//   - CONFLICT: backend rejected a PATCH because the etag changed
//   - BACKEND_UNAVAILABLE: the backend connection is down
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
