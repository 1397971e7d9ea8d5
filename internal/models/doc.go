// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package models defines the data structures shared by every Alignak Watch
package.

Key Components:

  - Item: one backend document (host, service, daemon, ...) with its id,
    display name and a map of dynamically typed field Values
  - Value: a closed set of field kinds (string, int, bool, string list);
    other JSON values are dropped when an Item is built
  - ResourceType: the resource kinds kept in the snapshot and the backend
    endpoint each maps to
  - HostCounts, ServiceCounts, SynthesisCount: aggregated live synthesis
  - DiffRecord: the change between two consecutive synthesis computations
  - PendingAction, Outcome: submitted acknowledgements, downtimes and
    checks awaiting confirmation from the backend
  - APIResponse, Metadata, APIError: the HTTP response envelope

Items:

Backend documents are schemaless from the client's point of view. An Item
keeps every field as a Value and offers typed accessors that return the
zero value when a field is missing or of another kind:

	item := models.ItemFromMap(doc)
	state := item.String(models.FieldState)
	acked := item.Bool(models.FieldAcknowledged)

Item.Name falls back to the alias field, then to the id.

Synthesis:

SynthesisCount sums the per-realm livesynthesis documents. Hard and soft
state counters are added together. DiffRecord.Changed is false when a
computation produced the same counts as the previous one; First marks the
very first computation after startup.

API Envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "updated_at": "...", "generation": 3, "count": 12}
	}

Error responses carry an APIError with a machine readable code such as
NOT_FOUND, VALIDATION_ERROR or BACKEND_UNAVAILABLE.

Thread Safety:

Items returned by the store are copies; callers may keep or modify them.
Value is immutable.
*/
package models
