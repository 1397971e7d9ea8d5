// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package store keeps the latest backend snapshot in memory.
//
// Each resource type is replaced as a whole by the poll scheduler. Readers
// see either the previous or the new collection of a type, never a mix;
// collections of different types may come from different poll cycles.
// Derived views (synthesis counts, problems, daemon status) are computed on
// demand from the current collections.
package store
