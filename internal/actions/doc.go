// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package actions tracks user actions (acknowledgements, downtimes, forced
// checks) until the backend confirms them.
//
// The Submitter posts the backend action request and hands the result to
// the Tracker. The Checker polls the backend on an interval: an
// acknowledgement is confirmed by ls_acknowledged on its host or service,
// a downtime by ls_downtimed, and a forced check by the processed flag of
// the request document. Pending actions are journaled in BadgerDB.
package actions
