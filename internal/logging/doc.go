// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package logging provides centralized zerolog-based structured logging.
//
// All components log through the global logger configured by Init:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("resource", "livesynthesis").Msg("Poll completed")
//
// Poll cycles and HTTP requests carry a correlation ID in their context;
// use Ctx to pick it up:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Fetch failed, keeping stale snapshot")
//
// Libraries that require *slog.Logger (sutureslog, watermill) get one from
// NewSlogLogger, which writes through the same zerolog output.
//
// Environment variables (mapped by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
package logging
