// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/alignak-watch/docs" // Register the swagger document
	"github.com/tomtom215/alignak-watch/internal/config"
	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/supervisor"
)

// initialLoginTimeout bounds the login attempt made before the tree starts.
const initialLoginTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("backend_url", cfg.Backend.URL).
		Str("addr", cfg.Server.Addr()).
		Bool("journal", cfg.Actions.JournalPath != "").
		Bool("nats_mirror", cfg.Events.NATSURL != "").
		Msg("Starting Alignak Watch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Alignak Watch stopped with error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the application and serves the supervisor tree until ctx ends.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	loginCtx, cancel := context.WithTimeout(ctx, initialLoginTimeout)
	if app.client.Login(loginCtx, app.credentials) {
		logging.Info().Str("user", app.client.Username()).Msg("Connected to Alignak backend")
	} else {
		logging.Warn().Msg("Initial backend login failed, reconnector will retry")
	}
	cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	app.register(tree)

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
