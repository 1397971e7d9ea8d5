// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package supervisor provides process supervision for Alignak Watch using
suture v4.

The supervisor tree organizes services into three layers for failure
isolation:

	RootSupervisor ("alignak-watch")
	├── SyncSupervisor ("sync-layer")
	│   ├── SchedulerService ("poll-scheduler")
	│   ├── sync.Reconnector ("reconnector")
	│   ├── actions.Checker ("action-checker")
	│   └── JournalCompactorService ("journal-compactor")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService ("websocket-hub")
	│   └── events.Forwarder ("event-forwarder")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService ("http-server")

A crash of a sync service leaves the API serving the last snapshot, and
WebSocket clients stay connected while the poll scheduler restarts.

Crashed services are restarted with suture's backoff once FailureThreshold
failures accumulate (decaying at FailureDecay per second). Supervisor
events are logged through sutureslog with the slog logger passed to
NewSupervisorTree; cmd/server passes logging.NewSlogLogger so they end up
in the same zerolog stream as everything else.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddSyncService(services.NewSchedulerService(scheduler))
	tree.AddSyncService(reconnector)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

On shutdown, UnstoppedServiceReport lists services that ignored
cancellation past ShutdownTimeout.
*/
package supervisor
