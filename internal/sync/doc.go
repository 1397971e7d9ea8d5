// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
Package sync keeps the in-memory snapshot in step with the Alignak backend.

Key Components:

  - Scheduler: one poll loop per resource type, each on its own interval
  - Request builders: per-type queries, some reading other snapshots
  - Reconnector: restores the backend session after a disconnect
  - Circuit Breaker: throttles login attempts while the backend is down

Poll Cycle:

Each cycle of a resource type:

 1. Skips when the previous cycle of the same type is still running
 2. Skips when the backend client is disconnected
 3. Builds the request (history needs hosts; notifications need the user)
 4. Fetches every page under poll.fetch_timeout
 5. Replaces the resource's collection in the store atomically

A failed cycle leaves the store untouched. After a livesynthesis
replace the scheduler computes a synthesis diff, publishes it on the
event bus and calls the registered OnDiff callbacks.

Reconnection:

The backend client signals Disconnects when a request fails after its
retry. The Reconnector then calls Login every reconnect.interval. Login
attempts go through a gobreaker circuit breaker; while it is open no
login reaches the backend. Once connected the reconnector publishes a
backend.connection event and runs RefreshAll.

Usage Example:

	sched := sync.NewScheduler(client, st, engine, bus, sync.Config{
	    Intervals:    intervals,
	    FetchTimeout: 30 * time.Second,
	    HistoryLimit: 25,
	})
	if err := sched.Start(ctx); err != nil {
	    log.Fatal(err)
	}
	defer sched.Stop()

Thread Safety:

Scheduler and Reconnector are safe for concurrent use. Poll may be called
from any goroutine; overlapping calls for one type return ErrSkipped.

See Also:

  - internal/backend: Eve REST client
  - internal/store: snapshot store
  - internal/synthesis: diff engine
*/
package sync
