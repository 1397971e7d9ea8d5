// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Command alignak-status prints a one-shot summary of an Alignak Watch
// server: backend connectivity, host and service counts, unhandled
// problems and daemon aliveness.
//
// Usage:
//
//	alignak-status [-url http://127.0.0.1:8090] [-timeout 10s] [-max 10]
//
// The URL defaults to $ALIGNAK_WATCH_URL when set. Exit codes follow the
// monitoring plugin convention: 0 when everything is fine, 1 when there are
// unhandled problems, 2 when the backend is disconnected or a daemon is
// dead, 3 when the server cannot be read.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	exitOK       = 0
	exitWarning  = 1
	exitCritical = 2
	exitUnknown  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaultURL := os.Getenv("ALIGNAK_WATCH_URL")
	if defaultURL == "" {
		defaultURL = "http://127.0.0.1:8090"
	}

	fs := flag.NewFlagSet("alignak-status", flag.ContinueOnError)
	fs.SetOutput(stderr)
	url := fs.String("url", defaultURL, "Alignak Watch server URL")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	limit := fs.Int("max", 10, "maximum problems listed per kind (0 lists all)")
	if err := fs.Parse(args); err != nil {
		return exitUnknown
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := newAPIClient(*url, &http.Client{Timeout: *timeout})
	st, err := client.status(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "alignak-status: %v\n", err)
		return exitUnknown
	}

	fmt.Fprint(stdout, render(newStyles(), st, *limit, time.Now()))
	return exitCode(st)
}

func exitCode(st *status) int {
	switch {
	case !st.Health.Connected || len(st.Daemons.Dead) > 0:
		return exitCritical
	case len(st.Problems.Hosts)+len(st.Problems.Services) > 0:
		return exitWarning
	default:
		return exitOK
	}
}
