// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/alignak-watch/internal/api"
	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/store"
)

// status is everything one render needs.
type status struct {
	Health    api.HealthStatus
	Synthesis api.SynthesisView
	Problems  store.Problems
	Daemons   store.DaemonsStatus
}

// envelope is the API response envelope with data left raw.
type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

// apiClient reads the Alignak Watch HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, httpClient *http.Client) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    httpClient,
	}
}

// fetch GETs path and decodes the envelope data into v.
func (c *apiClient) fetch(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s (HTTP %d): %w", path, resp.StatusCode, err)
	}
	if env.Status != "success" {
		if env.Error != nil {
			return fmt.Errorf("GET %s: %s: %s", path, env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// status reads the four endpoints concurrently.
func (c *apiClient) status(ctx context.Context) (*status, error) {
	var st status
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.fetch(ctx, "/health", &st.Health) })
	g.Go(func() error { return c.fetch(ctx, "/synthesis", &st.Synthesis) })
	g.Go(func() error { return c.fetch(ctx, "/problems", &st.Problems) })
	g.Go(func() error { return c.fetch(ctx, "/daemons", &st.Daemons) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
