// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

/*
client.go - Alignak Backend REST Client

This file implements the client for the Alignak backend, an Eve based REST
API. It authenticates once, then performs GET, POST and PATCH requests on
named endpoints using HTTP basic auth with the session token.

Failure policy:
  - GET retries a transient failure exactly once. A second failure flips the
    client to disconnected and signals Disconnects().
  - POST and PATCH are never retried. A failure flips the client to
    disconnected, except a 412 on PATCH which reports ErrEtagMismatch.
  - Callers notice Connected() == false and stop issuing requests until a
    fresh Login succeeds.
*/

package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
)

// maxErrorBody caps how much of a failed response body is kept in an APIError.
const maxErrorBody = 512

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:5000.
	BaseURL string
	// Timeout bounds every single HTTP attempt.
	Timeout time.Duration
	// RequestsPerSecond limits the request rate. Zero disables limiting.
	RequestsPerSecond float64
	// PageSize is the max_results used by paginated reads.
	PageSize int
	// PageWorkers bounds concurrent page fetches of an all=true Get.
	PageWorkers int
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the Alignak backend. It is safe for concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	pageSize    int
	pageWorkers int

	mu       sync.RWMutex
	token    string
	username string

	connected   atomic.Bool
	disconnects chan struct{}
	log         zerolog.Logger
}

// NewClient creates a backend client. It does not contact the backend.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	pageWorkers := cfg.PageWorkers
	if pageWorkers <= 0 {
		pageWorkers = 1
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		limiter:     limiter,
		pageSize:    pageSize,
		pageWorkers: pageWorkers,
		disconnects: make(chan struct{}, 1),
		log:         logging.WithComponent("backend"),
	}
}

// Connected reports whether the last login or request succeeded.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Disconnects delivers a signal each time the client transitions to
// disconnected. The channel has a buffer of one; signals coalesce.
func (c *Client) Disconnects() <-chan struct{} {
	return c.disconnects
}

// Token returns the current session token, or "" before login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Username returns the login name, or "" when logged in with a bare token.
func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

func (c *Client) setConnected() {
	if !c.connected.Swap(true) {
		metrics.SetBackendConnected(true)
	}
}

// markDisconnected flips the flag and signals Disconnects on the
// connected -> disconnected transition only.
func (c *Client) markDisconnected(cause error) {
	if !c.connected.Swap(false) {
		return
	}
	metrics.SetBackendConnected(false)
	c.log.Warn().Err(cause).Msg("Backend connection lost")

	select {
	case c.disconnects <- struct{}{}:
	default:
	}
}

// request describes one HTTP attempt.
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	header http.Header
	auth   bool
}

// do performs a single attempt and returns the response body of a 2xx.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait fails early when the deadline cannot be met; that is the
			// same outcome as a request timing out.
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, fmt.Errorf("rate limiter: %w", ctx.Err())
			}
			return nil, &transportError{err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	var token string
	if r.auth {
		token = c.Token()
		if token == "" {
			return nil, ErrNotAuthenticated
		}
	}

	target := c.baseURL + "/" + strings.TrimPrefix(r.path, "/")
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.auth {
		req.SetBasicAuth(token, "")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordBackendRequest(r.method, "transport_error", time.Since(start))
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
		}
		return nil, &transportError{err: fmt.Errorf("%s %s: %w", r.method, r.path, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordBackendRequest(r.method, "transport_error", time.Since(start))
		return nil, &transportError{err: fmt.Errorf("read %s %s: %w", r.method, r.path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordBackendRequest(r.method, statusClass(resp.StatusCode), time.Since(start))
		return nil, &APIError{
			Method:     r.method,
			Endpoint:   r.path,
			StatusCode: resp.StatusCode,
			Body:       logging.Truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	metrics.RecordBackendRequest(r.method, "success", time.Since(start))
	return data, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "other"
	}
}

// decodeDocument decodes a JSON object, keeping numbers as json.Number so
// integers stay integral through models.ValueFrom.
func decodeDocument(data []byte) (map[string]interface{}, error) {
	doc := make(map[string]interface{})
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return doc, nil
}
