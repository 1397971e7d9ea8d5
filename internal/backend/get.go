// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
)

// Get reads an endpoint. With all set, every page is fetched and the items
// are returned in page order.
func (c *Client) Get(ctx context.Context, endpoint string, q Query, all bool) (*Response, error) {
	if all {
		return c.getAll(ctx, endpoint, q)
	}

	params, err := q.Values()
	if err != nil {
		return nil, err
	}
	data, err := c.getWithRetry(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return parseCollection(data)
}

// GetItem reads a single document, /<endpoint>/<id>.
func (c *Client) GetItem(ctx context.Context, endpoint, id string, projection []string) (*Response, error) {
	params := url.Values{}
	if p := projectionParam(projection); p != "" {
		params.Set("projection", p)
	}
	data, err := c.getWithRetry(ctx, endpoint+"/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return &Response{Object: doc}, nil
}

// GetHref reads a single document from a relative href as returned in
// _links.self.href, e.g. "actionacknowledge/5a1f...".
func (c *Client) GetHref(ctx context.Context, href string) (*Response, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(href, "/"), "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid href %q: %w", href, err)
	}
	data, err := c.getWithRetry(ctx, path, params)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return &Response{Object: doc}, nil
}

// getWithRetry performs a GET, retrying a transient failure exactly once.
// A second transient failure disconnects the client.
func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values) ([]byte, error) {
	r := request{method: http.MethodGet, path: path, query: params, auth: true}

	data, err := c.do(ctx, r)
	if err == nil {
		return data, nil
	}
	if !isTransient(err) {
		return nil, err
	}

	// A first attempt that used up the caller's deadline leaves no time for
	// the retry; it counts as both attempts failing.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, c.retryExhausted(path, err)
	}

	logging.Ctx(ctx).Debug().Err(err).Str("endpoint", path).Msg("Backend GET failed, retrying once")

	data, err = c.do(ctx, r)
	if err == nil {
		metrics.BackendRetries.WithLabelValues("recovered").Inc()
		return data, nil
	}
	if !isTransient(err) {
		return nil, err
	}
	return nil, c.retryExhausted(path, err)
}

func (c *Client) retryExhausted(path string, err error) error {
	metrics.BackendRetries.WithLabelValues("exhausted").Inc()
	c.markDisconnected(err)
	return fmt.Errorf("%w: GET %s: %w", ErrDisconnected, path, err)
}

// getAll fetches page 1, then the remaining pages concurrently.
func (c *Client) getAll(ctx context.Context, endpoint string, q Query) (*Response, error) {
	if q.MaxResults <= 0 {
		q.MaxResults = c.pageSize
	}
	q.Page = 1

	params, err := q.Values()
	if err != nil {
		return nil, err
	}
	data, err := c.getWithRetry(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	first, err := parseCollection(data)
	if err != nil {
		return nil, err
	}

	perPage := first.Meta.MaxResults
	if perPage <= 0 {
		perPage = q.MaxResults
	}
	pages := 1
	if first.Meta.Total > perPage {
		pages = (first.Meta.Total + perPage - 1) / perPage
	}
	if pages == 1 {
		return first, nil
	}

	results := make([][]map[string]interface{}, pages)
	results[0] = first.Items

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.pageWorkers)

	for page := 2; page <= pages; page++ {
		g.Go(func() error {
			pageParams := cloneValues(params)
			pageParams.Set("page", strconv.Itoa(page))
			pageData, err := c.getWithRetry(gctx, endpoint, pageParams)
			if err != nil {
				return err
			}
			resp, err := parseCollection(pageData)
			if err != nil {
				return fmt.Errorf("page %d of %s: %w", page, endpoint, err)
			}
			results[page-1] = resp.Items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Response{
		Items: make([]map[string]interface{}, 0, first.Meta.Total),
		Meta:  first.Meta,
		Links: first.Links,
	}
	for _, items := range results {
		out.Items = append(out.Items, items...)
	}
	return out, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
