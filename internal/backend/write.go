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

	"github.com/tomtom215/alignak-watch/internal/logging"
)

// Post creates a document. It is attempted once; any failure other than
// caller cancellation disconnects the client.
func (c *Client) Post(ctx context.Context, endpoint string, payload map[string]interface{}) (*Response, error) {
	data, err := c.do(ctx, request{method: http.MethodPost, path: endpoint, body: payload, auth: true})
	if err != nil {
		return nil, c.writeFailure(ctx, http.MethodPost, endpoint, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return &Response{Object: doc}, nil
}

// Patch updates a document guarded by If-Match. A 412 reports
// ErrEtagMismatch and leaves the connection alone; any other failure
// disconnects the client.
func (c *Client) Patch(ctx context.Context, endpoint, etag string, payload map[string]interface{}) (bool, error) {
	header := http.Header{}
	header.Set("If-Match", etag)

	_, err := c.do(ctx, request{method: http.MethodPatch, path: endpoint, body: payload, header: header, auth: true})
	if err == nil {
		return true, nil
	}
	if StatusCode(err) == http.StatusPreconditionFailed {
		logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Msg("Backend PATCH rejected: etag mismatch")
		return false, fmt.Errorf("%w: PATCH %s: %w", ErrEtagMismatch, endpoint, err)
	}
	return false, c.writeFailure(ctx, http.MethodPatch, endpoint, err)
}

func (c *Client) writeFailure(ctx context.Context, method, endpoint string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNotAuthenticated) {
		return err
	}
	logging.Ctx(ctx).Warn().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Backend write failed")
	c.markDisconnected(err)
	return fmt.Errorf("%w: %s %s: %w", ErrDisconnected, method, endpoint, err)
}
