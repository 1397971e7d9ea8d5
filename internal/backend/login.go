// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package backend

import (
	"context"
	"net/http"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
)

// Credentials identify the backend user. An empty Password means Username
// holds a session token.
type Credentials struct {
	Username string
	Password string
}

// Mode returns "password" or "token".
func (c Credentials) Mode() string {
	if c.Password == "" {
		return "token"
	}
	return "password"
}

// Login authenticates and stores the session token. It never returns an
// error: failures are logged and reported as false.
func (c *Client) Login(ctx context.Context, creds Credentials) bool {
	mode := creds.Mode()

	var ok bool
	if mode == "password" {
		ok = c.loginPassword(ctx, creds)
	} else {
		ok = c.loginToken(ctx, creds.Username)
	}

	if !ok {
		metrics.BackendLogins.WithLabelValues(mode, "failure").Inc()
		c.connected.Store(false)
		metrics.SetBackendConnected(false)
		return false
	}

	metrics.BackendLogins.WithLabelValues(mode, "success").Inc()
	c.setConnected()
	logging.Ctx(ctx).Info().
		Str("mode", mode).
		Str("token", logging.SanitizeToken(c.Token())).
		Msg("Logged in to Alignak backend")
	return true
}

func (c *Client) loginPassword(ctx context.Context, creds Credentials) bool {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "login",
		body: map[string]string{
			"username": creds.Username,
			"password": creds.Password,
		},
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("username", creds.Username).Msg("Backend login failed")
		return false
	}

	doc, err := decodeDocument(data)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Backend login returned an unreadable body")
		return false
	}
	token, _ := doc["token"].(string)
	if token == "" {
		logging.Ctx(ctx).Warn().Msg("Backend login response carries no token")
		return false
	}

	c.mu.Lock()
	c.token = token
	c.username = creds.Username
	c.mu.Unlock()
	return true
}

func (c *Client) loginToken(ctx context.Context, token string) bool {
	if token == "" {
		logging.Ctx(ctx).Warn().Msg("Backend login without username or token")
		return false
	}

	c.mu.Lock()
	c.token = token
	c.username = ""
	c.mu.Unlock()

	where := Query{Where: map[string]interface{}{"token": token}}
	params, err := where.Values()
	if err != nil {
		return false
	}
	// Single attempt; the reconnector owns retries.
	data, err := c.do(ctx, request{method: http.MethodGet, path: "user", query: params, auth: true})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("token", logging.SanitizeToken(token)).Msg("Backend token validation failed")
		return false
	}
	resp, err := parseCollection(data)
	if err != nil || len(resp.Items) == 0 {
		logging.Ctx(ctx).Warn().Str("token", logging.SanitizeToken(token)).Msg("Backend token matches no user")
		return false
	}
	return true
}
