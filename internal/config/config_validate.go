// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/alignak-watch/internal/models"
	"github.com/tomtom215/alignak-watch/internal/validation"
)

// Validate checks struct tags first, then cross-field rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateBackend(); err != nil {
		return err
	}

	if err := c.validatePoll(); err != nil {
		return err
	}

	return c.validateActions()
}

// validateBackend rejects backend URLs carrying a query or credentials.
func (c *Config) validateBackend() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("ALIGNAK_URL is not a valid URL: %w", err)
	}
	if u.User != nil {
		return fmt.Errorf("ALIGNAK_URL must not embed credentials; use ALIGNAK_USERNAME/ALIGNAK_PASSWORD")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("ALIGNAK_URL must not contain a query or fragment")
	}
	if c.Backend.Token != "" && c.Backend.Password != "" {
		return fmt.Errorf("ALIGNAK_TOKEN and ALIGNAK_PASSWORD are mutually exclusive")
	}
	return nil
}

// validatePoll requires the fetch timeout to fit inside every poll interval,
// so a stalled fetch cannot overlap its own next tick.
func (c *Config) validatePoll() error {
	var tooShort []string
	for _, rt := range models.AllResourceTypes {
		if interval := c.Poll.Interval(rt); c.Poll.FetchTimeout >= interval {
			tooShort = append(tooShort, fmt.Sprintf("%s=%s", rt, interval))
		}
	}
	if len(tooShort) > 0 {
		return fmt.Errorf("POLL_FETCH_TIMEOUT (%s) must be shorter than every poll interval: %s",
			c.Poll.FetchTimeout, strings.Join(tooShort, ", "))
	}
	// A GET may be attempted twice within one fetch.
	if 2*c.Backend.RequestTimeout > c.Poll.FetchTimeout {
		return fmt.Errorf("POLL_FETCH_TIMEOUT (%s) must allow two attempts of ALIGNAK_REQUEST_TIMEOUT (%s)",
			c.Poll.FetchTimeout, c.Backend.RequestTimeout)
	}
	return nil
}

func (c *Config) validateActions() error {
	if c.Actions.MaxAge > 0 && c.Actions.MaxAge < c.Actions.CheckInterval {
		return fmt.Errorf("ACTIONS_MAX_AGE (%s) must be 0 or at least ACTIONS_CHECK_INTERVAL (%s)",
			c.Actions.MaxAge, c.Actions.CheckInterval)
	}
	return nil
}
