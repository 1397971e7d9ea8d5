// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package backend

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

// Query holds the Eve query parameters of a collection GET.
type Query struct {
	// Where is JSON-encoded into the where parameter, e.g. {"_is_template": false}.
	Where map[string]interface{}
	// Projection lists the fields to include.
	Projection []string
	// Sort is an Eve sort expression, e.g. "-_id".
	Sort string
	// MaxResults overrides the client page size when > 0.
	MaxResults int
	// Page selects a page when > 0.
	Page int
}

// Values encodes q as URL query parameters.
func (q Query) Values() (url.Values, error) {
	v := url.Values{}

	if len(q.Where) > 0 {
		where, err := json.Marshal(q.Where)
		if err != nil {
			return nil, fmt.Errorf("encode where: %w", err)
		}
		v.Set("where", string(where))
	}

	if p := projectionParam(q.Projection); p != "" {
		v.Set("projection", p)
	}

	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.MaxResults > 0 {
		v.Set("max_results", strconv.Itoa(q.MaxResults))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	return v, nil
}

// projectionParam renders a field list as an Eve inclusion map: {"name":1,...}.
func projectionParam(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	m := make(map[string]int, len(fields))
	for _, f := range fields {
		m[f] = 1
	}
	data, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(data)
}
