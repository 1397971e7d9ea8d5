// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package backend

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// Meta is the Eve _meta block of a collection response.
type Meta struct {
	Page       int `json:"page"`
	MaxResults int `json:"max_results"`
	Total      int `json:"total"`
}

// Response is a decoded backend response. Collection reads fill Items and
// Meta; single-document reads and writes fill Object.
type Response struct {
	Items  []map[string]interface{}
	Meta   Meta
	Links  map[string]interface{}
	Object map[string]interface{}
}

// Models converts Items to models.Item, preserving order.
func (r *Response) Models() []models.Item {
	if r == nil {
		return nil
	}
	out := make([]models.Item, 0, len(r.Items))
	for _, doc := range r.Items {
		out = append(out, models.ItemFromMap(doc))
	}
	return out
}

// Item converts Object to a models.Item.
func (r *Response) Item() models.Item {
	if r == nil {
		return models.Item{}
	}
	return models.ItemFromMap(r.Object)
}

// Href returns _links.self.href of Object, the handle used to poll a
// submitted action.
func (r *Response) Href() string {
	if r == nil {
		return ""
	}
	links, ok := r.Object["_links"].(map[string]interface{})
	if !ok {
		return ""
	}
	self, ok := links["self"].(map[string]interface{})
	if !ok {
		return ""
	}
	href, _ := self["href"].(string)
	return href
}

// parseCollection splits an Eve collection document.
func parseCollection(data []byte) (*Response, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	resp := &Response{Object: doc}

	if raw, ok := doc["_items"]; ok {
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected _items type %T", raw)
		}
		resp.Items = make([]map[string]interface{}, 0, len(list))
		for _, elem := range list {
			if m, ok := elem.(map[string]interface{}); ok {
				resp.Items = append(resp.Items, m)
			}
		}
	}

	if raw, ok := doc["_meta"].(map[string]interface{}); ok {
		resp.Meta = Meta{
			Page:       intField(raw, "page"),
			MaxResults: intField(raw, "max_results"),
			Total:      intField(raw, "total"),
		}
	}

	if links, ok := doc["_links"].(map[string]interface{}); ok {
		resp.Links = links
	}

	return resp, nil
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		i, _ := v.Int64()
		return int(i)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
