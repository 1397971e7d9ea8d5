// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

import "sort"

// Backend document fields used across the sync core.
const (
	FieldID           = "_id"
	FieldEtag         = "_etag"
	FieldName         = "name"
	FieldAlias        = "alias"
	FieldHost         = "host"
	FieldState        = "ls_state"
	FieldStateType    = "ls_state_type"
	FieldAcknowledged = "ls_acknowledged"
	FieldDowntimed    = "ls_downtimed"
	FieldProcessed    = "processed"
)

// Item is a generic monitored entity: a host, service, daemon, live-synthesis
// realm, user or history entry. Data holds every projected backend field,
// including _id and _etag.
type Item struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Data map[string]Value `json:"data"`
}

// ItemFromMap builds an Item from a decoded backend document.
// Name falls back to alias, then to the id. Null fields are dropped.
func ItemFromMap(doc map[string]interface{}) Item {
	item := Item{Data: make(map[string]Value, len(doc))}
	for key, raw := range doc {
		if v, ok := ValueFrom(raw); ok {
			item.Data[key] = v
		}
	}

	item.ID = item.Data[FieldID].String()
	item.Name = item.Data[FieldName].AsString()
	if item.Name == "" {
		item.Name = item.Data[FieldAlias].AsString()
	}
	if item.Name == "" {
		item.Name = item.ID
	}
	return item
}

// Get returns the field value and whether it is present.
func (i Item) Get(key string) (Value, bool) {
	v, ok := i.Data[key]
	return v, ok
}

// String returns a string field, or "" when missing.
func (i Item) String(key string) string {
	return i.Data[key].AsString()
}

// Int returns a numeric field. Missing or non-numeric fields count as 0.
func (i Item) Int(key string) int {
	return int(i.Data[key].AsInt())
}

// Bool returns a boolean field, false when missing.
func (i Item) Bool(key string) bool {
	return i.Data[key].AsBool()
}

// Strings returns a list field, nil when missing.
func (i Item) Strings(key string) []string {
	return i.Data[key].AsStrings()
}

// Etag returns the backend concurrency token used for If-Match.
func (i Item) Etag() string {
	return i.String(FieldEtag)
}

// Clone returns a deep copy of i.
func (i Item) Clone() Item {
	out := Item{ID: i.ID, Name: i.Name, Data: make(map[string]Value, len(i.Data))}
	for k, v := range i.Data {
		if v.kind == KindStrings {
			v = StringsValue(v.l)
		}
		out.Data[k] = v
	}
	return out
}

// Keys returns the data keys in sorted order.
func (i Item) Keys() []string {
	keys := make([]string, 0, len(i.Data))
	for k := range i.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
