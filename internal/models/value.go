// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ValueKind identifies which of the closed set of kinds a Value holds.
type ValueKind uint8

const (
	// KindInvalid is the zero Value.
	KindInvalid ValueKind = iota
	// KindString holds a string.
	KindString
	// KindInt holds an integer.
	KindInt
	// KindBool holds a boolean.
	KindBool
	// KindStrings holds a list of strings.
	KindStrings
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStrings:
		return "strings"
	default:
		return "invalid"
	}
}

// Value is a single backend field value. The Alignak backend serves
// schema-less documents whose shape depends on the projection requested,
// so items keep their fields as a map of Values rather than fixed structs.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	b    bool
	l    []string
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringsValue wraps a list of strings. The slice is copied.
func StringsValue(l []string) Value {
	return Value{kind: KindStrings, l: append([]string{}, l...)}
}

// Kind returns the kind held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v holds any value.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsString returns the string held by v, or "" for other kinds.
func (v Value) AsString() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// AsInt returns the integer held by v. Numeric strings are parsed;
// anything else yields 0.
func (v Value) AsInt() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindString:
		if n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

// AsBool returns the boolean held by v, or false for other kinds.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.b
}

// AsStrings returns a copy of the list held by v, or nil for other kinds.
func (v Value) AsStrings() []string {
	if v.kind != KindStrings {
		return nil
	}
	return append([]string{}, v.l...)
}

// String renders v for display.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindStrings:
		return strings.Join(v.l, ",")
	default:
		return ""
	}
}

// Equal reports whether v and o hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindStrings:
		if len(v.l) != len(o.l) {
			return false
		}
		for i := range v.l {
			if v.l[i] != o.l[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON encodes v in its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindStrings:
		if v.l == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.l)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value into the closed kind set.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	parsed, _ := ValueFrom(raw)
	*v = parsed
	return nil
}

// ValueFrom converts a decoded JSON value into a Value.
//
// Mapping: strings, booleans and integral numbers keep their kind;
// non-integral numbers become strings; arrays become string lists
// (non-string elements are rendered as compact JSON); objects become
// their compact JSON text. It returns false for null.
func ValueFrom(raw interface{}) (Value, bool) {
	switch t := raw.(type) {
	case nil:
		return Value{}, false
	case string:
		return StringValue(t), true
	case bool:
		return BoolValue(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntValue(i), true
		}
		if f, err := t.Float64(); err == nil {
			return numberValue(f), true
		}
		return StringValue(t.String()), true
	case float64:
		return numberValue(t), true
	case int:
		return IntValue(int64(t)), true
	case int64:
		return IntValue(t), true
	case []string:
		return StringsValue(t), true
	case []interface{}:
		list := make([]string, 0, len(t))
		for _, elem := range t {
			if s, ok := elem.(string); ok {
				list = append(list, s)
				continue
			}
			list = append(list, compactJSON(elem))
		}
		return Value{kind: KindStrings, l: list}, true
	default:
		return StringValue(compactJSON(t)), true
	}
}

func numberValue(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return IntValue(int64(f))
	}
	return StringValue(strconv.FormatFloat(f, 'g', -1, 64))
}

func compactJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
