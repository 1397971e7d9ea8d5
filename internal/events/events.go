// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Bus topics.
const (
	TopicSynthesisDiff     = "synthesis.diff"
	TopicActionCompleted   = "action.completed"
	TopicActionExpired     = "action.expired"
	TopicBackendConnection = "backend.connection"
)

// AllTopics lists every topic carried by the bus.
var AllTopics = []string{
	TopicSynthesisDiff,
	TopicActionCompleted,
	TopicActionExpired,
	TopicBackendConnection,
}

// Event is the payload of every bus message.
type Event struct {
	Type          string          `json:"type"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// ConnectionChange is the data of a backend.connection event.
type ConnectionChange struct {
	Connected bool   `json:"connected"`
	Reason    string `json:"reason,omitempty"`
}

// Decode parses the Event carried by a message.
func Decode(msg *message.Message) (Event, error) {
	var ev Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return ev, nil
}

// DecodeData unmarshals the event data into v.
func (e Event) DecodeData(v interface{}) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode %s data: %w", e.Type, err)
	}
	return nil
}
