// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("event bus closed")

// Bus is the in-process event bus. Events are delivered to every
// subscriber of a topic; events published with no subscriber are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu           sync.RWMutex
	closed       bool
	mirror       message.Publisher
	mirrorPrefix string

	now func() time.Time
}

// NewBus creates a bus. buffer is the per-subscriber channel size.
func NewBus(buffer int64) *Bus {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger("events"))
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: buffer,
		}, logger),
		logger: logger,
		now:    time.Now,
	}
}

// Logger returns the watermill logger of the bus.
func (b *Bus) Logger() watermill.LoggerAdapter {
	return b.logger
}

// SetMirror republishes every event to pub under "<prefix>.<topic>".
// The bus closes the mirror on Close.
func (b *Bus) SetMirror(pub message.Publisher, prefix string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mirror = pub
	b.mirrorPrefix = prefix
}

// Publish wraps data in an Event and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, data interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	raw, err := json.Marshal(data)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("encode %s data: %w", topic, err)
	}
	payload, err := json.Marshal(Event{
		Type:          topic,
		Timestamp:     b.now().UTC(),
		CorrelationID: logging.CorrelationIDFromContext(ctx),
		Data:          raw,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.EventsPublished.WithLabelValues(topic, "success").Inc()

	if b.mirror != nil {
		mirrored := message.NewMessage(msg.UUID, payload)
		if err := b.mirror.Publish(b.mirrorPrefix+"."+topic, mirrored); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("Failed to mirror event")
		}
	}
	return nil
}

// Subscribe returns the messages of topic until ctx is canceled. Every
// message must be acked.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus and its mirror down. Subscriber channels are closed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if b.mirror != nil {
		if err := b.mirror.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mirror: %w", err))
		}
	}
	if err := b.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pubsub: %w", err))
	}
	return errors.Join(errs...)
}
