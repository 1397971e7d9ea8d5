// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/alignak-watch/internal/logging"
)

// Broadcaster receives encoded events, e.g. the WebSocket hub.
type Broadcaster interface {
	BroadcastRaw(data []byte)
}

// Subscriber is the subscribing half of the bus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Forwarder relays every bus topic to a Broadcaster. It implements
// suture.Service.
type Forwarder struct {
	sub    Subscriber
	out    Broadcaster
	topics []string
}

// NewForwarder creates a forwarder for topics, or for AllTopics if none
// are given.
func NewForwarder(sub Subscriber, out Broadcaster, topics ...string) *Forwarder {
	if len(topics) == 0 {
		topics = AllTopics
	}
	return &Forwarder{sub: sub, out: out, topics: topics}
}

// Serve implements suture.Service. If any topic fails to subscribe, the
// topics already subscribed are stopped before the error is returned.
func (f *Forwarder) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, topic := range f.topics {
		msgs, err := f.sub.Subscribe(ctx, topic)
		if err != nil {
			cancel()
			wg.Wait()
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.forward(ctx, topic, msgs)
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

// String implements fmt.Stringer for suture logging.
func (f *Forwarder) String() string {
	return "event-forwarder"
}

func (f *Forwarder) forward(ctx context.Context, topic string, msgs <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			f.out.BroadcastRaw(msg.Payload)
			msg.Ack()
			logging.Debug().Str("topic", topic).Str("message_id", msg.UUID).Msg("Event forwarded")
		}
	}
}
