// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/alignak-watch/internal/logging"
	"github.com/tomtom215/alignak-watch/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types handled by the hub itself. Bus events keep their topic
// as message type (synthesis.diff, action.completed, ...).
const (
	MessageTypePing       = "ping"
	MessageTypePong       = "pong"
	MessageTypeEvent      = "event"
	MessageTypeSnapshot   = "snapshot"
	MessageTypeSubscribe  = "subscribe"
	MessageTypeSubscribed = "subscribed"
	MessageTypeError      = "error"
)

const (
	broadcastBuffer = 256
	requestBuffer   = 64
)

// SnapshotFunc returns the current monitoring state sent to a client on
// connect and on request.
type SnapshotFunc func() interface{}

// Message represents a WebSocket message
type Message struct {
	Type          string      `json:"type"`
	Timestamp     time.Time   `json:"timestamp,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Data          interface{} `json:"data"`
}

// Request is a message sent by a client.
//
//	{"type":"subscribe","topics":["synthesis.diff","backend.connection"]}
type Request struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics,omitempty"`
}

type clientRequest struct {
	client *Client
	req    Request
}

// Hub keeps the connected clients. Only the RunWithContext goroutine sends
// on or closes a client's send channel.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	requests   chan clientRequest
	Register   chan *Client
	Unregister chan *Client
	snapshot   SnapshotFunc
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, broadcastBuffer),
		requests:   make(chan clientRequest, requestBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// SetSnapshotSource installs the state pushed to clients as a "snapshot"
// message when they connect or send {"type":"snapshot"}.
func (h *Hub) SetSnapshotSource(fn SnapshotFunc) {
	h.mu.Lock()
	h.snapshot = fn
	h.mu.Unlock()
}

// RunWithContext runs the hub until ctx is canceled, then closes every
// client and returns ctx.Err(). It is run under suture supervision.
//
// DETERMINISM: Uses priority-based selection:
// - Priority 1: Context cancellation (shutdown)
// - Priority 2: Client lifecycle events (Register/Unregister)
// - Priority 3: Broadcast messages
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: Check for shutdown (non-blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: Handle client lifecycle events (non-blocking check)
		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		// Priority 3: Handle broadcast messages or wait for any event
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case r := <-h.requests:
			h.handleRequest(r)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) register(client *Client) {
	welcome, hasSnapshot := h.snapshotMessage()

	h.mu.Lock()
	h.clients[client] = true
	if hasSnapshot {
		h.deliver(client, welcome)
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(count))
	logging.Info().Uint64("client_id", client.id).Int("total_clients", count).Msg("websocket client connected")
}

func (h *Hub) snapshotMessage() (Message, bool) {
	h.mu.RLock()
	fn := h.snapshot
	h.mu.RUnlock()
	if fn == nil {
		return Message{}, false
	}
	return Message{Type: MessageTypeSnapshot, Timestamp: time.Now().UTC(), Data: fn()}, true
}

// submit queues a client request for the hub goroutine. It never blocks;
// requests beyond the buffer are dropped.
func (h *Hub) submit(c *Client, req Request) {
	select {
	case h.requests <- clientRequest{client: c, req: req}:
	default:
		logging.Warn().Uint64("client_id", c.id).Str("request", req.Type).Msg("websocket request queue full, dropping request")
	}
}

// handleRequest answers one client request. Requests from clients that
// already left are ignored.
func (h *Hub) handleRequest(r clientRequest) {
	var reply Message
	switch r.req.Type {
	case MessageTypePing:
		reply = Message{Type: MessageTypePong}
	case MessageTypeSnapshot:
		msg, ok := h.snapshotMessage()
		if !ok {
			reply = Message{Type: MessageTypeError, Data: map[string]string{"message": "no snapshot available"}}
			break
		}
		reply = msg
	case MessageTypeSubscribe:
		reply = Message{Type: MessageTypeSubscribed, Data: map[string][]string{"topics": r.req.Topics}}
	default:
		reply = Message{Type: MessageTypeError, Data: map[string]string{"message": "unknown request type: " + r.req.Type}}
	}
	if reply.Timestamp.IsZero() {
		reply.Timestamp = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[r.client] {
		return
	}
	if r.req.Type == MessageTypeSubscribe {
		r.client.subscribe(r.req.Topics)
	}
	h.deliver(r.client, reply)
}

// deliver sends to one client without blocking. Caller holds h.mu.
func (h *Hub) deliver(client *Client, message Message) bool {
	select {
	case client.send <- message:
		metrics.WSMessagesSent.Inc()
		return true
	default:
		return false
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(count))
	logging.Info().Int("total_clients", count).Msg("websocket client disconnected")
}

// logGracefulShutdown closes all clients and logs the shutdown.
//
// Note: ctx.Err() is NOT logged as an error because context cancellation
// is expected behavior during graceful shutdown.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns the clients in id order. Caller holds h.mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients sends a message to every subscribed client in id
// order. A client whose send buffer is full is dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClients() {
		if !client.wants(message.Type) {
			continue
		}
		if !h.deliver(client, message) {
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSMessagesDropped.Inc()
		logging.Warn().Uint64("client_id", client.id).Msg("dropping slow websocket client")
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

// closeAllClients closes every client in id order.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// enqueue hands a message to the hub without blocking.
func (h *Hub) enqueue(message Message) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		metrics.WSMessagesDropped.Inc()
		logging.Warn().Str("message_type", message.Type).Msg("broadcast channel full, dropping message")
		return false
	}
}

func (h *Hub) broadcastJSON(messageType string, data interface{}) {
	h.enqueue(Message{
		Type:      messageType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// BroadcastSnapshot pushes the current snapshot to every client, e.g. after
// a manual refresh. It is a no-op without a snapshot source.
func (h *Hub) BroadcastSnapshot() {
	h.mu.RLock()
	fn := h.snapshot
	h.mu.RUnlock()
	if fn != nil {
		h.broadcastJSON(MessageTypeSnapshot, fn())
	}
}

// rawEvent is the envelope of an encoded bus event.
type rawEvent struct {
	Type          string          `json:"type"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// BroadcastRaw broadcasts an encoded bus event. The event type becomes the
// message type. Payloads that are not an event envelope are sent as
// MessageTypeEvent with the raw document as data.
func (h *Hub) BroadcastRaw(data []byte) {
	var ev rawEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		logging.Warn().Err(err).Msg("failed to unmarshal raw event for broadcast")
		return
	}

	if ev.Type == "" {
		h.enqueue(Message{Type: MessageTypeEvent, Data: json.RawMessage(data)})
		return
	}
	h.enqueue(Message{
		Type:          ev.Type,
		Timestamp:     ev.Timestamp,
		CorrelationID: ev.CorrelationID,
		Data:          ev.Data,
	})
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
