// Package learn serves the local learning platform over HTTP with live
// reload, and resolves its on-disk location.
package learn

import (
	"sync"
	"time"
)

// Event is a single message streamed to connected platform pages.
type Event struct {
	Type      string    `json:"type"`           // "reload" or "connected"
	Path      string    `json:"path,omitempty"` // changed file for reload events
	Timestamp time.Time `json:"timestamp"`
}

// NewReloadEvent creates a reload event for a changed file.
func NewReloadEvent(path string) Event {
	return Event{Type: "reload", Path: path, Timestamp: time.Now()}
}

// Hub manages SSE client subscriptions and broadcasts events.
// thread-safe for concurrent subscribe/unsubscribe/broadcast operations.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

// Subscribe adds a client channel to receive events.
// the returned channel is buffered to absorb bursts of filesystem events.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

// Unsubscribe removes a client channel and closes it.
// safe to call multiple times with the same channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Broadcast sends an event to all subscribed clients.
// uses non-blocking send so a slow client cannot block the broadcast;
// events are dropped for clients with full buffers.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- e:
		default: // client buffer full, drop event
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close unsubscribes all clients and closes their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}
