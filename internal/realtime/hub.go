// Package realtime fans notification pushes out to connected clients over
// server-sent events. Each subscriber gets a buffered channel; slow clients
// drop messages rather than block the publisher.
package realtime

import (
	"sync"
)

const subscriberBuffer = 16

// Message is one push to a connected client. Event becomes the SSE event
// name, Data the JSON payload.
type Message struct {
	Event string
	Data  []byte
}

type subscriber struct {
	userID string
	admin  bool
	ch     chan Message
}

// Hub tracks connected subscribers and routes messages to them.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a client. Admin subscribers receive both their own
// user messages and admin broadcasts. The returned cancel func must be
// called when the client disconnects.
func (h *Hub) Subscribe(userID string, admin bool) (<-chan Message, func()) {
	sub := &subscriber{
		userID: userID,
		admin:  admin,
		ch:     make(chan Message, subscriberBuffer),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// PublishUser sends a message to every connection belonging to one user.
func (h *Hub) PublishUser(userID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if sub.userID == userID {
			deliver(sub, msg)
		}
	}
}

// PublishAdmin broadcasts a message to every admin connection.
func (h *Hub) PublishAdmin(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if sub.admin {
			deliver(sub, msg)
		}
	}
}

// Subscribers reports the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func deliver(sub *subscriber, msg Message) {
	select {
	case sub.ch <- msg:
	default:
		// Buffer full, drop. The client still has the stored record.
	}
}
