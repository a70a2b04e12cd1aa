package ws

import (
	"sync"
)

// Hub is the in-process registry of live connections. A delivered-message
// guarantee only holds while the recipient's connection lives in this
// process; there is no cross-instance fan-out.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Client
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Client)}
}

// Register binds a user to their connection. A newer connection replaces
// the previous one.
func (h *Hub) Register(userID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userID] = c
}

// Unregister drops the binding, but only if c is still the active
// connection; a stale close must not evict a fresh connection.
func (h *Hub) Unregister(userID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == c {
		delete(h.conns, userID)
	}
}

// Get returns the live connection for userID, if any.
func (h *Hub) Get(userID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[userID]
	return c, ok
}

// Deliver pushes an event to userID's live connection, if there is one.
// Best effort: returns false when the user is offline or the write fails.
func (h *Hub) Deliver(userID, event string, data any) bool {
	c, ok := h.Get(userID)
	if !ok {
		return false
	}
	return c.Send(event, data) == nil
}
