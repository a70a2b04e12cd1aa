package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope for both directions of the socket.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client wraps a websocket connection with a write lock. gorilla/websocket
// permits at most one concurrent writer per connection.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Event{Event: event, Data: data})
}

func (c *Client) ReadEvent(v *Event) error {
	return c.conn.ReadJSON(v)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
