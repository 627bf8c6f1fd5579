package queue

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a display connection with a write lock. The refresher, every
// barber-action publish and the initial snapshot write can all target the
// same connection at once, and gorilla/websocket forbids overlapping writers.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(message)
}

// Hub fans queue snapshots out to connected display clients. Unlike a chat
// hub there can be many viewers per barber, so subscriptions are sets keyed
// by barber id.
type Hub struct {
	mutex       sync.RWMutex
	subscribers map[int64]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*websocket.Conn]*client),
	}
}

func (h *Hub) Subscribe(barberID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, exists := h.subscribers[barberID]
	if !exists {
		set = make(map[*websocket.Conn]*client)
		h.subscribers[barberID] = set
	}
	set[conn] = &client{conn: conn}
}

func (h *Hub) Unsubscribe(barberID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if set, exists := h.subscribers[barberID]; exists {
		if _, ok := set[conn]; ok {
			_ = conn.Close()
			delete(set, conn)
		}
		if len(set) == 0 {
			delete(h.subscribers, barberID)
		}
	}
}

// Send writes one message to a single subscribed connection under its write
// lock. Connections the hub does not know are ignored.
func (h *Hub) Send(barberID int64, conn *websocket.Conn, message interface{}) {
	h.mutex.RLock()
	c := h.subscribers[barberID][conn]
	h.mutex.RUnlock()

	if c == nil {
		return
	}
	if err := c.write(message); err != nil {
		h.Unsubscribe(barberID, conn)
	}
}

// Publish sends the message to every viewer of the barber's queue. Dead
// connections are dropped on write failure.
func (h *Hub) Publish(barberID int64, message interface{}) {
	h.mutex.RLock()
	clients := make([]*client, 0, len(h.subscribers[barberID]))
	for _, c := range h.subscribers[barberID] {
		clients = append(clients, c)
	}
	h.mutex.RUnlock()

	for _, c := range clients {
		if err := c.write(message); err != nil {
			h.Unsubscribe(barberID, c.conn)
		}
	}
}

// ActiveBarbers lists barbers that currently have at least one viewer.
func (h *Hub) ActiveBarbers() []int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	ids := make([]int64, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	return ids
}

func (h *Hub) ViewerCount(barberID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers[barberID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for barberID, set := range h.subscribers {
		for _, c := range set {
			_ = c.conn.Close()
		}
		delete(h.subscribers, barberID)
	}
}
