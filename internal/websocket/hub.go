package websocket

import (
	"sync"

	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// Hub fans live snapshots out to every connected viewer. Viewing is
// public, so clients are anonymous connections rather than user-keyed.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Register, unregister, and broadcast all pass
// through here.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	logger.Debug("Viewer connected", "totalViewers", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		close(client.send)
		logger.Debug("Viewer disconnected", "totalViewers", len(h.clients))
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow consumer; drop the connection rather than block the tick.
			logger.Warn("Viewer send buffer full, disconnecting")
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// Broadcast queues a message for every viewer.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// Viewers returns the current connection count.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
