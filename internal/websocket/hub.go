package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains connected dashboard sessions and fans state snapshots and
// notifications out to all of them.
type Hub struct {
	// Registered sessions (session ID -> Client)
	clients map[string]*Client

	// Outbound frames for all sessions
	broadcast chan *Frame

	// Register requests from sessions
	register chan *Client

	// Unregister requests from sessions
	unregister chan *Client

	// Mutex for thread-safe client map access
	mu sync.RWMutex
}

// Frame is the envelope delivered to dashboard sessions
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *Frame, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("✅ [WEBSOCKET] Dashboard session connected: %s (%s) - %d total", client.ID, client.Email, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
				log.Printf("🔴 [WEBSOCKET] Dashboard session disconnected: %s - %d remaining", client.ID, len(h.clients))
			}
			h.mu.Unlock()

		case frame := <-h.broadcast:
			data, err := json.Marshal(frame)
			if err != nil {
				log.Printf("❌ Failed to marshal frame: %v", err)
				continue
			}

			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Session buffer full, disconnect
					close(client.send)
					delete(h.clients, id)
					log.Printf("⚠️ Session buffer full, disconnecting: %s", id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a typed frame for broadcast to every connected session.
// Satisfies the engine's Publisher and the notifier's Broadcaster.
func (h *Hub) Publish(event string, data interface{}) {
	h.broadcast <- &Frame{Type: event, Data: data}
}

// ClientCount returns the number of connected sessions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
