package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types pushed to connected staff.
const (
	EventComplaintCreated  = "complaint_created"
	EventStatusChanged     = "status_changed"
	EventComplaintReopened = "complaint_reopened"
)

// Event is one complaint lifecycle notification. It only carries enough for
// a dashboard to know its queue is stale; clients re-query for actual state.
type Event struct {
	Type        string    `json:"type"`
	ComplaintID uint64    `json:"complaint_id"`
	Status      string    `json:"status,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Hub manages all connected staff WebSocket clients and fans events out to
// them. Queue state itself is never pushed; membership is always recomputed
// server-side on the next query.
type Hub struct {
	// Registered clients
	Clients map[*Client]bool

	// Broadcast channel for events to all clients
	Broadcast chan *Event

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan *Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Staff client connected: %s (%s)", client.Address, client.Role)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Staff client disconnected: %s", client.Address)

		case event := <-h.Broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("❌ Failed to marshal event: %v", err)
				continue
			}

			h.mu.RLock()
			for client := range h.Clients {
				select {
				case client.Send <- data:
				default:
					// Slow consumer; drop the event rather than block the hub.
					log.Printf("⚠️ Dropping event for slow client %s", client.Address)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Notify queues an event for all connected clients without blocking the
// caller when the hub is saturated.
func (h *Hub) Notify(eventType string, complaintID uint64, status string) {
	event := &Event{
		Type:        eventType,
		ComplaintID: complaintID,
		Status:      status,
		Timestamp:   time.Now(),
	}
	select {
	case h.Broadcast <- event:
	default:
		log.Printf("⚠️ Event channel full, dropping %s for complaint %d", eventType, complaintID)
	}
}
