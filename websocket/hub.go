package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeActivity MessageType = "ACTIVITY"
	MessageTypeReplay   MessageType = "ACTIVITY_REPLAY"
	MessageTypeError    MessageType = "ERROR"
)

type StreamMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Hub  *Hub
	Send chan StreamMessage
}

// Hub fans recorded activity events out to every connected back-office
// dashboard.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan StreamMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan StreamMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(message StreamMessage) {
	h.broadcast <- message
}

func (h *Hub) broadcastToAll(message StreamMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// Slow consumer: drop the message rather than block the hub.
		}
	}
}
