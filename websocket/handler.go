package websocket

import (
	"context"
	"encoding/json"
	"time"

	"tax-backoffice-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RecentActivitiesKey is the capped redis list holding the last recorded
// activity payloads, replayed to clients when they connect.
const RecentActivitiesKey = "activities:recent"

// WsHandler manages WebSocket requests and connections
type WsHandler struct {
	hub         *Hub
	redisClient *redis.Client
	ctx         context.Context
}

func NewWsHandler(hub *Hub, redisClient *redis.Client, ctx context.Context) *WsHandler {
	return &WsHandler{
		hub:         hub,
		redisClient: redisClient,
		ctx:         ctx,
	}
}

// HandleWebSocket handles incoming WebSocket upgrade requests
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.New(),
			Conn: conn,
			Hub:  h.hub,
			Send: make(chan StreamMessage, 64),
		}

		h.hub.register <- client
		defer func() {
			h.hub.unregister <- client
			conn.Close()
		}()

		h.replayRecent(client)

		go h.writePump(client)

		// Read loop only services control frames; the stream is one-way.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})(c)
}

// replayRecent pushes the buffered recent activities to a newly connected
// client so its feed is not empty until the next event.
func (h *WsHandler) replayRecent(client *Client) {
	if h.redisClient == nil {
		return
	}

	entries, err := h.redisClient.LRange(h.ctx, RecentActivitiesKey, 0, -1).Result()
	if err != nil {
		config.Logger.Warn("Failed to load recent activities for replay", zap.Error(err))
		return
	}

	// Entries are stored newest-first; replay oldest-first.
	for i := len(entries) - 1; i >= 0; i-- {
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(entries[i]), &payload); err != nil {
			continue
		}
		select {
		case client.Send <- StreamMessage{
			Type:      MessageTypeReplay,
			Payload:   payload,
			Timestamp: time.Now(),
		}:
		default:
			return
		}
	}
}

func (h *WsHandler) writePump(client *Client) {
	for message := range client.Send {
		if err := client.Conn.WriteJSON(message); err != nil {
			config.Logger.Warn("WebSocket write failed, dropping client",
				zap.String("clientID", client.ID.String()),
				zap.Error(err),
			)
			return
		}
	}
}
