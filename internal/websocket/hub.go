package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"civicmap-be/internal/entity"
	"civicmap-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// redisChannel carries map events between instances so every connected
// viewer sees new pins and toggles regardless of which node holds the
// socket.
const redisChannel = "map_events"

// Hub fans map events out to connected viewers. Viewers may be
// anonymous; there is no per-user targeting, every event goes to every
// open socket.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fanout, nil in single-node setups
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Viewer connected", map[string]interface{}{"connections": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Viewer disconnected", map[string]interface{}{"connections": count})
		}
	}
}

// BroadcastMentionCreated pushes a freshly created pin to all viewers.
func (h *Hub) BroadcastMentionCreated(mention *entity.Mention) {
	h.broadcast("mention_created", map[string]interface{}{
		"id":        mention.Id.String(),
		"title":     mention.Title,
		"latitude":  mention.Latitude,
		"longitude": mention.Longitude,
	})
}

// BroadcastSystemToggled tells open clients a feature area changed
// state so they can refresh their navigation without a reload.
func (h *Hub) BroadcastSystemToggled(systemKey string, isVisible, isEnabled bool) {
	h.broadcast("system_toggled", map[string]interface{}{
		"system_key": systemKey,
		"is_visible": isVisible,
		"is_enabled": isEnabled,
	})
}

func (h *Hub) broadcast(eventType string, payload map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})

	h.sendToLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), redisChannel, data)
	}
}

func (h *Hub) sendToLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection rather than block the hub
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.sendToLocal([]byte(msg.Payload))
	}
	log.Println("map_events subscription closed")
}
