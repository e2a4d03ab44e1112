package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

// RedisChannel carries live feed frames between instances when NATS is not
// configured.
const RedisChannel = "dashboard_live"

// Hub fans analytics events out to the connected dashboard sockets.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance communication
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

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{"subject": client.Subject})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Dashboard client unregistered", map[string]interface{}{"subject": client.Subject})
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected sockets on this instance.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Frame wraps an event in the envelope the dashboard expects.
func Frame(event events.AnalyticsEvent) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type": "event",
		"data": event,
	})
}

// Publish delivers an event to every dashboard socket. With Redis the frame
// goes through the shared channel so every instance, this one included,
// receives it exactly once; without Redis it is delivered locally.
func (h *Hub) Publish(ctx context.Context, event events.AnalyticsEvent) {
	data, err := Frame(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode live frame", map[string]interface{}{"error": err.Error()})
		return
	}

	if h.rdb != nil {
		err = h.rdb.Publish(ctx, RedisChannel, data).Err()
		if err == nil {
			return
		}
		h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
	}
	h.Deliver(data)
}

// Deliver writes a ready frame to the local sockets only. Slow clients whose
// buffer is full are dropped.
func (h *Hub) Deliver(data []byte) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"subject": client.Subject})
		go func(c *Client) { h.unregister <- c }(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RedisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.Deliver([]byte(msg.Payload))
		}
	}
}
