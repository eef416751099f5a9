package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one live dashboard or billing screen, subscribed to a single mall
type Client struct {
	MallID uuid.UUID
	Conn   Conn
}

// Message is a payload addressed to every client of one mall
type Message struct {
	MallID uuid.UUID
	Data   []byte
}

// broadcastBuffer bounds the events queued for delivery; Publish drops beyond it
const broadcastBuffer = 256

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Message
	mutex      sync.Mutex
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			h.logger.Debug("ws client connected", zap.String("mall_id", client.MallID.String()))

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for client := range h.Clients {
				if client.MallID != message.MallID {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, message.Data); err != nil {
					h.logger.Debug("ws write failed, dropping client", zap.Error(err))
					client.Conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) shutdown() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	close(h.done)
	for client := range h.Clients {
		client.Conn.Close()
		delete(h.Clients, client)
	}
}

// Publish queues payload as JSON for the clients of mallID. Events from one
// caller keep their order. It never blocks: when the queue is full the event
// is dropped and logged.
func (h *Hub) Publish(mallID uuid.UUID, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode ws payload", zap.Error(err))
		return
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.Broadcast <- Message{MallID: mallID, Data: data}:
	default:
		h.logger.Warn("ws broadcast queue full, dropping event", zap.String("mall_id", mallID.String()))
	}
}

// Join registers a client, unless the hub has already stopped
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters a client, unless the hub has already stopped
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount(mallID uuid.UUID) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	n := 0
	for client := range h.Clients {
		if client.MallID == mallID {
			n++
		}
	}
	return n
}
