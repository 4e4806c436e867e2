package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sortegrande/raffle-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the event envelope pushed to display collaborators: the
// event name plus a full board snapshot. Draw lifecycle shows up as
// "draw_started" / "draw_resolved" so the client can run its animation
// against the real Drawing window.
type wsMessage struct {
	Type  string      `json:"type"`
	State *BoardState `json:"state"`
}

// Hub fans engine state changes out to connected websocket clients. The
// realtime stream is read-only: all mutation goes through the REST API.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	engine  *RaffleEngine
}

func NewHub(engine *RaffleEngine) *Hub {
	h := &Hub{
		clients: make(map[*Client]bool),
		engine:  engine,
	}
	engine.SetNotifier(h.Broadcast)
	return h
}

// HandleWebSocket upgrades the connection, registers the client and
// sends an initial snapshot.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("ws: upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 32),
	}
	h.addClient(client)

	go client.writePump()
	go client.readPump()

	client.enqueue(h.marshalEvent("snapshot"))
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	logger.Infof("ws: client connected (total=%d)", count)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		c.Close()
	}
	h.mu.Unlock()
}

// Broadcast pushes the named event with a fresh snapshot to every
// client. Slow clients get dropped messages, never a blocked engine.
func (h *Hub) Broadcast(event string) {
	payload := h.marshalEvent(event)

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(payload)
	}
}

func (h *Hub) marshalEvent(event string) []byte {
	state := h.engine.BoardState()
	payload, err := json.Marshal(wsMessage{Type: event, State: &state})
	if err != nil {
		logger.Warnf("ws: marshal %s: %v", event, err)
		return nil
	}
	return payload
}
