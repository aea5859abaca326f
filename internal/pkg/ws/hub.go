package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/observability"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced by the router; the browser client shares
		// the frontend origin.
		return true
	},
}

// Event is the outbound envelope pushed to connected clients.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is one websocket connection belonging to a user. A user may hold
// several connections (multiple tabs/devices).
type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub routes events to connected users. Connection liveness doubles as the
// presence heartbeat: every pong and inbound frame refreshes the user's
// last-seen timestamp through the heartbeat callback.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]map[*Client]struct{}
	onHeartbeat func(userID string)
}

// NewHub creates a hub. onHeartbeat may be nil.
func NewHub(onHeartbeat func(userID string)) *Hub {
	return &Hub{
		clients:     make(map[string]map[*Client]struct{}),
		onHeartbeat: onHeartbeat,
	}
}

// Serve upgrades the request and starts the read/write pumps for userID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	h.register(client)
	go client.writePump()
	go client.readPump()
}

// SendToUser pushes an event to every connection the user has. Connections
// with a full buffer are skipped rather than blocking the sender.
func (h *Hub) SendToUser(userID string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("ws marshal event failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// IsConnected reports whether the user has at least one live connection.
func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	h.mu.Unlock()

	observability.WSConnections.Inc()
	h.heartbeat(client.userID)
	slog.Debug("ws client connected", "user_id", client.userID)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}
			observability.WSConnections.Dec()
		}
	}
	h.mu.Unlock()
	slog.Debug("ws client disconnected", "user_id", client.userID)
}

func (h *Hub) heartbeat(userID string) {
	if h.onHeartbeat != nil {
		h.onHeartbeat(userID)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.hub.heartbeat(c.userID)
		return nil
	})

	for {
		// Inbound frames are heartbeats only; messages are sent over REST
		// so they are persisted before fan-out.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
		c.hub.heartbeat(c.userID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
