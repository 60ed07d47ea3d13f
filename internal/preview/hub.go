package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/ember/pkg/host/memdom"
)

// MessageType identifies a message sent to preview clients.
type MessageType string

const (
	// MessageSnapshot carries the full markup and is sent on connect.
	MessageSnapshot MessageType = "snapshot"
	// MessagePatch carries the mutations of one dispatch and the markup
	// after them.
	MessagePatch MessageType = "patch"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type MessageType `json:"type"`
	Ops  []memdom.Op `json:"ops,omitempty"`
	HTML string      `json:"html"`

	// Cause describes what produced a patch, e.g. "click on 12".
	Cause string `json:"cause,omitempty"`
}

// Hub manages WebSocket connections for patch streaming.
type Hub struct {
	clients  map[*websocket.Conn]*client
	mu       sync.Mutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// client holds the patches broadcast before its first message went out.
type client struct {
	ready   bool
	pending [][]byte
}

// NewHub creates a hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// ServeWS upgrades the connection, sends the message produced by hello and
// keeps the client registered until it disconnects. hello runs without the
// hub lock held, so it may take locks that callers of Broadcast hold.
//
// The client is registered before hello runs. Patches broadcast meanwhile
// are queued and sent right after the hello message; each carries the full
// markup, so the client always ends on the latest state.
func (h *Hub) ServeWS(w http.ResponseWriter, req *http.Request, hello func() Message) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("preview: websocket upgrade failed", "error", err)
		return
	}

	c := &client{}
	h.mu.Lock()
	h.clients[conn] = c
	h.mu.Unlock()

	first := hello()
	if !h.start(conn, c, first) {
		conn.Close()
		return
	}

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(conn)
	conn.Close()
}

// start writes the hello message and the queued patches, then marks the
// client ready. It reports false when the client is gone.
func (h *Hub) start(conn *websocket.Conn, c *client, first Message) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] != c {
		return false
	}
	if err := conn.WriteJSON(first); err != nil {
		delete(h.clients, conn)
		return false
	}
	for _, data := range c.pending {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.clients, conn)
			return false
		}
	}
	c.pending = nil
	c.ready = true
	return true
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Broadcast sends msg to every client. Clients that fail are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("preview: encoding message failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.clients {
		if !c.ready {
			c.pending = append(c.pending, data)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]*client)
}
