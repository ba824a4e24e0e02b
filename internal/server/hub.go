package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 512,
	// The viewer is a local tool; pages are served from the same host.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client wraps a connection with a mutex serializing writes. gorilla
// allows at most one concurrent writer per connection, and both the
// keepalive pinger and Broadcast write to the same connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub tracks connected viewer pages and pushes reload notices when the
// content changes.
type Hub struct {
	// PingInterval overrides the keepalive period; zero means the
	// default. Set before the first connection arrives.
	PingInterval time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]*client
	closed  bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	cl := &client{conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = cl
	h.mu.Unlock()

	go h.keepAlive(cl)

	// Drain reads so pings and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *Hub) keepAlive(cl *client) {
	period := h.PingInterval
	if period <= 0 {
		period = pingPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.Lock()
		_, ok := h.clients[cl.conn]
		h.mu.Unlock()
		if !ok {
			return
		}
		if err := cl.write(websocket.PingMessage, nil); err != nil {
			h.drop(cl.conn)
			return
		}
	}
}

// Broadcast sends a text message to every connected page. Connections
// that fail to accept the write are dropped.
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		if err := cl.write(websocket.TextMessage, []byte(message)); err != nil {
			h.drop(cl.conn)
		}
	}
}

// ClientCount reports the number of connected pages.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.clients = make(map[*websocket.Conn]*client)
	h.mu.Unlock()

	for _, cl := range clients {
		// WriteControl is safe alongside a concurrent WriteMessage.
		cl.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		cl.conn.Close()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}
