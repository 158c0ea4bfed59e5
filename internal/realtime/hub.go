// Package realtime pushes session changes to every open tab of a browser
// over a websocket, so a sign-in or sign-out in one tab reloads the others.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nethal17/Ramanayake-Travels-sub001/auth"
	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
	"github.com/nethal17/Ramanayake-Travels-sub001/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 8
)

// Message is what tabs receive.
type Message struct {
	Type string `json:"type"`
}

// AuthChanged tells a tab to reload because its session changed.
var AuthChanged = Message{Type: "auth-changed"}

type client struct {
	session string
	conn    *websocket.Conn
	send    chan []byte
}

// Hub keeps the open connections per session id.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	log      logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients: map[string]map[*client]struct{}{},
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
		},
	}
}

// Attach subscribes the hub to m. The returned func detaches it.
func (h *Hub) Attach(m *session.Manager) func() {
	return m.Subscribe(h.onEvent)
}

func (h *Hub) onEvent(ev session.Event) {
	h.Notify(ev.SessionID, AuthChanged)
	if ev.PreviousID != "" && ev.PreviousID != ev.SessionID {
		h.Notify(ev.PreviousID, AuthChanged)
	}
}

// Notify sends msg to every tab of sessionID and returns how many were
// reached. Tabs too slow to take the message are dropped.
func (h *Hub) Notify(sessionID string, msg Message) int {
	if sessionID == "" {
		return 0
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.clients[sessionID] {
		select {
		case c.send <- payload:
			n++
		default:
			go h.remove(c)
		}
	}
	return n
}

// Connections returns the number of open tabs of sessionID.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.session]
	if !ok {
		set = map[*client]struct{}{}
		h.clients[c.session] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.session]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.session)
	}
}

// ServeHTTP upgrades a signed-in request to a websocket. It must run behind
// auth.Middleware.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := auth.SessionID(r.Context())
	if id == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warning("websocket upgrade failed", logger.Error(err))
		return
	}
	c := &client{session: id, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards what the tab sends and notices when it goes away.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
