package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/pagesmith/pagesmith/internal/logging"
)

// ReloadMessage is pushed to connected browsers when content changes.
type ReloadMessage struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// Hub tracks websocket clients for live-reload broadcasts.
type Hub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  logging.Logger
}

// NewHub creates an empty hub.
func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger.WithComponent("websocket"),
	}
}

// Broadcast sends msg to every connected client. Slow or failed clients
// are dropped.
func (h *Hub) Broadcast(ctx context.Context, msg ReloadMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := conn.Write(writeCtx, websocket.MessageText, payload)
		cancel()

		if err != nil {
			h.remove(conn)
			_ = conn.CloseNow()
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}

	s.hub.add(conn)
	defer func() {
		s.hub.remove(conn)
		_ = conn.CloseNow()
	}()

	// Clients never send application messages; reading just detects close.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}
