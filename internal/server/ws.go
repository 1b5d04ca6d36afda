package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/desertthunder/qfill/internal/monitor"
)

// writeWait bounds a single frame write to one slow client.
const writeWait = 5 * time.Second

// Hub fans monitor notifications out to every connected websocket client.
// Delivery is best-effort: a client that cannot keep up loses frames, never
// the monitor.
type Hub struct {
	logger *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Run consumes events until ctx is cancelled, broadcasting each one.
func (h *Hub) Run(ctx context.Context, events <-chan monitor.Notification) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case n := <-events:
			h.broadcast(ctx, n)
		}
	}
}

// ServeHTTP upgrades the request and parks the connection until the client
// goes away. Frames flow one-way, hub to client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // local remote-control UI, any origin
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", "err", err)
		return
	}

	h.add(conn)
	defer h.remove(conn)

	// Reads only surface client disconnect; inbound frames are ignored.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// Routes implements [Handler].
func (h *Hub) Routes() []string {
	return []string{"/ws"}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	conn.Close(websocket.StatusNormalClosure, "done")
}

func (h *Hub) broadcast(ctx context.Context, n monitor.Notification) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		err := wsjson.Write(writeCtx, conn, n)
		cancel()
		if err != nil {
			h.logger.Debug("dropping websocket client", "err", err)
			h.remove(conn)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.conns, conn)
	}
}
