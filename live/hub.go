// live/hub.go
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/events"
)

// writeTimeout bounds each broadcast write so one stalled client cannot
// block delivery to the rest.
const writeTimeout = 5 * time.Second

// Hub broadcasts registry events to connected WebSocket clients, letting
// template previews refresh when the active theme changes. It implements
// events.Publisher so it can be fanned out alongside the broker publishers.
type Hub struct {
	logger *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades requests to WebSocket connections and keeps them
// registered until the client disconnects. Connections are write-only;
// a client that sends a data message is dropped.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Theme previews are served from arbitrary dev hosts.
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			// Accept already wrote the error response.
			return
		}

		h.mu.Lock()
		h.conns[conn] = struct{}{}
		count := len(h.conns)
		h.mu.Unlock()

		if h.logger != nil {
			h.logger.Debug("live client connected", zap.Int("clients", count))
		}

		// CloseRead returns a context that ends when the client goes away.
		ctx := conn.CloseRead(r.Context())
		<-ctx.Done()

		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.CloseNow()
	})
}

// Publish broadcasts the event to every connected client. Failed writes
// drop the client but never fail the publish; a dead preview tab must not
// break an activation.
func (h *Hub) Publish(ctx context.Context, ev events.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Write(wctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.CloseNow()
			if h.logger != nil {
				h.logger.Debug("dropped live client", zap.Error(err))
			}
		}
	}

	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.conns, conn)
	}
	return nil
}
