package sink

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rtcaption/engine/pkg/captioning"
)

// wireEvent is the JSON shape broadcast to overlay clients.
type wireEvent struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func toWire(ev captioning.Event) wireEvent {
	kind := "partial"
	switch ev.Kind {
	case captioning.CaptionFinal:
		kind = "final"
	case captioning.CaptionReset:
		kind = "reset"
	}
	return wireEvent{Kind: kind, Text: ev.Text}
}

// WebSocketBroadcaster serves a local overlay page's caption feed:
// every connected client receives every published event. It is a
// same-process/loopback sink for a browser overlay, not a remote
// streaming endpoint.
type WebSocketBroadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewWebSocketBroadcaster() *WebSocketBroadcaster {
	return &WebSocketBroadcaster{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the connection and registers it as a broadcast
// target until the client disconnects.
func (b *WebSocketBroadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}

	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

// Publish fans the event out to every connected client. A client that
// fails to receive (slow reader, gone away) is dropped rather than
// blocking the whole broadcast.
func (b *WebSocketBroadcaster) Publish(ctx context.Context, ev captioning.Event) error {
	wire := toWire(ev)

	b.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for c := range b.clients {
		conns = append(conns, c)
	}
	b.mu.Unlock()

	for _, c := range conns {
		if err := wsjson.Write(ctx, c, wire); err != nil {
			b.mu.Lock()
			delete(b.clients, c)
			b.mu.Unlock()
			c.Close(websocket.StatusAbnormalClosure, "write failed")
		}
	}
	return nil
}

// Close disconnects every connected client.
func (b *WebSocketBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		c.Close(websocket.StatusNormalClosure, "shutting down")
		delete(b.clients, c)
	}
	return nil
}
