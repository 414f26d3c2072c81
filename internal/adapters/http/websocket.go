package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"
)

// WebSocketHandler relays saved-trip events from NATS to connected clients.
// Every client gets the full trips.saved.> feed; there is nothing finer to
// filter on. With NATS disabled the socket is closed right after upgrade.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		if nc == nil {
			slog.Warn("ws client rejected, events disabled", "remote", remoteAddr)
			_ = c.WriteMessage(websocket.TextMessage, []byte(`{"error":"event stream not available"}`))
			return
		}
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		writeRaw := func(data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		sub, err := nc.Subscribe("trips.saved.>", func(msg *nats.Msg) {
			if !json.Valid(msg.Data) {
				return
			}
			_ = writeRaw(msg.Data)
		})
		if err != nil {
			slog.Error("ws subscribe failed", "error", err)
			return
		}
		defer func() { _ = sub.Unsubscribe() }()

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Drain client frames until the peer goes away.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
