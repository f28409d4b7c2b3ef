package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"

	"timeclock/internal/broadcast"
)

// StreamConfig tunes the push channel.
type StreamConfig struct {
	BufferSize    int
	WriteTimeout  time.Duration
	AllowedOrigin string
}

// StreamHandler upgrades requests to WebSocket and registers each connection
// with the broadcaster until it disconnects.
type StreamHandler struct {
	broadcaster *broadcast.Broadcaster
	cfg         StreamConfig
	server      websocket.Server
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(broadcaster *broadcast.Broadcaster, cfg StreamConfig) *StreamHandler {
	h := &StreamHandler{broadcaster: broadcaster, cfg: cfg}
	h.server = websocket.Server{Handshake: h.checkOrigin, Handler: h.serve}
	return h
}

// Stream serves the push channel at /ws. Each accepted log is pushed as a
// {"type":"NEW_LOG","data":EnrichedLogEntry} text frame; there is no replay
// on reconnect.
func (h *StreamHandler) Stream(c *gin.Context) {
	h.server.ServeHTTP(c.Writer, c.Request)
}

func (h *StreamHandler) serve(conn *websocket.Conn) {
	sub := broadcast.NewWebSocketSubscriber(conn, h.cfg.BufferSize, h.cfg.WriteTimeout)
	handle := h.broadcaster.Subscribe(sub)
	defer h.broadcaster.Unsubscribe(handle)

	sub.Run()
}

var errOriginNotAllowed = errors.New("origin not allowed")

func (h *StreamHandler) checkOrigin(config *websocket.Config, req *http.Request) error {
	if h.cfg.AllowedOrigin == "" || h.cfg.AllowedOrigin == "*" {
		return nil
	}
	origin, err := websocket.Origin(config, req)
	if err != nil {
		return err
	}
	if origin == nil || origin.String() != h.cfg.AllowedOrigin {
		return errOriginNotAllowed
	}
	return nil
}
