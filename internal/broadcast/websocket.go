package broadcast

import (
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

// maxInboundFrameBytes bounds frames read from clients, which are discarded.
const maxInboundFrameBytes = 4 << 10

// WebSocketSubscriber adapts a WebSocket connection to Subscriber. Frames are
// queued and written by a dedicated goroutine, so a slow client only fills its
// own queue.
type WebSocketSubscriber struct {
	conn         *websocket.Conn
	queue        chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	writeTimeout time.Duration
}

// NewWebSocketSubscriber wraps conn with an outbound queue of bufferSize frames.
func NewWebSocketSubscriber(conn *websocket.Conn, bufferSize int, writeTimeout time.Duration) *WebSocketSubscriber {
	if bufferSize < 1 {
		bufferSize = 1
	}
	conn.MaxPayloadBytes = maxInboundFrameBytes
	return &WebSocketSubscriber{
		conn:         conn,
		queue:        make(chan []byte, bufferSize),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// Send queues payload as a text frame without blocking.
func (s *WebSocketSubscriber) Send(payload []byte) error {
	select {
	case <-s.done:
		return ErrSubscriberClosed
	default:
	}

	select {
	case s.queue <- payload:
		return nil
	case <-s.done:
		return ErrSubscriberClosed
	default:
		return ErrSubscriberBusy
	}
}

// Done is closed once the subscriber stops accepting frames.
func (s *WebSocketSubscriber) Done() <-chan struct{} {
	return s.done
}

// Close stops the subscriber and closes the connection. It is idempotent.
func (s *WebSocketSubscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Run writes queued frames and drains inbound frames until the client
// disconnects or a write fails. It blocks for the life of the connection.
func (s *WebSocketSubscriber) Run() {
	go s.writeLoop()
	s.readLoop()
	s.Close()
}

func (s *WebSocketSubscriber) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case payload := <-s.queue:
			if s.writeTimeout > 0 {
				_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			if err := websocket.Message.Send(s.conn, string(payload)); err != nil {
				s.Close()
				return
			}
		}
	}
}

// readLoop discards client frames; the protocol is server-to-client only.
// A read error means the peer went away.
func (s *WebSocketSubscriber) readLoop() {
	for {
		var discard []byte
		if err := websocket.Message.Receive(s.conn, &discard); err != nil {
			return
		}
	}
}
