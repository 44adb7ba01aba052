package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// sendBuffer bounds the per-connection outbound queue. A client that falls
// this far behind is dropped by Publish.
const sendBuffer = 64

// Conn wraps one WebSocket connection. The hub enqueues marshaled events;
// WritePump is the single goroutine that touches the socket for writes.
type Conn struct {
	ID string

	sock *websocket.Conn
	send chan []byte
	log  *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewConn wraps an upgraded WebSocket connection.
func NewConn(sock *websocket.Conn, log *zap.Logger) *Conn {
	return &Conn{
		ID:   uuid.NewString(),
		sock: sock,
		send: make(chan []byte, sendBuffer),
		log:  log,
	}
}

// enqueue queues a message without blocking. Returns false when the buffer
// is full or the connection is closed.
func (c *Conn) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// WritePump drains the send queue onto the socket. It returns when the
// queue is closed or a write fails; the caller is responsible for reads.
func (c *Conn) WritePump(writeTimeout time.Duration) {
	for msg := range c.send {
		if writeTimeout > 0 {
			_ = c.sock.SetWriteDeadline(time.Now().Add(writeTimeout))
		}
		if err := c.sock.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.log.Debug("websocket write failed", zap.String("conn", c.ID), zap.Error(err))
			return
		}
	}
}

// Close shuts the outbound queue and the socket. Idempotent.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	if c.sock != nil {
		_ = c.sock.Close()
	}
}
