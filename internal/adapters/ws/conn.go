// Package ws lets browser clients play over a websocket with the same
// line-per-message dialogue the TCP protocol uses.
package ws

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrConnClosed = errors.New("connection closed")

const writeTimeout = 5 * time.Second

// Conn adapts a websocket to core.PlayerConn: one text message per
// protocol line in each direction.
type Conn struct {
	ws *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *Conn) ReadLine() (string, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.ws.Close()
}
