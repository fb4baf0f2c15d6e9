// Package tcp serves the line-based game protocol over plain TCP sockets.
package tcp

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

var ErrConnClosed = errors.New("connection closed")

// Conn adapts a net.Conn to core.PlayerConn. Reads are line-framed; writes
// are serialized so session broadcasts and turn prompts never interleave.
type Conn struct {
	c net.Conn
	r *bufio.Reader

	readTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewConn wraps c. readTimeout bounds each ReadLine when positive; zero
// means a player may take as long as they like on their turn.
func NewConn(c net.Conn, readTimeout time.Duration) *Conn {
	return &Conn{c: c, r: bufio.NewReader(c), readTimeout: readTimeout}
}

func (c *Conn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	_, err := c.c.Write([]byte(line))
	return err
}

func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		if err := c.c.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return "", err
		}
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.c.Close()
}

// RemoteAddr exposes the peer address for logs.
func (c *Conn) RemoteAddr() string {
	return c.c.RemoteAddr().String()
}
