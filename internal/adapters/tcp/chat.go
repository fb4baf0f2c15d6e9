package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog/log"
)

// ChatServer is the free-text side-channel: every line a client sends is
// relayed to all the others. It is fully independent of the game flow.
type ChatServer struct {
	Addr string

	mu      sync.Mutex
	clients []*chatClient
	serial  int
}

type chatClient struct {
	name string
	conn *Conn
}

// Listen blocks in the accept loop until ctx is canceled.
func (s *ChatServer) Listen(ctx context.Context) error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("chat listener: %w", err)
	}
	log.Info().Str("module", "adapters.chat").Str("addr", s.Addr).Msg("chat server listening")

	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()

	for {
		nc, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Error().Err(err).Str("module", "adapters.chat").Msg("accept failed")
			continue
		}
		go s.handle(NewConn(nc, 0))
	}
}

func (s *ChatServer) handle(conn *Conn) {
	s.mu.Lock()
	s.serial++
	client := &chatClient{name: fmt.Sprintf("Joueur %d", s.serial), conn: conn}
	s.clients = append(s.clients, client)
	s.mu.Unlock()
	log.Info().Str("module", "adapters.chat").Str("name", client.name).
		Str("remote", conn.RemoteAddr()).Msg("chat client connected")

	defer s.remove(client)
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return
		}
		s.relay(client, line)
	}
}

// relay forwards one line to every other client. Send failures are ignored;
// the failing client's own read loop tears it down.
func (s *ChatServer) relay(from *chatClient, line string) {
	s.mu.Lock()
	peers := make([]*chatClient, 0, len(s.clients))
	for _, c := range s.clients {
		if c != from {
			peers = append(peers, c)
		}
	}
	s.mu.Unlock()

	msg := fmt.Sprintf("%s: %s\n", from.name, line)
	for _, c := range peers {
		_ = c.conn.Send(msg)
	}
}

func (s *ChatServer) remove(client *chatClient) {
	s.mu.Lock()
	for i, c := range s.clients {
		if c == client {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	client.conn.Close()
	log.Info().Str("module", "adapters.chat").Str("name", client.name).Msg("chat client left")
}
