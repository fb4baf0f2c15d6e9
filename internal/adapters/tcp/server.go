package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ybellec/yahtzee-server/internal/app"
)

// Server accepts game connections and runs the lobby dialogue for each,
// one goroutine per player.
type Server struct {
	Addr        string
	Lobby       *app.Lobby
	ReadTimeout time.Duration
}

// Listen binds s.Addr and serves until ctx is canceled. A bind failure is
// fatal and returned to the operator.
func (s *Server) Listen(ctx context.Context) error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("game listener: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve runs the accept loop on an already-bound listener.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	log.Info().Str("module", "adapters.tcp").Str("addr", l.Addr().String()).Msg("game server listening")

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
			log.Error().Err(err).Str("module", "adapters.tcp").Msg("accept failed")
			continue
		}
		conn := NewConn(nc, s.ReadTimeout)
		log.Info().Str("module", "adapters.tcp").Str("remote", conn.RemoteAddr()).Msg("player connected")
		go s.Lobby.Handle(conn)
	}
}
