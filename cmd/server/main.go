package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/ybellec/yahtzee-server/internal/adapters/http"
	"github.com/ybellec/yahtzee-server/internal/adapters/tcp"
	"github.com/ybellec/yahtzee-server/internal/app"
	"github.com/ybellec/yahtzee-server/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	registry := app.NewRegistry(cfg.MaxRounds)
	lobby := app.NewLobby(registry)

	game := &tcp.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.GamePort),
		Lobby:       lobby,
		ReadTimeout: cfg.TurnTimeout,
	}
	go func() {
		if err := game.Listen(ctx); err != nil {
			log.Fatal().Err(err).Msg("game server error")
		}
	}()

	chat := &tcp.ChatServer{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.ChatPort)}
	go func() {
		if err := chat.Listen(ctx); err != nil {
			log.Fatal().Err(err).Msg("chat server error")
		}
	}()

	r := router.SetupRouter(cfg, registry, lobby)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
		Handler: r,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Yahtzee HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
