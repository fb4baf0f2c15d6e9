package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ybellec/yahtzee-server/internal/core"
	"github.com/ybellec/yahtzee-server/internal/domain"
)

var (
	ErrNoSuchGame   = errors.New("no game at that index")
	ErrGameNotOpen  = errors.New("game can no longer be joined")
	ErrBadGameCount = errors.New("required player count must be at least 2")
)

// Registry is the top-level collection of live games. The lock is held only
// for the brief create/list/join/reap operations, never across player I/O.
type Registry struct {
	mu    sync.RWMutex
	games []core.GameService

	maxRounds int
	gameOpts  []core.GameOption
}

func NewRegistry(maxRounds int, opts ...core.GameOption) *Registry {
	return &Registry{maxRounds: maxRounds, gameOpts: opts}
}

// Create starts a new game with creator as its sole member and launches its
// run loop. The loop blocks inside the game until the roster fills.
func (r *Registry) Create(required int, creator core.PlayerSession) (core.GameService, error) {
	if required < 2 {
		return nil, ErrBadGameCount
	}
	g := core.NewGame(required, r.maxRounds, creator, r.gameOpts...)

	r.mu.Lock()
	r.games = append(r.games, g)
	total := len(r.games)
	r.mu.Unlock()

	log.Info().Str("module", "app.registry").Str("creator", creator.Meta().Name).
		Int("required", required).Int("games", total).Msg("game created")
	go g.Run()
	return g, nil
}

// List snapshots every live game with its 1-based listing index.
func (r *Registry) List() []domain.SessionInfo {
	r.mu.RLock()
	games := append([]core.GameService(nil), r.games...)
	r.mu.RUnlock()

	out := make([]domain.SessionInfo, 0, len(games))
	for i, g := range games {
		info := g.Information()
		info.Index = i + 1
		out = append(out, info)
	}
	return out
}

// Join attaches ps to the game at the 1-based index. The index is validated
// under the registry lock; capacity is re-checked by the game under its own
// lock, so a race with the last seat loses cleanly.
func (r *Registry) Join(index int, ps core.PlayerSession) error {
	r.mu.RLock()
	if index < 1 || index > len(r.games) {
		r.mu.RUnlock()
		return ErrNoSuchGame
	}
	g := r.games[index-1]
	r.mu.RUnlock()

	if !g.CanJoin() {
		return ErrGameNotOpen
	}
	if err := g.Join(ps); err != nil {
		return ErrGameNotOpen
	}
	return nil
}

// Reap drops finished games. Safe to call concurrently with Create and Join.
func (r *Registry) Reap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.games[:0]
	removed := 0
	for _, g := range r.games {
		if g.Finished() {
			removed++
			continue
		}
		kept = append(kept, g)
	}
	r.games = kept
	if removed > 0 {
		log.Info().Str("module", "app.registry").Int("removed", removed).
			Int("games", len(r.games)).Msg("reaped finished games")
	}
}

// Count returns the number of live games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
