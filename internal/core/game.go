package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ybellec/yahtzee-server/internal/dice"
	"github.com/ybellec/yahtzee-server/internal/domain"
	"github.com/ybellec/yahtzee-server/internal/score"
)

var ErrGameFull = errors.New("game is full or already started")

const rerollBudget = 2

// playerEntry ties a joined player to its sheet and running total.
type playerEntry struct {
	session PlayerSession
	sheet   *score.Sheet
	score   int
}

// gameImpl is one independent game: roster, sheets, turn counter. All shared
// state is guarded by mu; turn I/O happens outside the lock so one slow
// player never blocks joins or other games.
type gameImpl struct {
	mu           sync.Mutex
	players      []*playerEntry
	required     int
	maxRounds    int
	currentTurn  int
	rosterAtFill int
	started      bool
	finished     bool

	src      dice.Source
	waitPoll time.Duration
}

type GameOption func(*gameImpl)

// WithDiceSource injects the randomness source, mainly for tests.
func WithDiceSource(src dice.Source) GameOption {
	return func(g *gameImpl) { g.src = src }
}

// WithWaitPoll overrides the waiting-room poll interval.
func WithWaitPoll(d time.Duration) GameOption {
	return func(g *gameImpl) { g.waitPoll = d }
}

// NewGame creates a game with the creator as its sole member.
// required must already be validated (> 1) by the caller dialogue.
func NewGame(required, maxRounds int, creator PlayerSession, opts ...GameOption) GameService {
	g := &gameImpl{
		required:  required,
		maxRounds: maxRounds,
		src:       dice.DefaultSource(),
		waitPoll:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.players = append(g.players, newEntry(creator))
	return g
}

func newEntry(ps PlayerSession) *playerEntry {
	return &playerEntry{session: ps, sheet: score.NewSheet()}
}

func (g *gameImpl) Join(ps PlayerSession) error {
	g.mu.Lock()
	if g.started || len(g.players) >= g.required {
		g.mu.Unlock()
		return ErrGameFull
	}
	g.players = append(g.players, newEntry(ps))
	count, required := len(g.players), g.required
	g.mu.Unlock()

	log.Info().Str("module", "core.game").Str("player", ps.Meta().Name).
		Int("count", count).Int("required", required).Msg("player joined")
	g.Broadcast(fmt.Sprintf("Serveur : %s a rejoint la partie (%d/%d).\n", ps.Meta().Name, count, required))
	return nil
}

func (g *gameImpl) CanJoin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.started && len(g.players) < g.required
}

func (g *gameImpl) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}

func (g *gameImpl) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

func (g *gameImpl) Information() domain.SessionInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.players))
	for _, p := range g.players {
		names = append(names, p.session.Meta().Name)
	}
	return domain.SessionInfo{
		PlayerCount: len(g.players),
		Required:    g.required,
		CurrentTurn: g.currentTurn,
		MaxRounds:   g.maxRounds,
		Names:       names,
		Started:     g.started,
	}
}

// Run blocks until the roster fills, then plays maxRounds turns per player
// present at fill time and announces the winner.
func (g *gameImpl) Run() {
	if !g.waitForPlayers() {
		return
	}
	g.Broadcast("Serveur : Tous les joueurs sont connectés. La partie commence!\n")
	g.turnLoop()
	g.announceWinner()

	g.mu.Lock()
	g.finished = true
	g.mu.Unlock()
	log.Info().Str("module", "core.game").Msg("game finished")
}

// waitForPlayers polls until the roster fills. It reports false when every
// player disconnected while waiting, in which case the game marks itself
// finished so the registry can reap it.
func (g *gameImpl) waitForPlayers() bool {
	for {
		g.mu.Lock()
		n := len(g.players)
		if n >= g.required {
			g.started = true
			g.rosterAtFill = n
			g.mu.Unlock()
			return true
		}
		if n == 0 {
			g.finished = true
			g.mu.Unlock()
			log.Info().Str("module", "core.game").Msg("abandoned before start")
			return false
		}
		missing := g.required - n
		g.mu.Unlock()

		g.Broadcast(fmt.Sprintf("Serveur : En attente de %d joueur(s) pour démarrer la partie...\n", missing))
		time.Sleep(g.waitPoll)
	}
}

// turnLoop selects the actor against the current roster length each turn and
// always advances the counter, so a disconnect never skips or repeats the
// next player.
func (g *gameImpl) turnLoop() {
	for {
		g.mu.Lock()
		if g.currentTurn >= g.maxRounds*g.rosterAtFill || len(g.players) == 0 {
			g.mu.Unlock()
			return
		}
		entry := g.players[g.currentTurn%len(g.players)]
		g.mu.Unlock()

		g.playTurn(entry)

		g.mu.Lock()
		g.currentTurn++
		g.mu.Unlock()
	}
}

// playTurn drives one player's complete roll / re-roll / category dialogue.
// Any transport error is a disconnect and ends the turn without a commit.
func (g *gameImpl) playTurn(e *playerEntry) {
	name := e.session.Meta().Name
	conn := e.session.Conn()

	if err := conn.Send(fmt.Sprintf("Serveur : C'est votre tour, %s.\n", name)); err != nil {
		g.disconnect(e, err)
		return
	}

	d := dice.New(g.src)
	if err := conn.Send(fmt.Sprintf("Serveur : Résultat initial des dés: %s\n", d)); err != nil {
		g.disconnect(e, err)
		return
	}

	if ok := g.offerRerolls(e, d); !ok {
		return
	}
	g.chooseCategory(e, d)
}

// offerRerolls runs the O/N dialogue with a budget of two selective re-rolls.
// It reports false when the player disconnected.
func (g *gameImpl) offerRerolls(e *playerEntry, d *dice.Set) bool {
	conn := e.session.Conn()
	remaining := rerollBudget
	for remaining > 0 {
		if err := conn.Send("Serveur : Voulez-vous relancer des dés ? (O/N):\n"); err != nil {
			g.disconnect(e, err)
			return false
		}
		resp, err := conn.ReadLine()
		if err != nil {
			g.disconnect(e, err)
			return false
		}
		switch strings.ToUpper(strings.TrimSpace(resp)) {
		case "N":
			return true
		case "O":
			indices, ok := g.readRerollIndices(e)
			if !ok {
				return false
			}
			d.Reroll(indices)
			remaining--
			g.Broadcast(fmt.Sprintf("Serveur : Résultat après relance: %s\n", d))
		default:
			if err := conn.Send("Serveur : Répondez par O ou N.\n"); err != nil {
				g.disconnect(e, err)
				return false
			}
		}
	}
	return true
}

// readRerollIndices prompts until it gets a well-formed, possibly empty,
// comma-separated index list. It reports false on disconnect.
func (g *gameImpl) readRerollIndices(e *playerEntry) ([]int, bool) {
	conn := e.session.Conn()
	for {
		if err := conn.Send("Serveur : Indiquez les indices des dés à relancer (ex: 1,3,5):\n"); err != nil {
			g.disconnect(e, err)
			return nil, false
		}
		line, err := conn.ReadLine()
		if err != nil {
			g.disconnect(e, err)
			return nil, false
		}
		indices, perr := parseIndices(line)
		if perr != nil {
			if err := conn.Send("Serveur : Entrée invalide. Entrez des indices séparés par des virgules:\n"); err != nil {
				g.disconnect(e, err)
				return nil, false
			}
			continue
		}
		return indices, true
	}
}

// parseIndices turns "1,3,5" into []int{1, 3, 5}. An empty input means
// reroll nothing. Range checking is left to dice.Set.Reroll.
func parseIndices(line string) ([]int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	parts := strings.Split(line, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// chooseCategory shows the theoretical table, reads a valid unfilled
// category, commits the score and announces it to the whole game.
func (g *gameImpl) chooseCategory(e *playerEntry, d *dice.Set) {
	name := e.session.Meta().Name
	conn := e.session.Conn()
	values := d.Values()

	unfilled := e.sheet.Unfilled()
	if len(unfilled) == 0 {
		// roster shrank mid-game, this player already filled all 13 slots
		if err := conn.Send("Serveur : Plus aucune figure disponible, tour passé.\n"); err != nil {
			g.disconnect(e, err)
		}
		return
	}

	if err := conn.Send(e.sheet.Render(values)); err != nil {
		g.disconnect(e, err)
		return
	}

	var cat domain.Category
	for {
		if err := conn.Send("Serveur : Choisissez une figure à remplir:" + joinCategories(unfilled) + ":\n"); err != nil {
			g.disconnect(e, err)
			return
		}
		line, err := conn.ReadLine()
		if err != nil {
			g.disconnect(e, err)
			return
		}
		parsed, perr := domain.ParseCategory(strings.TrimSpace(line))
		if perr != nil {
			if err := conn.Send("Serveur : Figure invalide, choisissez une figure proposée.\n"); err != nil {
				g.disconnect(e, err)
				return
			}
			continue
		}
		if e.sheet.Filled(parsed) {
			if err := conn.Send("Serveur : Figure déjà remplie.\n"); err != nil {
				g.disconnect(e, err)
				return
			}
			continue
		}
		cat = parsed
		break
	}

	sc := e.sheet.Preview(cat, values)
	bonusBefore := e.sheet.Bonus()
	e.sheet.Commit(cat, sc)
	if e.sheet.Bonus() != bonusBefore {
		if err := conn.Send("Serveur : Félicitations ! Vous avez atteint le bonus de la section supérieure (+35 points)\n"); err != nil {
			g.disconnect(e, err)
			return
		}
	}

	g.mu.Lock()
	e.score = e.sheet.Total()
	total := e.score
	g.mu.Unlock()

	log.Info().Str("module", "core.game").Str("player", name).
		Str("figure", cat.String()).Int("points", sc).Int("total", total).Msg("score committed")

	if err := conn.Send(fmt.Sprintf("Serveur : Points ajoutés: %d. Score total: %d\n", sc, total)); err != nil {
		g.disconnect(e, err)
		return
	}
	g.Broadcast(fmt.Sprintf("%s a marqué %d points pour la figure %s.\n", name, sc, cat))
	g.broadcastScoreTable()
}

func joinCategories(cats []domain.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// Broadcast sends msg to every member. A failed send removes that player and
// discards their sheet and score; the broadcast continues to the rest.
func (g *gameImpl) Broadcast(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastLocked(msg)
}

func (g *gameImpl) broadcastLocked(msg string) {
	var dropped []*playerEntry
	for _, p := range g.players {
		if err := p.session.Conn().Send(msg); err != nil {
			dropped = append(dropped, p)
		}
	}
	for _, p := range dropped {
		g.removeLocked(p)
	}
}

func (g *gameImpl) removeLocked(e *playerEntry) {
	for i, p := range g.players {
		if p == e {
			g.players = append(g.players[:i], g.players[i+1:]...)
			break
		}
	}
	e.session.Conn().Close()
	log.Info().Str("module", "core.game").Str("player", e.session.Meta().Name).Msg("player removed")
}

// disconnect handles a transport failure on the acting player's channel.
func (g *gameImpl) disconnect(e *playerEntry, err error) {
	log.Warn().Err(err).Str("module", "core.game").
		Str("player", e.session.Meta().Name).Msg("player disconnected")
	g.mu.Lock()
	g.removeLocked(e)
	g.mu.Unlock()
	g.Broadcast(fmt.Sprintf("Serveur : %s a quitté la partie.\n", e.session.Meta().Name))
}

// scoreTableLocked renders the roster scoreboard in join order.
func (g *gameImpl) scoreTableLocked() string {
	header := fmt.Sprintf("%-20s%-10s", "Nom du joueur", "Score")
	separator := strings.Repeat("-", len(header))
	rows := make([]string, 0, len(g.players))
	for _, p := range g.players {
		rows = append(rows, fmt.Sprintf("%-20s%-10d", p.session.Meta().Name, p.score))
	}
	return "\n" + header + "\n" + separator + "\n" + strings.Join(rows, "\n") + "\n"
}

func (g *gameImpl) broadcastScoreTable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastLocked(g.scoreTableLocked())
}

// announceWinner broadcasts the final scoreboard. Ties go to the earliest
// joined player: later entries only win with a strictly higher total.
func (g *gameImpl) announceWinner() {
	g.mu.Lock()
	if len(g.players) == 0 {
		g.mu.Unlock()
		return
	}
	winner := g.players[0]
	for _, p := range g.players[1:] {
		if p.score > winner.score {
			winner = p
		}
	}
	table := g.scoreTableLocked()
	name, best := winner.session.Meta().Name, winner.score
	g.mu.Unlock()

	msg := "La partie est terminée!\n\n" + table +
		fmt.Sprintf("\nLe gagnant est %s avec un score de %d points! Félicitations!\n", name, best)
	g.Broadcast(msg)
	log.Info().Str("module", "core.game").Str("winner", name).Int("score", best).Msg("winner announced")
}
