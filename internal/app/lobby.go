package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ybellec/yahtzee-server/internal/core"
	"github.com/ybellec/yahtzee-server/internal/domain"
)

// Lobby drives the pre-game dialogue of one connection: name, create or
// join, and the handoff to a game. It runs in the connection's goroutine.
type Lobby struct {
	Registry *Registry
}

func NewLobby(reg *Registry) *Lobby {
	return &Lobby{Registry: reg}
}

// Handle runs the whole dialogue. It returns when the player is attached to
// a game or the connection dies; the game owns the connection afterwards.
func (l *Lobby) Handle(conn core.PlayerConn) {
	player, err := l.askName(conn)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.lobby").Msg("connection lost during sign-in")
		conn.Close()
		return
	}
	ps := core.NewPlayerSession(player, conn)

	for {
		choice, err := l.askCreateOrJoin(conn)
		if err != nil {
			log.Warn().Err(err).Str("module", "app.lobby").Str("player", player.Name).Msg("connection lost in lobby")
			conn.Close()
			return
		}
		switch choice {
		case "C":
			if err := l.create(ps); err != nil {
				conn.Close()
				return
			}
			return
		case "R":
			joined, err := l.join(ps)
			if err != nil {
				conn.Close()
				return
			}
			if joined {
				return
			}
			// no joinable game right now: fall through and ask again
		}
	}
}

func (l *Lobby) askName(conn core.PlayerConn) (*domain.Player, error) {
	for {
		if err := conn.Send("Serveur : Entrez votre nom:\n"); err != nil {
			return nil, err
		}
		name, err := conn.ReadLine()
		if err != nil {
			return nil, err
		}
		player, perr := domain.NewPlayer(strings.TrimSpace(name))
		if perr != nil {
			if err := conn.Send("Serveur : Nom invalide. Réessayez:\n"); err != nil {
				return nil, err
			}
			continue
		}
		log.Info().Str("module", "app.lobby").Str("player", player.Name).Msg("player signed in")
		return player, nil
	}
}

func (l *Lobby) askCreateOrJoin(conn core.PlayerConn) (string, error) {
	for {
		if err := conn.Send("Serveur : Vous souhaitez créer une nouvelle partie ou rejoindre une partie existante? (C/R):\n"); err != nil {
			return "", err
		}
		resp, err := conn.ReadLine()
		if err != nil {
			return "", err
		}
		switch strings.ToUpper(strings.TrimSpace(resp)) {
		case "C":
			return "C", nil
		case "R":
			return "R", nil
		}
		if err := conn.Send("Serveur : Répondez par C ou R.\n"); err != nil {
			return "", err
		}
	}
}

// create asks for the table size and registers a new game with this player
// as creator.
func (l *Lobby) create(ps core.PlayerSession) error {
	conn := ps.Conn()
	if err := conn.Send("Serveur : Combien de joueurs vont participer?\n"); err != nil {
		return err
	}
	for {
		resp, err := conn.ReadLine()
		if err != nil {
			return err
		}
		required, perr := strconv.Atoi(strings.TrimSpace(resp))
		if perr != nil {
			if err := conn.Send("Serveur : Entrée invalide. Entrez un nombre entier:\n"); err != nil {
				return err
			}
			continue
		}
		if required < 2 {
			if err := conn.Send("Serveur : Le nombre de joueurs doit être au moins 2. Réessayez:\n"); err != nil {
				return err
			}
			continue
		}
		_, err = l.Registry.Create(required, ps)
		return err
	}
}

// join lists open games and attaches the player to the chosen one. It
// returns false without error when no game is joinable, so the caller can
// restart the dialogue.
func (l *Lobby) join(ps core.PlayerSession) (bool, error) {
	conn := ps.Conn()
	l.Registry.Reap()
	infos := l.Registry.List()
	if len(infos) == 0 {
		return false, conn.Send("Serveur : Aucune partie disponible. Créez-en une nouvelle.\n")
	}
	for _, info := range infos {
		if err := conn.Send(fmt.Sprintf("Serveur : Partie %d. %s\n", info.Index, info)); err != nil {
			return false, err
		}
	}
	for {
		if err := conn.Send("Serveur : Choisissez une partie à rejoindre:\n"); err != nil {
			return false, err
		}
		resp, err := conn.ReadLine()
		if err != nil {
			return false, err
		}
		index, perr := strconv.Atoi(strings.TrimSpace(resp))
		if perr != nil {
			if err := conn.Send("Serveur : Entrée invalide. Entrez un nombre valide :\n"); err != nil {
				return false, err
			}
			continue
		}
		switch jerr := l.Registry.Join(index, ps); jerr {
		case nil:
			log.Info().Str("module", "app.lobby").Str("player", ps.Meta().Name).
				Int("game", index).Msg("player joined game")
			return true, nil
		case ErrNoSuchGame:
			if err := conn.Send(fmt.Sprintf("Serveur : Choix invalide. Entrez un nombre entre 1 et %d :\n", l.Registry.Count())); err != nil {
				return false, err
			}
		default:
			if err := conn.Send("Serveur : La partie est déjà pleine.\n"); err != nil {
				return false, err
			}
		}
	}
}
