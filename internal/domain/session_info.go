package domain

import (
	"fmt"
	"strings"
)

// SessionInfo is a read-only snapshot of one game, used for join listings
// and the HTTP API.
type SessionInfo struct {
	Index       int      `json:"index"`
	PlayerCount int      `json:"player_count"`
	Required    int      `json:"required_players"`
	CurrentTurn int      `json:"current_turn"`
	MaxRounds   int      `json:"max_rounds"`
	Names       []string `json:"players"`
	Started     bool     `json:"started"`
}

func (s SessionInfo) String() string {
	return fmt.Sprintf(
		"Nombre de joueurs: %d / %d - Tour actuel: %d / %d - Joueurs: %s - Partie commencée: %t",
		s.PlayerCount, s.Required, s.CurrentTurn, s.MaxRounds,
		strings.Join(s.Names, ", "), s.Started,
	)
}
