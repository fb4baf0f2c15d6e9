// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const MaxNameLen = 36

var (
	ErrNameTooLong = errors.New("player name too long")
	ErrNameEmpty   = errors.New("player name empty")
)

type PlayerID string

// Player is the identity of one connected participant. The name is the
// turn-attribution key inside a session; the ID only disambiguates logs.
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// NewPlayer is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewPlayer(name string) (*Player, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &Player{ID: PlayerID(uuid.NewString()), Name: name}, nil
}
