package core

import (
	"github.com/ybellec/yahtzee-server/internal/domain"
)

// PlayerConn abstracts one player's ordered, bidirectional text channel.
// Owned by the adapter; the adapter must Close() it. A failed Send or
// ReadLine means the player is gone.
type PlayerConn interface {
	// Send writes one protocol line. The line must already end with '\n'.
	Send(line string) error
	// ReadLine blocks for the player's next reply, stripped of line endings.
	ReadLine() (string, error)
	Close()
}

// PlayerSession binds domain.Player and its transport endpoint.
// This is what a game stores and fans out to.
type PlayerSession interface {
	Meta() *domain.Player
	Conn() PlayerConn
}

// GameService is the core-facing API of one game session.
type GameService interface {
	// Join appends a player before the game starts. It initializes the
	// player's sheet and zero score and announces the new roster.
	Join(ps PlayerSession) error

	// Run blocks until the game fills, then drives the round-robin turn
	// loop to completion and announces the winner.
	Run()

	Information() domain.SessionInfo
	CanJoin() bool
	Finished() bool
	PlayerCount() int
}
