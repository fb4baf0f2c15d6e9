package core

import "github.com/ybellec/yahtzee-server/internal/domain"

// playerSession implements PlayerSession by pairing meta + transport.
type playerSession struct {
	meta *domain.Player
	conn PlayerConn
}

func NewPlayerSession(meta *domain.Player, conn PlayerConn) PlayerSession {
	return &playerSession{meta: meta, conn: conn}
}

func (p *playerSession) Meta() *domain.Player { return p.meta }
func (p *playerSession) Conn() PlayerConn     { return p.conn }
