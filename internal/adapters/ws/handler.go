package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ybellec/yahtzee-server/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades HTTP requests and feeds the resulting connections
// into the same lobby dialogue TCP players go through.
type Controller struct {
	Lobby *app.Lobby
}

func NewController(lobby *app.Lobby) *Controller {
	return &Controller{Lobby: lobby}
}

func (ctl *Controller) HandlePlay(c *gin.Context) {
	sid := c.GetString("client_token")
	log.Info().Str("module", "adapters.ws").Str("sid", sid).Msg("new WS player")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("ws upgrade")
		return
	}
	// the lobby and then the game own this connection
	go ctl.Lobby.Handle(NewConn(conn))
}
