package web

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/game"
)

type gameMessage struct {
	Type     string         `json:"type"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

type gameCommand struct {
	Type    string       `json:"type"`
	Command game.Command `json:"command"`
}

// gameSocket hosts one Code Rush loop per connection. Commands are rate
// limited; out-of-state commands are ignored.
func (s *Server) gameSocket(c *gin.Context) {
	socket, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("game websocket upgrade")
		return
	}
	conn := newWebsocketConnection(c.Request.Context(), socket)
	defer conn.close()

	// Persistence must outlive the socket when it drops right at game over.
	storeCtx := context.WithoutCancel(c.Request.Context())
	loop := game.NewLoop(storeCtx, s.clk, s.opts.Rules, s.store,
		game.WithResultRecorder(s.store),
		game.WithObserver(func(snap game.Snapshot) {
			conn.send(gameMessage{Type: "snapshot", Snapshot: &snap})
		}),
	)
	defer loop.Close()

	initial := loop.Snapshot()
	conn.send(gameMessage{Type: "snapshot", Snapshot: &initial})

	limiter := rate.NewLimiter(s.opts.CommandRate, s.opts.CommandBurst)
	readMessages(conn, func(cmd gameCommand) {
		if cmd.Type != "command" {
			conn.send(errorMsg("unknown-message"))
			return
		}
		if !limiter.Allow() {
			conn.send(errorMsg("rate-limited"))
			return
		}
		loop.Apply(cmd.Command)
	})
}
