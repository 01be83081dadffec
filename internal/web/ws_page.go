package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

type pageMessage struct {
	Type  string           `json:"type"`
	Phase *lifecycle.Phase `json:"phase,omitempty"`
	Cue   *lifecycle.Cue   `json:"cue,omitempty"`
}

type pageCommand struct {
	Type string `json:"type"`
}

// pageSocket runs one page lifecycle per connection. The server pushes
// phase changes and intro cues; the client may ask to skip the intro.
func (s *Server) pageSocket(c *gin.Context) {
	socket, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("page websocket upgrade")
		return
	}
	conn := newWebsocketConnection(c.Request.Context(), socket)
	defer conn.close()

	orch := lifecycle.New(s.clk, s.opts.Lifecycle,
		lifecycle.WithListener(func(p lifecycle.Phase) {
			conn.send(pageMessage{Type: "phase", Phase: &p})
		}),
		lifecycle.WithCueListener(func(cue lifecycle.Cue) {
			conn.send(pageMessage{Type: "cue", Cue: &cue})
		}),
	)
	defer orch.Stop()
	orch.Start()

	readMessages(conn, func(cmd pageCommand) {
		switch cmd.Type {
		case "skip":
			orch.RequestSkip()
		default:
			conn.send(errorMsg("unknown-message"))
		}
	})
}
