package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/soumaysikchi/portfolio/internal/trials"
)

type trialsMessage struct {
	Type     string          `json:"type"`
	Snapshot trials.Snapshot `json:"snapshot"`
}

// trialsComplete always carries the total, zero included.
type trialsComplete struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
}

type trialsCommand struct {
	Type string      `json:"type"`
	ID   int         `json:"id"`
	Dir  int         `json:"dir"`
	Side trials.Side `json:"side"`
}

// trialsSocket hosts one Dev Trials playthrough per connection. When the
// last level has been celebrated the client is told the run is complete
// and the total is recorded.
func (s *Server) trialsSocket(c *gin.Context) {
	socket, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("trials websocket upgrade")
		return
	}
	conn := newWebsocketConnection(c.Request.Context(), socket)
	defer conn.close()

	runID := uuid.NewString()
	storeCtx := context.WithoutCancel(c.Request.Context())
	run := trials.NewRun(s.clk,
		trials.WithObserver(func(snap trials.Snapshot) {
			conn.send(trialsMessage{Type: "snapshot", Snapshot: snap})
		}),
		trials.WithCompletion(func(total int) {
			ctx, cancel := context.WithTimeout(storeCtx, 5*time.Second)
			defer cancel()
			if err := s.store.RecordTrials(ctx, runID, total, s.clk.Now()); err != nil {
				log.Error().Err(err).Str("run_id", runID).Msg("record trials")
			}
			conn.send(trialsComplete{Type: "complete", Total: total})
		}),
	)
	defer run.Close()

	conn.send(trialsMessage{Type: "snapshot", Snapshot: run.Snapshot()})

	limiter := rate.NewLimiter(s.opts.CommandRate, s.opts.CommandBurst)
	readMessages(conn, func(cmd trialsCommand) {
		if !limiter.Allow() {
			conn.send(errorMsg("rate-limited"))
			return
		}
		switch cmd.Type {
		case "start":
			run.StartLevel()
		case "next":
			run.NextLevel()
		case "pick":
			run.Pick(cmd.ID)
		case "move":
			run.Move(cmd.Dir)
		case "resolve":
			run.Resolve(cmd.ID, cmd.Side)
		default:
			conn.send(errorMsg("unknown-message"))
		}
	})
}
