package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/soumaysikchi/portfolio/internal/game"
)

// boardColumns is the width of the browser playfield in characters.
const boardColumns = 61

// board tells the page script how world coordinates map onto its lanes.
type board struct {
	Columns  int     `json:"columns"`
	SpawnX   float64 `json:"spawn_x"`
	DespawnX float64 `json:"despawn_x"`
	YMin     float64 `json:"y_min"`
	YMax     float64 `json:"y_max"`
}

func newBoard(r game.Rules) board {
	return board{
		Columns:  boardColumns,
		SpawnX:   r.Spawn.X,
		DespawnX: r.Spawn.DespawnX,
		YMin:     r.Spawn.YMin,
		YMax:     r.Spawn.YMax,
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"bundle":       s.bundle,
		"introEnabled": s.opts.Lifecycle.IntroEnabled,
		"board":        newBoard(s.opts.Rules),
	})
}

func (s *Server) contentBundle(c *gin.Context) {
	c.JSON(http.StatusOK, s.bundle)
}

func (s *Server) highScore(c *gin.Context) {
	n, err := s.store.HighScore(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("load high score")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "high-score-unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"high_score": n})
}
