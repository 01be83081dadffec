package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/soumaysikchi/portfolio/internal/content"
	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

var (
	styleText   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x00d4ff)).Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x00ff88)).Bold(true)
	styleBug    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePickup = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x8b5cf6))
)

var glyphs = map[game.Kind]rune{
	game.KindBug:   '#',
	game.KindError: '!',
	game.KindReact: 'R',
	game.KindNode:  'N',
	game.KindMongo: 'M',
}

// View is the state the renderer draws from.
type View struct {
	Phase       lifecycle.Phase
	SkipOffered bool
	Subtitle    bool
	Game        game.Snapshot
}

// Renderer draws views onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	meta   content.Meta
	rules  game.Rules
}

func NewRenderer(screen tcell.Screen, meta content.Meta, rules game.Rules) *Renderer {
	return &Renderer{screen: screen, meta: meta, rules: rules}
}

func (r *Renderer) Draw(v View) {
	r.screen.Clear()
	switch v.Phase {
	case lifecycle.PhaseLoading:
		r.drawLoading()
	case lifecycle.PhaseIntro:
		r.drawIntro(v)
	default:
		r.drawGame(v.Game)
	}
	r.screen.Show()
}

func (r *Renderer) drawLoading() {
	w, h := r.screen.Size()
	r.centered(h/2, "Loading...", styleDim, w)
}

func (r *Renderer) drawIntro(v View) {
	w, h := r.screen.Size()
	r.centered(h/2-1, r.meta.Name, styleTitle, w)
	if v.Subtitle {
		r.centered(h/2+1, r.meta.Tagline, styleText, w)
	}
	if v.SkipOffered {
		r.centered(h-2, "[s] skip intro", styleDim, w)
	}
}

func (r *Renderer) drawGame(s game.Snapshot) {
	w, h := r.screen.Size()
	r.text(1, 0, fmt.Sprintf("CODE RUSH  score %d  best %d  speed %.1f", s.Score, s.HighScore, s.GameSpeed), styleTitle)

	top := 2
	lanes := r.laneCount()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, top-1, '─', nil, styleDim)
		r.screen.SetContent(x, top+lanes, '─', nil, styleDim)
	}
	for _, e := range s.Obstacles {
		r.entity(e, top, w, styleBug)
	}
	for _, e := range s.Collectibles {
		r.entity(e, top, w, stylePickup)
	}
	r.screen.SetContent(r.column(s.PlayerPosition, w), top+r.lane(0), '@', nil, stylePlayer)

	status := ""
	switch s.State {
	case game.StateMenu:
		status = "press space to start · ←/→ to move · q to quit"
	case game.StatePaused:
		status = "paused · space to resume · r to restart"
	case game.StateGameOver:
		status = fmt.Sprintf("game over · score %d · space to play again", s.Score)
		if s.NewHighScore {
			status = fmt.Sprintf("new high score %d! · space to play again", s.Score)
		}
	}
	r.text(1, min(h-1, top+lanes+2), status, styleText)
}

func (r *Renderer) entity(e game.Entity, top, w int, style tcell.Style) {
	x := r.column(e.X, w)
	if x < 0 || x >= w {
		return
	}
	r.screen.SetContent(x, top+r.lane(e.Y), glyphs[e.Kind], nil, style)
}

// column maps world x onto the screen width, despawn edge at the left.
func (r *Renderer) column(x float64, w int) int {
	span := r.rules.Spawn.X - r.rules.Spawn.DespawnX
	return int(math.Round((x - r.rules.Spawn.DespawnX) / span * float64(w-1)))
}

func (r *Renderer) laneCount() int {
	return int(math.Ceil(r.rules.Spawn.YMax-r.rules.Spawn.YMin)) + 1
}

func (r *Renderer) lane(y float64) int {
	return min(max(int(math.Round(y-r.rules.Spawn.YMin)), 0), r.laneCount()-1)
}

func (r *Renderer) centered(y int, s string, style tcell.Style, w int) {
	r.text(max(0, (w-len([]rune(s)))/2), y, s, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
