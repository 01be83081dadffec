// Package tui runs the portfolio intro and Code Rush in a terminal.
package tui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/soumaysikchi/portfolio/internal/clock"
	"github.com/soumaysikchi/portfolio/internal/content"
	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

// Store persists results for the terminal client.
type Store interface {
	game.HighScoreStore
	game.ResultRecorder
}

type Config struct {
	Lifecycle lifecycle.Config
	Rules     game.Rules
	Clock     clock.Clock
	Random    game.Random
	Sound     Sound
}

// App owns the screen, the page orchestrator and the game loop. Timer
// callbacks only record state and request a redraw; drawing happens on
// the goroutine running Run.
type App struct {
	screen   tcell.Screen
	renderer *Renderer
	sound    Sound
	orch     *lifecycle.Orchestrator
	loop     *game.Loop

	mu     sync.Mutex
	view   View
	redraw chan struct{}
}

// NewApp wires the app onto an initialised screen.
func NewApp(ctx context.Context, screen tcell.Screen, st Store, cfg Config) *App {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Sound == nil {
		cfg.Sound = Mute{}
	}
	a := &App{
		screen:   screen,
		renderer: NewRenderer(screen, content.PortfolioMeta, cfg.Rules),
		sound:    cfg.Sound,
		redraw:   make(chan struct{}, 1),
	}

	opts := []game.LoopOption{game.WithObserver(a.onSnapshot)}
	if cfg.Random != nil {
		opts = append(opts, game.WithRandom(cfg.Random))
	}
	if st != nil {
		opts = append(opts, game.WithResultRecorder(st))
	}
	a.loop = game.NewLoop(ctx, cfg.Clock, cfg.Rules, st, opts...)
	a.view.Game = a.loop.Snapshot()

	a.orch = lifecycle.New(cfg.Clock, cfg.Lifecycle,
		lifecycle.WithListener(a.onPhase),
		lifecycle.WithCueListener(a.onCue),
	)
	return a
}

// Run starts the page lifecycle and processes input until the user quits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.orch.Start()
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.redraw:
			a.draw()
		case ev := <-events:
			if !a.Handle(ev) {
				return nil
			}
		}
	}
}

// Handle applies one terminal event and reports whether the app should
// keep running.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.requestRedraw()
	case *tcell.EventKey:
		a.mu.Lock()
		phase, state := a.view.Phase, a.view.Game.State
		a.mu.Unlock()

		action, cmd := MapKey(ev, phase, state)
		switch action {
		case ActionQuit:
			return false
		case ActionSkip:
			a.orch.RequestSkip()
		case ActionCommand:
			a.loop.Apply(cmd)
		}
	}
	return true
}

// View returns a copy of what will be drawn next.
func (a *App) View() View {
	// Asked before taking a.mu: listeners hold the orchestrator's
	// delivery lock while they wait for a.mu.
	offered := a.orch.SkipOffered()
	a.mu.Lock()
	v := a.view
	a.mu.Unlock()
	v.SkipOffered = offered
	return v
}

// Close stops every timer. It is safe to call more than once.
func (a *App) Close() {
	a.orch.Stop()
	a.loop.Close()
	a.sound.Close()
}

func (a *App) onPhase(p lifecycle.Phase) {
	a.mu.Lock()
	a.view.Phase = p
	a.mu.Unlock()
	log.Debug().Stringer("phase", p).Msg("page phase")
	a.requestRedraw()
}

func (a *App) onCue(c lifecycle.Cue) {
	if c.Name == lifecycle.CueSubtitle {
		a.mu.Lock()
		a.view.Subtitle = true
		a.mu.Unlock()
	}
	a.requestRedraw()
}

func (a *App) onSnapshot(s game.Snapshot) {
	a.mu.Lock()
	prev := a.view.Game
	a.view.Game = s
	a.mu.Unlock()

	a.cue(prev, s)
	a.requestRedraw()
}

// cue picks the sound for the change from prev to next.
func (a *App) cue(prev, next game.Snapshot) {
	switch {
	case next.State == game.StateGameOver && prev.State != game.StateGameOver:
		if next.NewHighScore {
			a.sound.HighScore()
		} else {
			a.sound.GameOver()
		}
	case next.State == game.StatePlaying && next.Score-prev.Score > 1:
		a.sound.Collect()
	}
}

func (a *App) requestRedraw() {
	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

func (a *App) draw() {
	a.renderer.Draw(a.View())
}
