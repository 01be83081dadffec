package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/soumaysikchi/portfolio/internal/clock"
)

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	HighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}

// Result is a finished run.
type Result struct {
	RunID     string
	Score     int
	GameSpeed float64
	Ticks     uint64
	EndedAt   time.Time
}

// ResultRecorder receives every finished run.
type ResultRecorder interface {
	RecordResult(ctx context.Context, r Result) error
}

// Command is a player input understood by Loop.Apply.
type Command string

const (
	CommandStart     Command = "start"
	CommandPause     Command = "pause"
	CommandResume    Command = "resume"
	CommandRestart   Command = "restart"
	CommandPlayAgain Command = "play-again"
	CommandLeft      Command = "left"
	CommandRight     Command = "right"
)

const storeTimeout = 5 * time.Second

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithObserver registers a callback receiving a snapshot after every tick
// and every applied command. Snapshots are delivered in order; the
// callback must not block or call back into the Loop synchronously.
func WithObserver(fn func(Snapshot)) LoopOption {
	return func(l *Loop) { l.observer = fn }
}

// WithRandom overrides the spawn randomness.
func WithRandom(rng Random) LoopOption {
	return func(l *Loop) { l.rng = rng }
}

// WithResultRecorder records each finished run.
func WithResultRecorder(r ResultRecorder) LoopOption {
	return func(l *Loop) { l.recorder = r }
}

// Loop runs a Session on a fixed tick. The tick timer is armed only while
// the session is playing and is cancelled on pause, game over and Close.
// Every arming carries a generation number so a timer that fires after
// being superseded cannot touch the session.
type Loop struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	ctx      context.Context
	clk      clock.Clock
	rules    Rules
	store    HighScoreStore
	recorder ResultRecorder
	rng      Random
	observer func(Snapshot)

	session *Session
	runID   string
	timer   clock.Timer
	gen     uint64
	closed  bool
}

// NewLoop reads the persisted high score once and returns a loop in the
// menu state. A failing store is logged and treated as a zero high score.
func NewLoop(ctx context.Context, clk clock.Clock, rules Rules, store HighScoreStore, opts ...LoopOption) *Loop {
	l := &Loop{
		ctx:      ctx,
		clk:      clk,
		rules:    rules,
		store:    store,
		observer: func(Snapshot) {},
	}
	for _, opt := range opts {
		opt(l)
	}

	high := 0
	if store != nil {
		readCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		n, err := store.HighScore(readCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("load high score")
		} else {
			high = n
		}
	}
	l.session = NewSession(rules, l.rng, high)
	return l
}

// RunID identifies the current run. It changes on every fresh start.
func (l *Loop) RunID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runID
}

func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Snapshot()
}

func (l *Loop) Start() bool     { return l.command((*Session).Start, true) }
func (l *Loop) Pause() bool     { return l.command((*Session).Pause, false) }
func (l *Loop) Resume() bool    { return l.command((*Session).Resume, false) }
func (l *Loop) Restart() bool   { return l.command((*Session).Restart, true) }
func (l *Loop) PlayAgain() bool { return l.command((*Session).PlayAgain, true) }
func (l *Loop) MoveLeft() bool  { return l.command((*Session).MoveLeft, false) }
func (l *Loop) MoveRight() bool { return l.command((*Session).MoveRight, false) }

// Apply dispatches a named command. Unknown or out-of-state commands are
// ignored and report false.
func (l *Loop) Apply(cmd Command) bool {
	switch cmd {
	case CommandStart:
		return l.Start()
	case CommandPause:
		return l.Pause()
	case CommandResume:
		return l.Resume()
	case CommandRestart:
		return l.Restart()
	case CommandPlayAgain:
		return l.PlayAgain()
	case CommandLeft:
		return l.MoveLeft()
	case CommandRight:
		return l.MoveRight()
	}
	return false
}

// Close cancels the tick timer. The loop ignores every call afterwards.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.disarm()
}

func (l *Loop) command(fn func(*Session) bool, freshRun bool) bool {
	l.mu.Lock()
	if l.closed || !fn(l.session) {
		l.mu.Unlock()
		return false
	}
	if freshRun {
		l.runID = uuid.NewString()
		log.Debug().Str("run_id", l.runID).Msg("code rush run started")
	}
	l.schedule()
	l.publish(l.session.Snapshot())
	return true
}

func (l *Loop) tick(gen uint64) {
	l.mu.Lock()
	if l.closed || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.timer = nil
	out := l.session.Tick()
	l.schedule()
	snap := l.session.Snapshot()
	runID := l.runID

	l.publish(snap)
	if out.GameOver {
		l.finish(runID, snap, out.NewHighScore)
	}
}

// schedule must be called with l.mu held.
func (l *Loop) schedule() {
	if l.session.State() != StatePlaying {
		l.disarm()
		return
	}
	if l.timer != nil {
		return
	}
	l.gen++
	gen := l.gen
	l.timer = l.clk.AfterFunc(l.rules.TickInterval, func() { l.tick(gen) })
}

// disarm must be called with l.mu held.
func (l *Loop) disarm() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}

// publish must be called with l.mu held; it releases it.
func (l *Loop) publish(snap Snapshot) {
	l.notifyMu.Lock()
	l.mu.Unlock()
	defer l.notifyMu.Unlock()
	l.observer(snap)
}

func (l *Loop) finish(runID string, snap Snapshot, newHigh bool) {
	log.Info().
		Str("run_id", runID).
		Int("score", snap.Score).
		Bool("new_high_score", newHigh).
		Msg("code rush game over")

	ctx, cancel := context.WithTimeout(l.ctx, storeTimeout)
	defer cancel()

	if newHigh && l.store != nil {
		if err := l.store.SaveHighScore(ctx, snap.Score); err != nil {
			log.Error().Err(err).Int("score", snap.Score).Msg("save high score")
		}
	}
	if l.recorder != nil {
		r := Result{
			RunID:     runID,
			Score:     snap.Score,
			GameSpeed: snap.GameSpeed,
			Ticks:     snap.Tick,
			EndedAt:   l.clk.Now(),
		}
		if err := l.recorder.RecordResult(ctx, r); err != nil {
			log.Error().Err(err).Str("run_id", runID).Msg("record result")
		}
	}
}
