package lifecycle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/soumaysikchi/portfolio/internal/clock"
)

// Config controls the phase timings of a page session.
type Config struct {
	LoadingDelay time.Duration
	IntroEnabled bool
	Intro        IntroConfig
}

// DefaultConfig holds the four second splash followed by the default intro.
func DefaultConfig() Config {
	return Config{
		LoadingDelay: 4 * time.Second,
		IntroEnabled: true,
		Intro:        DefaultIntroConfig(),
	}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithListener registers a callback invoked once for every phase entered.
// Callbacks are delivered in order and must not block or call back into
// the Orchestrator synchronously.
func WithListener(fn func(Phase)) Option {
	return func(o *Orchestrator) { o.onPhase = fn }
}

// WithCueListener registers a callback for intro timeline cues. The same
// delivery rules as WithListener apply.
func WithCueListener(fn func(Cue)) Option {
	return func(o *Orchestrator) { o.onCue = fn }
}

// Orchestrator decides which top-level view is mounted. Phases only move
// forward: Loading, then Intro when enabled, then Content for good.
type Orchestrator struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	clk clock.Clock
	cfg Config

	phase   Phase
	started bool
	// stopped is written under mu and read by deliver under notifyMu.
	stopped atomic.Bool
	loading clock.Timer
	intro   *Intro

	onPhase func(Phase)
	onCue   func(Cue)
}

func New(clk clock.Clock, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		clk:     clk,
		cfg:     cfg,
		phase:   PhaseLoading,
		onPhase: func(Phase) {},
		onCue:   func(Cue) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start enters Loading and arms the loading delay. Repeated calls, and
// calls after Stop, do nothing.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	if o.started || o.stopped.Load() {
		o.mu.Unlock()
		return
	}
	o.started = true
	o.phase = PhaseLoading
	o.loading = o.clk.AfterFunc(o.cfg.LoadingDelay, o.finishLoading)
	o.deliver(func() { o.onPhase(PhaseLoading) })
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// SkipOffered reports whether the intro currently shows its skip control.
// It turns false as soon as the intro ends.
func (o *Orchestrator) SkipOffered() bool {
	o.mu.Lock()
	intro := o.intro
	phase := o.phase
	o.mu.Unlock()
	return phase == PhaseIntro && intro != nil && !intro.Done() && intro.SkipOffered()
}

// RequestSkip jumps from Intro straight to Content. Outside Intro it is a
// no-op and reports false.
func (o *Orchestrator) RequestSkip() bool {
	o.mu.Lock()
	if o.stopped.Load() || o.phase != PhaseIntro || o.intro == nil {
		o.mu.Unlock()
		return false
	}
	intro := o.intro
	o.mu.Unlock()
	return intro.Skip()
}

// Stop tears the session down. All timers are cancelled and no listener
// runs once Stop returns. A listener call already in progress is waited
// for, so Stop must not be called from a listener.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped.Load() {
		o.mu.Unlock()
		return
	}
	o.stopped.Store(true)
	if o.loading != nil {
		o.loading.Stop()
	}
	intro := o.intro
	o.mu.Unlock()

	if intro != nil {
		intro.Cancel()
	}
	o.notifyMu.Lock()
	o.notifyMu.Unlock()
}

func (o *Orchestrator) finishLoading() {
	o.mu.Lock()
	if o.stopped.Load() || o.phase != PhaseLoading {
		o.mu.Unlock()
		return
	}
	if !o.cfg.IntroEnabled {
		o.advance(PhaseContent)
		return
	}

	intro := NewIntro(o.clk, o.cfg.Intro, o.introDone, o.deliverCue)
	o.intro = intro
	o.advance(PhaseIntro)
	intro.Begin()
}

func (o *Orchestrator) introDone(skipped bool) {
	o.mu.Lock()
	if o.stopped.Load() || o.phase != PhaseIntro {
		o.mu.Unlock()
		return
	}
	log.Debug().Bool("skipped", skipped).Msg("intro finished")
	o.advance(PhaseContent)
}

func (o *Orchestrator) deliverCue(c Cue) {
	o.mu.Lock()
	if o.stopped.Load() || o.phase != PhaseIntro {
		o.mu.Unlock()
		return
	}
	o.deliver(func() { o.onCue(c) })
}

// advance must be called with o.mu held; it releases it.
func (o *Orchestrator) advance(next Phase) {
	if !o.phase.canAdvanceTo(next, o.cfg.IntroEnabled) {
		o.mu.Unlock()
		return
	}
	log.Debug().Stringer("from", o.phase).Stringer("to", next).Msg("phase transition")
	o.phase = next
	o.deliver(func() { o.onPhase(next) })
}

// deliver must be called with o.mu held; it releases it. Holding notifyMu
// across the hand-off keeps callbacks in transition order. A Stop that
// lands between the two locks drops the callback.
func (o *Orchestrator) deliver(fn func()) {
	o.notifyMu.Lock()
	o.mu.Unlock()
	defer o.notifyMu.Unlock()
	if o.stopped.Load() {
		return
	}
	fn()
}
