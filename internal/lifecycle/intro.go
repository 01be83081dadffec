package lifecycle

import (
	"sync"
	"time"

	"github.com/soumaysikchi/portfolio/internal/clock"
)

// Cue names of the default intro script.
const (
	CueCameraDolly = "camera-dolly"
	CueSkipOffered = "skip-offered"
	CueSubtitle    = "subtitle"
)

// Cue is a named beat on the intro timeline, relative to the intro start.
type Cue struct {
	Name string        `json:"name"`
	At   time.Duration `json:"at"`
}

// IntroConfig is the scripted intro timeline.
type IntroConfig struct {
	Duration time.Duration
	Script   []Cue
}

// DefaultIntroConfig is the robot walk-in scene: the camera settles over
// three seconds, the skip control appears, the subtitle shows once the
// robot reaches the centre, and the sequence hands over at six seconds.
func DefaultIntroConfig() IntroConfig {
	return IntroConfig{
		Duration: 6 * time.Second,
		Script: []Cue{
			{Name: CueCameraDolly, At: 0},
			{Name: CueSkipOffered, At: 3 * time.Second},
			{Name: CueSubtitle, At: 4500 * time.Millisecond},
		},
	}
}

// Intro plays a cue timeline and reports completion exactly once, either
// when the timeline runs out or when skipped. A cancelled intro never
// reports completion.
type Intro struct {
	mu  sync.Mutex
	clk clock.Clock
	cfg IntroConfig

	timers   []clock.Timer
	begun    bool
	finished bool
	offered  bool

	onCue  func(Cue)
	onDone func(skipped bool)
}

// NewIntro builds an intro. onDone is required; onCue may be nil.
func NewIntro(clk clock.Clock, cfg IntroConfig, onDone func(skipped bool), onCue func(Cue)) *Intro {
	if onCue == nil {
		onCue = func(Cue) {}
	}
	return &Intro{clk: clk, cfg: cfg, onDone: onDone, onCue: onCue}
}

// Begin arms the cue timers and the completion timer. Only the first call
// has any effect, and none after Cancel or Skip.
func (i *Intro) Begin() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.begun || i.finished {
		return
	}
	i.begun = true

	for _, cue := range i.cfg.Script {
		if cue.At > i.cfg.Duration {
			continue
		}
		i.timers = append(i.timers, i.clk.AfterFunc(cue.At, func() { i.fire(cue) }))
	}
	i.timers = append(i.timers, i.clk.AfterFunc(i.cfg.Duration, func() { i.finish(false) }))
}

// Skip ends the intro early. It reports false if the intro already ended.
func (i *Intro) Skip() bool {
	return i.finish(true)
}

// Cancel tears the intro down without reporting completion.
func (i *Intro) Cancel() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.finished = true
	i.stopTimers()
}

// SkipOffered reports whether the skip control has been revealed.
func (i *Intro) SkipOffered() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.offered
}

// Done reports whether the intro has ended for any reason.
func (i *Intro) Done() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.finished
}

func (i *Intro) fire(cue Cue) {
	i.mu.Lock()
	if i.finished {
		i.mu.Unlock()
		return
	}
	if cue.Name == CueSkipOffered {
		i.offered = true
	}
	i.mu.Unlock()
	i.onCue(cue)
}

func (i *Intro) finish(skipped bool) bool {
	i.mu.Lock()
	if i.finished {
		i.mu.Unlock()
		return false
	}
	i.finished = true
	i.stopTimers()
	i.mu.Unlock()

	i.onDone(skipped)
	return true
}

func (i *Intro) stopTimers() {
	for _, t := range i.timers {
		t.Stop()
	}
	i.timers = nil
}
