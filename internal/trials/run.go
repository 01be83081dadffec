package trials

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/soumaysikchi/portfolio/internal/clock"
)

type State int

const (
	StateIntro State = iota
	StatePlaying
	StateLevelComplete
	StateGameComplete
)

var stateNames = map[State]string{
	StateIntro:         "intro",
	StatePlaying:       "playing",
	StateLevelComplete: "level-complete",
	StateGameComplete:  "game-complete",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Delays between the last level and the completion hand-off.
const (
	celebrateAfter = 2 * time.Second
	handOffAfter   = 3 * time.Second
)

// Random is the randomness boards are laid out with.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// Item is a clickable board element: a code line, a stack logo, a
// platform or a cloud.
type Item struct {
	ID       int     `json:"id"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Obstacle bool    `json:"obstacle,omitempty"`
	buggy    bool
}

type Snapshot struct {
	Level     int        `json:"level"`
	Levels    int        `json:"levels"`
	LevelName string     `json:"level_name"`
	State     State      `json:"state"`
	Score     int        `json:"score"`
	Total     int        `json:"total"`
	TimeLeft  int        `json:"time_left"`
	TimeBonus int        `json:"time_bonus"`
	Correct   int        `json:"correct"`
	Player    float64    `json:"player"`
	Items     []Item     `json:"items"`
	Conflicts []Conflict `json:"conflicts"`
}

type Option func(*Run)

// WithObserver receives a snapshot after every change, in order.
func WithObserver(fn func(Snapshot)) Option {
	return func(r *Run) { r.observer = fn }
}

func WithRandom(rng Random) Option {
	return func(r *Run) { r.rng = rng }
}

// WithCompletion is called once, a few seconds after the last level ends.
func WithCompletion(fn func(total int)) Option {
	return func(r *Run) { r.onComplete = fn }
}

// Run is one playthrough of the trials. It is safe for concurrent use.
type Run struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	clk        clock.Clock
	rng        Random
	observer   func(Snapshot)
	onComplete func(total int)

	level     int
	state     State
	score     int
	total     int
	timeLeft  int
	timeBonus int
	correct   int
	player    float64
	climbed   int
	items     []Item
	conflicts []Conflict

	timer  clock.Timer
	gen    uint64
	closed bool
}

func NewRun(clk clock.Clock, opts ...Option) *Run {
	r := &Run{
		clk:        clk,
		rng:        globalRandom{},
		observer:   func(Snapshot) {},
		onComplete: func(int) {},
		state:      StateIntro,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// StartLevel begins the current level from its intro screen.
func (r *Run) StartLevel() bool {
	return r.mutate(func() bool {
		if r.state != StateIntro {
			return false
		}
		lvl := Levels[r.level]
		r.state = StatePlaying
		r.score = 0
		r.timeBonus = 0
		r.correct = 0
		r.player = 0
		r.climbed = 0
		r.timeLeft = int(lvl.Duration / time.Second)
		r.layout(lvl.Kind)
		r.arm(time.Second, r.countdown)
		log.Debug().Str("level", lvl.Name).Msg("trial level started")
		return true
	})
}

// NextLevel moves from a completed level to the following intro.
func (r *Run) NextLevel() bool {
	return r.mutate(func() bool {
		if r.state != StateLevelComplete || r.level == len(Levels)-1 {
			return false
		}
		r.level++
		r.state = StateIntro
		r.items = nil
		r.conflicts = nil
		return true
	})
}

// Pick clicks a board item. Its effect depends on the level.
func (r *Run) Pick(id int) bool {
	return r.mutate(func() bool {
		if r.state != StatePlaying {
			return false
		}
		idx := r.itemIndex(id)
		if idx < 0 {
			return false
		}
		switch Levels[r.level].Kind {
		case BugHunt:
			if !r.items[idx].buggy {
				r.score = max(0, r.score-bugMiss)
				return true
			}
			r.score += bugHit
			r.correct++
			r.removeItem(idx)
			if !r.anyBuggy() {
				r.completeLevel()
			}
		case StackBuilder:
			r.score += stackPick
			r.removeItem(idx)
			if len(r.items) == 0 {
				r.completeLevel()
			}
		case CloudAscension:
			// Clouds must be climbed from the lowest up.
			if r.items[idx].ID != r.climbed {
				return false
			}
			r.climbed++
			r.score += cloudClimb
			r.removeItem(idx)
			if len(r.items) == 0 {
				r.completeLevel()
			}
		default:
			return false
		}
		return true
	})
}

// Move steps the sprinter left (dir < 0) or right (dir > 0).
func (r *Run) Move(dir int) bool {
	return r.mutate(func() bool {
		if r.state != StatePlaying || Levels[r.level].Kind != CodeSprint || dir == 0 {
			return false
		}
		step := float64(sprintStep)
		if dir < 0 {
			step = -step
		}
		r.player = min(max(r.player+step, 0), sprintMax)
		return true
	})
}

// Resolve picks a side of a merge conflict.
func (r *Run) Resolve(id int, side Side) bool {
	return r.mutate(func() bool {
		if r.state != StatePlaying || Levels[r.level].Kind != GitMerge {
			return false
		}
		for i, c := range r.conflicts {
			if c.ID != id {
				continue
			}
			if c.correct != side {
				return false
			}
			r.score += mergeResolved
			r.correct++
			r.conflicts = append(r.conflicts[:i], r.conflicts[i+1:]...)
			if len(r.conflicts) == 0 {
				r.completeLevel()
			}
			return true
		}
		return false
	})
}

// Close cancels every pending timer; the completion callback never runs
// after Close.
func (r *Run) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.disarm()
}

func (r *Run) countdown(gen uint64) {
	r.mutate(func() bool {
		if gen != r.gen || r.state != StatePlaying {
			return false
		}
		r.timeLeft--
		if r.timeLeft <= 0 {
			r.timeLeft = 0
			r.completeLevel()
			return true
		}
		r.arm(time.Second, r.countdown)
		return true
	})
}

// completeLevel must be called with r.mu held.
func (r *Run) completeLevel() {
	r.disarm()
	r.state = StateLevelComplete
	r.timeBonus = r.timeLeft * timeBonusPerS
	r.total += r.score + r.timeBonus
	log.Debug().
		Str("level", Levels[r.level].Name).
		Int("score", r.score).
		Int("time_bonus", r.timeBonus).
		Msg("trial level complete")

	if r.level == len(Levels)-1 {
		r.arm(celebrateAfter, r.celebrate)
	}
}

func (r *Run) celebrate(gen uint64) {
	r.mutate(func() bool {
		if gen != r.gen || r.state != StateLevelComplete {
			return false
		}
		r.state = StateGameComplete
		r.arm(handOffAfter, r.handOff)
		return true
	})
}

func (r *Run) handOff(gen uint64) {
	r.mu.Lock()
	if r.closed || gen != r.gen || r.state != StateGameComplete || r.timer == nil {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	total := r.total
	r.mu.Unlock()

	log.Info().Int("total", total).Msg("dev trials complete")
	r.onComplete(total)
}

func (r *Run) mutate(fn func() bool) bool {
	r.mu.Lock()
	if r.closed || !fn() {
		r.mu.Unlock()
		return false
	}
	snap := r.snapshot()
	r.notifyMu.Lock()
	r.mu.Unlock()
	defer r.notifyMu.Unlock()
	r.observer(snap)
	return true
}

// arm must be called with r.mu held. It replaces any pending timer; fn
// receives the generation it was armed under and must ignore itself
// once that generation is gone.
func (r *Run) arm(d time.Duration, fn func(gen uint64)) {
	r.disarm()
	gen := r.gen
	r.timer = r.clk.AfterFunc(d, func() { fn(gen) })
}

func (r *Run) disarm() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
}

func (r *Run) layout(kind LevelKind) {
	r.items = nil
	r.conflicts = nil
	switch kind {
	case BugHunt:
		for i := range bugsPerBoard {
			s := snippets[r.rng.IntN(len(snippets))]
			r.items = append(r.items, Item{
				ID: i, Label: s.text, buggy: s.buggy,
				X: r.rng.Float64() * 800, Y: r.rng.Float64() * 400,
			})
		}
	case StackBuilder:
		for i, name := range stackNames {
			r.items = append(r.items, Item{
				ID: i, Label: name,
				X: r.rng.Float64() * 600, Y: 400 + r.rng.Float64()*200,
			})
		}
	case CodeSprint:
		for i := range platformsCount {
			r.items = append(r.items, Item{
				ID: i, Label: "platform",
				X: r.rng.Float64() * 800, Y: float64(i * 60),
				Obstacle: r.rng.Float64() < 0.3,
			})
		}
	case GitMerge:
		r.conflicts = conflicts()
	case CloudAscension:
		for i, name := range cloudNames {
			r.items = append(r.items, Item{
				ID: i, Label: name,
				X: r.rng.Float64() * 600, Y: float64(400 - i*80),
			})
		}
	}
}

func (r *Run) itemIndex(id int) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (r *Run) removeItem(idx int) {
	r.items = append(r.items[:idx], r.items[idx+1:]...)
}

func (r *Run) anyBuggy() bool {
	for _, it := range r.items {
		if it.buggy {
			return true
		}
	}
	return false
}

func (r *Run) snapshot() Snapshot {
	return Snapshot{
		Level:     r.level + 1,
		Levels:    len(Levels),
		LevelName: Levels[r.level].Name,
		State:     r.state,
		Score:     r.score,
		Total:     r.total,
		TimeLeft:  r.timeLeft,
		TimeBonus: r.timeBonus,
		Correct:   r.correct,
		Player:    r.player,
		Items:     append([]Item{}, r.items...),
		Conflicts: append([]Conflict{}, r.conflicts...),
	}
}
