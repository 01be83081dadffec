package game

import "fmt"

// State is the session state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

var stateNames = map[State]string{
	StateMenu:     "menu",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateGameOver: "game-over",
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

// Outcome describes what a single tick did.
type Outcome struct {
	Ticked       bool
	GameOver     bool
	NewHighScore bool
	Collected    int
}

// Snapshot is a copy of the session state safe to hand to renderers.
type Snapshot struct {
	State          State    `json:"state"`
	Score          int      `json:"score"`
	HighScore      int      `json:"high_score"`
	NewHighScore   bool     `json:"new_high_score"`
	PlayerPosition float64  `json:"player_position"`
	GameSpeed      float64  `json:"game_speed"`
	Obstacles      []Entity `json:"obstacles"`
	Collectibles   []Entity `json:"collectibles"`
	Tick           uint64   `json:"tick"`
}

// Session is one Code Rush game. It is a pure simulation: nothing advances
// unless Tick is called, and it is not safe for concurrent use. See Loop
// for the scheduled, concurrency-safe wrapper.
type Session struct {
	rules Rules
	rng   Random

	state        State
	score        int
	highScore    int
	newHighScore bool
	player       float64
	speed        float64
	speedLevel   int
	obstacles    []Entity
	collectibles []Entity
	nextID       uint64
	ticks        uint64
}

// NewSession returns a session in the menu. A nil rng uses the global
// math/rand/v2 source.
func NewSession(rules Rules, rng Random, highScore int) *Session {
	if rng == nil {
		rng = globalRandom{}
	}
	return &Session{
		rules:     rules,
		rng:       rng,
		state:     StateMenu,
		highScore: max(highScore, 0),
		speed:     rules.Difficulty.StartSpeed,
	}
}

func (s *Session) State() State    { return s.state }
func (s *Session) Score() int      { return s.score }
func (s *Session) HighScore() int  { return s.highScore }
func (s *Session) Speed() float64  { return s.speed }
func (s *Session) Player() float64 { return s.player }

// Start leaves the menu.
func (s *Session) Start() bool {
	if s.state != StateMenu {
		return false
	}
	s.reset()
	return true
}

func (s *Session) Pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.state = StatePaused
	return true
}

func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StatePlaying
	return true
}

// Restart abandons a paused game and begins a fresh one.
func (s *Session) Restart() bool {
	if s.state != StatePaused {
		return false
	}
	s.reset()
	return true
}

func (s *Session) PlayAgain() bool {
	if s.state != StateGameOver {
		return false
	}
	s.reset()
	return true
}

func (s *Session) MoveLeft() bool  { return s.move(-s.rules.Player.MoveStep) }
func (s *Session) MoveRight() bool { return s.move(s.rules.Player.MoveStep) }

func (s *Session) move(delta float64) bool {
	if s.state != StatePlaying {
		return false
	}
	s.player = min(max(s.player+delta, s.rules.Player.Min), s.rules.Player.Max)
	return true
}

// Tick advances the simulation by one step. The order is fixed: score,
// movement and expiry, spawning, obstacle collision, collectible pickup,
// difficulty. An obstacle hit ends the tick before any pickup.
func (s *Session) Tick() Outcome {
	if s.state != StatePlaying {
		return Outcome{}
	}
	s.ticks++
	s.score += s.rules.Scoring.PerTick

	s.obstacles = s.advance(s.obstacles)
	s.collectibles = s.advance(s.collectibles)

	s.spawn()

	out := Outcome{Ticked: true}
	player := s.playerBox()
	for _, o := range s.obstacles {
		if player.overlaps(s.entityBox(o)) {
			out.GameOver = true
			out.NewHighScore = s.gameOver()
			return out
		}
	}

	kept := s.collectibles[:0]
	for _, c := range s.collectibles {
		if player.overlaps(s.entityBox(c)) {
			s.score += s.rules.Scoring.CollectBonus
			out.Collected++
			continue
		}
		kept = append(kept, c)
	}
	s.collectibles = kept

	s.scaleDifficulty()
	return out
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:          s.state,
		Score:          s.score,
		HighScore:      s.highScore,
		NewHighScore:   s.newHighScore,
		PlayerPosition: s.player,
		GameSpeed:      s.speed,
		Obstacles:      cloneEntities(s.obstacles),
		Collectibles:   cloneEntities(s.collectibles),
		Tick:           s.ticks,
	}
}

func (s *Session) reset() {
	s.state = StatePlaying
	s.score = 0
	s.newHighScore = false
	s.player = 0
	s.speed = s.rules.Difficulty.StartSpeed
	s.speedLevel = 0
	s.obstacles = nil
	s.collectibles = nil
	s.ticks = 0
}

func (s *Session) advance(entities []Entity) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		e.X -= s.speed
		if e.X > s.rules.Spawn.DespawnX {
			kept = append(kept, e)
		}
	}
	return kept
}

func (s *Session) spawn() {
	sp := s.rules.Spawn
	if s.rng.Float64() < sp.ObstacleChance {
		y := s.spawnY()
		kind := KindError
		if s.rng.Float64() < sp.BugWeight {
			kind = KindBug
		}
		s.obstacles = append(s.obstacles, s.newEntity(y, kind))
	}
	if len(sp.CollectibleKinds) > 0 && s.rng.Float64() < sp.CollectibleChance {
		y := s.spawnY()
		kind := sp.CollectibleKinds[s.rng.IntN(len(sp.CollectibleKinds))]
		s.collectibles = append(s.collectibles, s.newEntity(y, kind))
	}
}

func (s *Session) spawnY() float64 {
	sp := s.rules.Spawn
	return sp.YMin + s.rng.Float64()*(sp.YMax-sp.YMin)
}

func (s *Session) newEntity(y float64, kind Kind) Entity {
	s.nextID++
	return Entity{ID: s.nextID, X: s.rules.Spawn.X, Y: y, Kind: kind}
}

func (s *Session) gameOver() bool {
	s.state = StateGameOver
	if s.score > s.highScore {
		s.highScore = s.score
		s.newHighScore = true
		return true
	}
	return false
}

func (s *Session) scaleDifficulty() {
	d := s.rules.Difficulty
	if d.Threshold <= 0 {
		return
	}
	for level := s.score / d.Threshold; s.speedLevel < level; s.speedLevel++ {
		s.speed = min(s.speed+d.Step, d.Max)
	}
}

func (s *Session) playerBox() box {
	size := s.rules.Player.Size
	return box{cx: s.player, cy: 0, w: size, h: size}
}

func (s *Session) entityBox(e Entity) box {
	size := s.rules.Spawn.EntitySize
	return box{cx: e.X, cy: e.Y, w: size, h: size}
}

func cloneEntities(entities []Entity) []Entity {
	return append(make([]Entity, 0, len(entities)), entities...)
}
