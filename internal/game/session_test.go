package game

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed draws. Once exhausted, Float64 returns 0.99 so
// nothing spawns.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scripted) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func playing(t *testing.T, high int) *Session {
	t.Helper()
	s := NewSession(DefaultRules(), &scripted{}, high)
	require.True(t, s.Start())
	return s
}

func TestSession_StateMachine(t *testing.T) {
	tests := []struct {
		name  string
		from  func(s *Session)
		apply func(s *Session) bool
		ok    bool
		want  State
	}{
		{"start from menu", func(s *Session) {}, (*Session).Start, true, StatePlaying},
		{"pause from menu", func(s *Session) {}, (*Session).Pause, false, StateMenu},
		{"resume from menu", func(s *Session) {}, (*Session).Resume, false, StateMenu},
		{"move in menu", func(s *Session) {}, (*Session).MoveRight, false, StateMenu},
		{"pause while playing", func(s *Session) { s.Start() }, (*Session).Pause, true, StatePaused},
		{"start while playing", func(s *Session) { s.Start() }, (*Session).Start, false, StatePlaying},
		{"play again while playing", func(s *Session) { s.Start() }, (*Session).PlayAgain, false, StatePlaying},
		{"resume while paused", func(s *Session) { s.Start(); s.Pause() }, (*Session).Resume, true, StatePlaying},
		{"restart while paused", func(s *Session) { s.Start(); s.Pause() }, (*Session).Restart, true, StatePlaying},
		{"pause while paused", func(s *Session) { s.Start(); s.Pause() }, (*Session).Pause, false, StatePaused},
		{"play again after game over", func(s *Session) { s.Start(); s.gameOver() }, (*Session).PlayAgain, true, StatePlaying},
		{"resume after game over", func(s *Session) { s.Start(); s.gameOver() }, (*Session).Resume, false, StateGameOver},
		{"restart after game over", func(s *Session) { s.Start(); s.gameOver() }, (*Session).Restart, false, StateGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(DefaultRules(), &scripted{}, 0)
			tt.from(s)
			assert.Equal(t, tt.ok, tt.apply(s))
			assert.Equal(t, tt.want, s.State())
		})
	}
}

func TestSession_TickIsNoopUnlessPlaying(t *testing.T) {
	s := NewSession(DefaultRules(), &scripted{floats: []float64{0}}, 0)
	assert.Equal(t, Outcome{}, s.Tick())
	assert.Equal(t, 0, s.Score())

	s.Start()
	s.Pause()
	before := s.Snapshot()
	assert.Equal(t, Outcome{}, s.Tick())
	assert.Equal(t, before, s.Snapshot())
}

func TestSession_ScorePerTick(t *testing.T) {
	s := playing(t, 0)
	for range 42 {
		s.Tick()
	}
	assert.Equal(t, 42, s.Score())
	assert.Equal(t, uint64(42), s.Snapshot().Tick)
}

func TestSession_SpawnAfterMovement(t *testing.T) {
	rng := &scripted{
		floats: []float64{0.01, 0.5, 0.6, 0.02, 0.25},
		ints:   []int{2},
	}
	s := NewSession(DefaultRules(), rng, 0)
	s.Start()
	s.Tick()

	snap := s.Snapshot()
	require.Len(t, snap.Obstacles, 1)
	require.Len(t, snap.Collectibles, 1)
	assert.Equal(t, Entity{ID: 1, X: 20, Y: 0, Kind: KindBug}, snap.Obstacles[0])
	assert.Equal(t, Entity{ID: 2, X: 20, Y: -1, Kind: KindMongo}, snap.Collectibles[0])

	s.Tick()
	snap = s.Snapshot()
	assert.InDelta(t, 18.0, snap.Obstacles[0].X, 1e-9)
	assert.InDelta(t, 18.0, snap.Collectibles[0].X, 1e-9)
}

func TestSession_ErrorKindWhenAboveBugWeight(t *testing.T) {
	s := NewSession(DefaultRules(), &scripted{floats: []float64{0.0, 0.0, 0.9, 0.99}}, 0)
	s.Start()
	s.Tick()
	require.Len(t, s.Snapshot().Obstacles, 1)
	assert.Equal(t, KindError, s.Snapshot().Obstacles[0].Kind)
	assert.InDelta(t, -2.0, s.Snapshot().Obstacles[0].Y, 1e-9)
}

func TestSession_ExpiredEntitiesAreRemoved(t *testing.T) {
	s := playing(t, 0)
	s.obstacles = []Entity{{ID: 1, X: -7.5, Y: 2, Kind: KindBug}, {ID: 2, X: 5, Y: 2, Kind: KindBug}}
	s.collectibles = []Entity{{ID: 3, X: -8, Y: 2, Kind: KindReact}}

	s.Tick()
	snap := s.Snapshot()
	require.Len(t, snap.Obstacles, 2)
	assert.InDelta(t, -9.5, snap.Obstacles[0].X, 1e-9)
	assert.Len(t, snap.Collectibles, 0)

	s.Tick()
	snap = s.Snapshot()
	require.Len(t, snap.Obstacles, 1)
	assert.Equal(t, uint64(2), snap.Obstacles[0].ID)
}

func TestSession_CollectionsStayBounded(t *testing.T) {
	rules := DefaultRules()
	rules.Spawn.ObstacleChance = 0.5
	rules.Spawn.CollectibleChance = 0.5
	s := NewSession(rules, rand.New(rand.NewPCG(1, 2)), 0)
	s.Start()

	// Entities live for at most (SpawnX-DespawnX)/StartSpeed ticks and at
	// most one of each kind spawns per tick.
	limit := int((rules.Spawn.X-rules.Spawn.DespawnX)/rules.Difficulty.StartSpeed) + 1
	for range 20_000 {
		s.Tick()
		if s.State() == StateGameOver {
			s.PlayAgain()
			continue
		}
		snap := s.Snapshot()
		assert.LessOrEqual(t, len(snap.Obstacles), limit)
		assert.LessOrEqual(t, len(snap.Collectibles), limit)
		for _, e := range append(snap.Obstacles, snap.Collectibles...) {
			require.Greater(t, e.X, rules.Spawn.DespawnX)
		}
	}
}

func TestSession_ObstacleTakesPriorityOverCollectible(t *testing.T) {
	s := playing(t, 0)
	s.player = 0.5
	speed := s.Speed()
	s.obstacles = []Entity{{ID: 1, X: 0.5 + speed, Y: 0, Kind: KindBug}}
	s.collectibles = []Entity{{ID: 2, X: 0.5 + speed, Y: 0, Kind: KindReact}}

	out := s.Tick()

	assert.True(t, out.GameOver)
	assert.True(t, out.NewHighScore)
	assert.Zero(t, out.Collected)
	snap := s.Snapshot()
	assert.Equal(t, StateGameOver, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 1, snap.HighScore)
	require.Len(t, snap.Collectibles, 1)
	assert.Equal(t, uint64(2), snap.Collectibles[0].ID)
}

func TestSession_CollectibleBonus(t *testing.T) {
	s := playing(t, 0)
	speed := s.Speed()
	s.collectibles = []Entity{
		{ID: 1, X: 0.3 + speed, Y: 0.4, Kind: KindReact},
		{ID: 2, X: -0.3 + speed, Y: -0.4, Kind: KindNode},
		{ID: 3, X: 1.0 + speed, Y: 0, Kind: KindMongo},
	}

	out := s.Tick()

	assert.Equal(t, 2, out.Collected)
	assert.Equal(t, 1+20, s.Score())
	require.Len(t, s.Snapshot().Collectibles, 1)
	assert.Equal(t, uint64(3), s.Snapshot().Collectibles[0].ID)
}

func TestSession_HighScoreIsMax(t *testing.T) {
	tests := []struct {
		name     string
		high     int
		ticks    int
		wantHigh int
		wantNew  bool
	}{
		{"beats previous", 3, 9, 10, true},
		{"below previous", 50, 9, 50, false},
		{"ties previous", 10, 9, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playing(t, tt.high)
			for range tt.ticks {
				s.Tick()
			}
			s.obstacles = []Entity{{ID: 99, X: s.Speed(), Y: 0, Kind: KindError}}
			out := s.Tick()

			require.True(t, out.GameOver)
			assert.Equal(t, tt.wantNew, out.NewHighScore)
			assert.Equal(t, tt.wantHigh, s.HighScore())
			assert.Equal(t, tt.wantNew, s.Snapshot().NewHighScore)

			s.PlayAgain()
			assert.False(t, s.Snapshot().NewHighScore)
			assert.Equal(t, tt.wantHigh, s.HighScore())
		})
	}
}

func TestSession_HighScoreMonotonicUnderRandomPlay(t *testing.T) {
	rules := DefaultRules()
	rules.Spawn.ObstacleChance = 0.2
	s := NewSession(rules, rand.New(rand.NewPCG(7, 11)), 0)
	s.Start()

	games := 0
	for games < 200 {
		before := s.HighScore()
		out := s.Tick()
		require.GreaterOrEqual(t, s.Score(), 0)
		if out.GameOver {
			assert.Equal(t, max(before, s.Score()), s.HighScore())
			games++
			s.PlayAgain()
		}
	}
}

func TestSession_DifficultyScaling(t *testing.T) {
	tests := []struct {
		score int
		speed float64
	}{
		{score: 99, speed: 2.0},
		{score: 100, speed: 2.5},
		{score: 250, speed: 3.0},
		{score: 1200, speed: 8.0},
		{score: 5000, speed: 8.0},
	}

	for _, tt := range tests {
		s := playing(t, 0)
		s.score = tt.score - 1
		s.Tick()
		assert.InDelta(t, tt.speed, s.Speed(), 1e-9, "score %d", tt.score)
	}
}

func TestSession_DifficultyCountsBonusCrossings(t *testing.T) {
	s := playing(t, 0)
	s.score = 95
	s.collectibles = []Entity{{ID: 1, X: s.Speed(), Y: 0, Kind: KindReact}}

	s.Tick()
	assert.Equal(t, 106, s.Score())
	assert.InDelta(t, 2.5, s.Speed(), 1e-9)

	for range 10 {
		s.Tick()
	}
	assert.InDelta(t, 2.5, s.Speed(), 1e-9)
}

func TestSession_SpeedNeverDecreases(t *testing.T) {
	s := NewSession(DefaultRules(), rand.New(rand.NewPCG(3, 4)), 0)
	s.Start()
	prev := s.Speed()
	for range 5000 {
		if s.Tick().GameOver {
			break
		}
		require.GreaterOrEqual(t, s.Speed(), prev)
		require.LessOrEqual(t, s.Speed(), DefaultRules().Difficulty.Max)
		prev = s.Speed()
	}
}

func TestSession_PauseResumePreservesState(t *testing.T) {
	s := NewSession(DefaultRules(), &scripted{floats: []float64{0.0, 0.9, 0.1, 0.0, 0.1}}, 0)
	s.Start()
	s.Tick()
	s.MoveLeft()
	s.Tick()

	before := s.Snapshot()
	require.True(t, s.Pause())
	require.True(t, s.Resume())
	after := s.Snapshot()

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("snapshot changed across pause/resume (-before +after):\n%s", diff)
	}
}

func TestSession_InputClamping(t *testing.T) {
	s := playing(t, 0)
	for range 100 {
		s.MoveRight()
		require.LessOrEqual(t, s.Player(), 8.0)
	}
	assert.Equal(t, 8.0, s.Player())

	for range 100 {
		s.MoveLeft()
		require.GreaterOrEqual(t, s.Player(), -8.0)
	}
	assert.Equal(t, -8.0, s.Player())

	s.Pause()
	assert.False(t, s.MoveRight())
	assert.Equal(t, -8.0, s.Player())
}

func TestSession_ResetClearsRun(t *testing.T) {
	s := NewSession(DefaultRules(), &scripted{floats: []float64{0.0, 0.9, 0.1}}, 0)
	s.Start()
	s.Tick()
	s.MoveRight()
	s.score = 150
	s.scaleDifficulty()
	s.Pause()

	require.True(t, s.Restart())
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0.0, snap.PlayerPosition)
	assert.Equal(t, 2.0, snap.GameSpeed)
	assert.Empty(t, snap.Obstacles)
	assert.Empty(t, snap.Collectibles)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "game-over", StateGameOver.String())
	text, err := StatePaused.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "paused", string(text))
}
