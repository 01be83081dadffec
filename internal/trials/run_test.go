package trials

import (
	"testing"
	"time"

	"github.com/soumaysikchi/portfolio/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed always draws the same values, so bug hunt boards are eight copies
// of snippets[idx].
type fixed struct{ idx int }

func (f fixed) Float64() float64 { return 0.5 }
func (f fixed) IntN(n int) int   { return f.idx % n }

func newTestRun(t *testing.T, rng Random) (*Run, *clock.Manual, *[]int) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	done := &[]int{}
	r := NewRun(clk, WithRandom(rng), WithCompletion(func(total int) { *done = append(*done, total) }))
	t.Cleanup(r.Close)
	return r, clk, done
}

func TestRun_CountdownCompletesLevel(t *testing.T) {
	r, clk, _ := newTestRun(t, fixed{})
	require.True(t, r.StartLevel())
	assert.Equal(t, 30, r.Snapshot().TimeLeft)

	clk.Advance(10 * time.Second)
	assert.Equal(t, 20, r.Snapshot().TimeLeft)

	clk.Advance(20 * time.Second)
	snap := r.Snapshot()
	assert.Equal(t, StateLevelComplete, snap.State)
	assert.Equal(t, 0, snap.TimeLeft)
	assert.Equal(t, 0, clk.Pending())
}

func TestRun_BugHuntScoring(t *testing.T) {
	t.Run("missing a bug costs points but never below zero", func(t *testing.T) {
		r, _, _ := newTestRun(t, fixed{idx: 1})
		r.StartLevel()
		assert.True(t, r.Pick(0))
		assert.Equal(t, 0, r.Snapshot().Score)
		assert.Len(t, r.Snapshot().Items, bugsPerBoard)
	})

	t.Run("catching every bug ends the level early", func(t *testing.T) {
		r, clk, _ := newTestRun(t, fixed{idx: 0})
		r.StartLevel()
		clk.Advance(5 * time.Second)

		for id := range bugsPerBoard {
			require.True(t, r.Pick(id))
		}
		snap := r.Snapshot()
		assert.Equal(t, StateLevelComplete, snap.State)
		assert.Equal(t, bugsPerBoard*bugHit, snap.Score)
		assert.Equal(t, bugsPerBoard, snap.Correct)
		assert.Equal(t, 25*timeBonusPerS, snap.TimeBonus)
		assert.Equal(t, bugsPerBoard*bugHit+25*timeBonusPerS, snap.Total)
		assert.False(t, r.Pick(0))
	})

	t.Run("unknown item", func(t *testing.T) {
		r, _, _ := newTestRun(t, fixed{})
		r.StartLevel()
		assert.False(t, r.Pick(99))
	})
}

func TestRun_NextLevelOnlyAfterCompletion(t *testing.T) {
	r, clk, _ := newTestRun(t, fixed{})
	assert.False(t, r.NextLevel())
	r.StartLevel()
	assert.False(t, r.NextLevel())
	assert.False(t, r.StartLevel())

	clk.Advance(30 * time.Second)
	require.True(t, r.NextLevel())
	snap := r.Snapshot()
	assert.Equal(t, 2, snap.Level)
	assert.Equal(t, "Stack Builder", snap.LevelName)
	assert.Equal(t, StateIntro, snap.State)
}

func TestRun_FullPlaythrough(t *testing.T) {
	r, clk, done := newTestRun(t, fixed{idx: 0})

	// Bug hunt: catch all bugs.
	r.StartLevel()
	for id := range bugsPerBoard {
		r.Pick(id)
	}
	require.True(t, r.NextLevel())

	// Stack builder: pick every logo.
	r.StartLevel()
	for id := range stackNames {
		require.True(t, r.Pick(id))
	}
	require.Equal(t, StateLevelComplete, r.Snapshot().State)
	require.True(t, r.NextLevel())

	// Code sprint: run the clock out while moving.
	r.StartLevel()
	assert.False(t, r.Pick(0))
	for range 50 {
		r.Move(1)
	}
	assert.Equal(t, float64(sprintMax), r.Snapshot().Player)
	r.Move(-1)
	assert.Equal(t, float64(sprintMax-sprintStep), r.Snapshot().Player)
	clk.Advance(60 * time.Second)
	require.True(t, r.NextLevel())

	// Git merge: wrong side is rejected.
	r.StartLevel()
	assert.False(t, r.Resolve(1, Right))
	require.True(t, r.Resolve(1, Left))
	require.True(t, r.Resolve(2, Right))
	require.True(t, r.Resolve(3, Left))
	require.Equal(t, StateLevelComplete, r.Snapshot().State)
	require.True(t, r.NextLevel())

	// Cloud ascension: bottom-up only.
	r.StartLevel()
	assert.False(t, r.Pick(2))
	require.True(t, r.Pick(0))
	require.True(t, r.Pick(1))
	require.True(t, r.Pick(2))
	require.Equal(t, StateLevelComplete, r.Snapshot().State)
	assert.False(t, r.NextLevel())

	clk.Advance(2 * time.Second)
	assert.Equal(t, StateGameComplete, r.Snapshot().State)
	assert.Empty(t, *done)

	clk.Advance(3 * time.Second)
	require.Len(t, *done, 1)
	assert.Equal(t, r.Snapshot().Total, (*done)[0])

	clk.Advance(time.Minute)
	assert.Len(t, *done, 1)
	assert.Equal(t, 0, clk.Pending())
}

func TestRun_CloseCancelsHandOff(t *testing.T) {
	r, clk, done := newTestRun(t, fixed{})
	for range len(Levels) - 1 {
		r.StartLevel()
		clk.Advance(time.Minute)
		r.NextLevel()
	}
	r.StartLevel()
	clk.Advance(50 * time.Second)
	require.Equal(t, StateLevelComplete, r.Snapshot().State)

	r.Close()
	assert.Equal(t, 0, clk.Pending())
	clk.Advance(time.Minute)
	assert.Empty(t, *done)
	assert.False(t, r.StartLevel())
}
