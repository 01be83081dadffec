// Package game implements Code Rush, a side-scrolling arcade game: the
// player dodges bugs and errors and collects framework icons while the
// world speeds up.
package game

import "time"

// Rules holds every tunable of a Code Rush session.
type Rules struct {
	TickInterval time.Duration
	Scoring      ScoringRules
	Player       PlayerRules
	Spawn        SpawnRules
	Difficulty   DifficultyRules
}

type ScoringRules struct {
	PerTick      int
	CollectBonus int
}

// PlayerRules bounds the player's horizontal position. The player sits on
// the y = 0 lane.
type PlayerRules struct {
	Min      float64
	Max      float64
	MoveStep float64
	Size     float64
}

// SpawnRules controls where and how often entities appear and when they
// expire.
type SpawnRules struct {
	X                 float64
	DespawnX          float64
	YMin              float64
	YMax              float64
	EntitySize        float64
	ObstacleChance    float64
	CollectibleChance float64
	BugWeight         float64
	CollectibleKinds  []Kind
}

// DifficultyRules raises the scroll speed by Step for every Threshold
// points, up to Max.
type DifficultyRules struct {
	StartSpeed float64
	Step       float64
	Max        float64
	Threshold  int
}

// DefaultRules runs at 20 Hz.
func DefaultRules() Rules {
	return Rules{
		TickInterval: 50 * time.Millisecond,
		Scoring: ScoringRules{
			PerTick:      1,
			CollectBonus: 10,
		},
		Player: PlayerRules{
			Min:      -8,
			Max:      8,
			MoveStep: 0.5,
			Size:     1,
		},
		Spawn: SpawnRules{
			X:                 20,
			DespawnX:          -10,
			YMin:              -2,
			YMax:              2,
			EntitySize:        1,
			ObstacleChance:    0.02,
			CollectibleChance: 0.03,
			BugWeight:         0.7,
			CollectibleKinds:  []Kind{KindReact, KindNode, KindMongo},
		},
		Difficulty: DifficultyRules{
			StartSpeed: 2,
			Step:       0.5,
			Max:        8,
			Threshold:  100,
		},
	}
}
