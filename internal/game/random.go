package game

import "math/rand/v2"

// Random is the randomness a session draws spawns from. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }
