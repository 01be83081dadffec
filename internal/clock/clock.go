// Package clock provides the timer primitives shared by the lifecycle
// orchestrator, the game loop and the trials runner.
package clock

import "time"

// Timer is a handle to a pending one-shot callback.
type Timer interface {
	// Stop cancels the timer. It reports false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Clock schedules callbacks. Implementations run f on a goroutine of their
// choosing, so callers must synchronise any state f touches.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock backed by time.AfterFunc.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
