// Package clock provides the wall-clock timer primitives used by the scheduler,
// the orchestrator's deferred finale and the particle emitters.
//
// Wall-clock timers keep firing while the animation engine is paused; playback
// time lives in the anim package.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// Clock schedules callbacks on wall-clock time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the system clock. Callbacks run on their own goroutine.
type Real struct{}

// New returns the system clock.
func New() Real {
	return Real{}
}

// Now returns the current time with monotonic clock reading.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc waits for d and then calls f in its own goroutine.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
