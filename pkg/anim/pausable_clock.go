package anim

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimeSource supplies wall-clock readings to a PausableClock.
type TimeSource func() time.Time

// PausableClock measures playback time: wall time elapsed since creation minus
// every paused interval.
type PausableClock struct {
	mu sync.RWMutex

	source    TimeSource
	startTime time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a running clock. A nil source uses time.Now.
func NewPausableClock(source TimeSource) *PausableClock {
	if source == nil {
		source = time.Now
	}
	return &PausableClock{source: source, startTime: source()}
}

// Elapsed returns playback time since creation. It is frozen while paused.
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		return pc.pauseStartTime.Sub(pc.startTime) - pc.totalPausedTime
	}
	return pc.source().Sub(pc.startTime) - pc.totalPausedTime
}

// Pause freezes playback time.
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.source()
	}
}

// Resume continues playback time from where it froze.
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.source().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns the current pause state.
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress.
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.source().Sub(pc.pauseStartTime)
	}
	return total
}
