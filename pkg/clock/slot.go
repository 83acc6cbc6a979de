package clock

import (
	"sync"
	"time"
)

// Slot is the pending-timer identity of one scheduling category.
// It holds at most one pending timer: arming it cancels the previous one, and
// a superseded timer that already started firing becomes a no-op.
type Slot struct {
	name  string
	clock Clock

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewSlot creates an empty slot on c.
func NewSlot(name string, c Clock) *Slot {
	return &Slot{name: name, clock: c}
}

// Name returns the slot category.
func (s *Slot) Name() string {
	return s.name
}

// Arm schedules fn after d, replacing any pending timer.
func (s *Slot) Arm(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops the pending timer. It reports whether one was pending.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	return true
}

// Pending reports whether a timer is armed and has not fired yet.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
