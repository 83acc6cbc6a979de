// Package scheduler drives the presentation cycle: the initial entrance, the
// repeating transition loop with mode-dependent dwell, the debounced
// reschedule on resize and animation pause on visibility changes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
)

// ErrAlreadyStarted is returned by a second Start.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Transitioner runs single-flight transitions.
type Transitioner interface {
	Transition(ctx context.Context) (bool, error)
	InFlight() bool
	Current() domain.LayoutMode
}

// Timing holds the loop cadence.
type Timing struct {
	InitialDelay   time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
	Dwell          time.Duration `mapstructure:"dwell" yaml:"dwell"`
	GridDwell      time.Duration `mapstructure:"grid_dwell" yaml:"grid_dwell"`
	ResizeDebounce time.Duration `mapstructure:"resize_debounce" yaml:"resize_debounce"`
}

// DefaultTiming returns the stock cadence.
func DefaultTiming() Timing {
	return Timing{
		InitialDelay:   3 * time.Second,
		Dwell:          3 * time.Second,
		GridDwell:      8 * time.Second,
		ResizeDebounce: 2500 * time.Millisecond,
	}
}

// Validate rejects negative delays.
func (t Timing) Validate() error {
	for name, d := range map[string]time.Duration{
		"initial_delay":   t.InitialDelay,
		"dwell":           t.Dwell,
		"grid_dwell":      t.GridDwell,
		"resize_debounce": t.ResizeDebounce,
	} {
		if d < 0 {
			return fmt.Errorf("schedule %s: %w", name, domain.ErrNegativeDuration)
		}
	}
	return nil
}

// Scheduler owns the loop and resize slots.
type Scheduler struct {
	orch     Transitioner
	animator ports.Animator
	clock    clock.Clock
	timing   Timing
	entrance func() (*anim.Timeline, error)
	logger   *slog.Logger
	hooks    domain.LifecycleHooks

	loop   *clock.Slot
	resize *clock.Slot

	mu      sync.Mutex
	ctx     context.Context
	started bool
	stopped bool
	visible bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(s *Scheduler) {
		s.timing = t
	}
}

// WithEntrance sets the one-time pipeline played by Start before the loop.
func WithEntrance(build func() (*anim.Timeline, error)) Option {
	return func(s *Scheduler) {
		s.entrance = build
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLifecycleHooks reports slot arming and dropped reschedules.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.hooks = h
	}
}

// New creates a scheduler driving orch on clk.
func New(orch Transitioner, animator ports.Animator, clk clock.Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		orch:     orch,
		animator: animator,
		clock:    clk,
		timing:   DefaultTiming(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		loop:     clock.NewSlot(domain.SlotLoop, clk),
		resize:   clock.NewSlot(domain.SlotResize, clk),
		ctx:      context.Background(),
		visible:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start plays the entrance to completion, then arms the loop at InitialDelay.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx = ctx
	s.mu.Unlock()

	if s.entrance != nil {
		tl, err := s.entrance()
		if err != nil {
			return fmt.Errorf("entrance: %w", err)
		}
		if err := s.animator.Play(tl).Wait(ctx); err != nil {
			return fmt.Errorf("entrance: %w", err)
		}
	}
	s.arm(s.loop, s.timing.InitialDelay)
	s.logger.Info("scheduler started", "initial_delay", s.timing.InitialDelay)
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then stops it.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// runLoop is one loop iteration: transition, then re-arm by the new mode.
func (s *Scheduler) runLoop() {
	s.loop.Cancel()

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.orch.Transition(ctx); err != nil {
		s.logger.Error("transition rejected", "err", err)
	}

	delay := s.timing.Dwell
	if s.orch.Current() == domain.ModeGrid {
		delay = s.timing.GridDwell
	}
	s.arm(s.loop, delay)
}

func (s *Scheduler) arm(slot *clock.Slot, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	slot.Arm(d, s.runLoop)
	s.emit(slot.Name(), d, false)
}

// Reschedule debounces an environment change into one loop run after
// ResizeDebounce. It is dropped while a transition is in flight and reports
// whether the request was accepted.
func (s *Scheduler) Reschedule() bool {
	if s.orch.InFlight() {
		s.logger.Debug("reschedule dropped", "reason", "in_flight")
		s.emit(domain.SlotResize, 0, true)
		return false
	}
	s.arm(s.resize, s.timing.ResizeDebounce)
	return true
}

// Pause freezes animation playback. Timers keep their schedule.
func (s *Scheduler) Pause() {
	s.animator.Pause()
}

// Resume continues animation playback.
func (s *Scheduler) Resume() {
	s.animator.Resume()
}

// SetVisible pauses playback while hidden and resumes it when shown.
func (s *Scheduler) SetVisible(visible bool) {
	s.mu.Lock()
	changed := s.visible != visible
	s.visible = visible
	s.mu.Unlock()
	if !changed {
		return
	}
	s.logger.Debug("visibility changed", "visible", visible)
	if visible {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Visible reports the last visibility signal.
func (s *Scheduler) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Stop cancels every slot. Later arming attempts are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.loop.Cancel()
	s.resize.Cancel()
	s.logger.Debug("scheduler stopped")
}

// Pending returns the names of slots holding a pending timer.
func (s *Scheduler) Pending() []string {
	var out []string
	for _, slot := range []*clock.Slot{s.loop, s.resize} {
		if slot.Pending() {
			out = append(out, slot.Name())
		}
	}
	return out
}

func (s *Scheduler) emit(slot string, d time.Duration, dropped bool) {
	if s.hooks.OnReschedule == nil {
		return
	}
	s.hooks.OnReschedule(context.Background(), &domain.ScheduleEvent{
		EventBase: domain.EventBase{Timestamp: s.clock.Now(), Type: domain.EventReschedule},
		Slot:      slot,
		Delay:     d,
		Dropped:   dropped,
	})
}
