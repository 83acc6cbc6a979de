package anim

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// DefaultFrameInterval is the tick period used by Run.
const DefaultFrameInterval = 16 * time.Millisecond

// Engine interpolates played timelines frame by frame on a PausableClock.
//
// Tick must not be called from inside a timeline callback.
type Engine struct {
	clock    *PausableClock
	interval time.Duration
	logger   *slog.Logger

	tickMu sync.Mutex // serializes Tick

	mu     sync.Mutex
	active []*playback
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTimeSource sets the wall-clock source of the engine's playback clock.
func WithTimeSource(src TimeSource) EngineOption {
	return func(e *Engine) {
		e.clock = NewPausableClock(src)
	}
}

// WithFrameInterval sets the tick period used by Run.
func WithFrameInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a frame-driven engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		interval: DefaultFrameInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewPausableClock(nil)
	}
	return e
}

// Play starts tl. A timeline carrying a build error settles with it without
// running. A zero-length timeline settles before Play returns.
func (e *Engine) Play(tl *Timeline) *Completion {
	if tl == nil {
		return Completed(nil)
	}
	if err := tl.Err(); err != nil {
		return Completed(err)
	}
	pb := newPlayback(tl, e.clock.Elapsed(), e.logger)
	if tl.Duration() == 0 {
		pb.advance(0)
		pb.resolve()
		return pb.completion
	}
	e.mu.Lock()
	e.active = append(e.active, pb)
	e.mu.Unlock()
	return pb.completion
}

// Tick advances every active timeline to the current playback time and
// settles those that finished. It is a no-op while paused.
func (e *Engine) Tick() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	if e.clock.IsPaused() {
		return
	}
	now := e.clock.Elapsed()

	e.mu.Lock()
	batch := make([]*playback, len(e.active))
	copy(batch, e.active)
	e.mu.Unlock()

	var finished []*playback
	for _, pb := range batch {
		pb.advance(now - pb.origin)
		if pb.finished() {
			finished = append(finished, pb)
		}
	}
	if len(finished) == 0 {
		return
	}

	e.mu.Lock()
	kept := e.active[:0]
	for _, pb := range e.active {
		if !pb.finished() {
			kept = append(kept, pb)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
	e.mu.Unlock()

	for _, pb := range finished {
		pb.resolve()
	}
}

// Run ticks at the frame interval until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Active returns the number of timelines still playing.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Snapshot captures rendered geometry of targets.
func (e *Engine) Snapshot(targets []domain.Target) []Snapshot {
	return Capture(targets)
}

// Pause freezes every in-flight timeline. Wall-clock timers are unaffected.
func (e *Engine) Pause() {
	e.clock.Pause()
	e.logger.Debug("animation paused")
}

// Resume continues playback from the frozen point.
func (e *Engine) Resume() {
	e.clock.Resume()
	e.logger.Debug("animation resumed", "paused_total", e.clock.TotalPauseDuration())
}

// Paused reports whether playback is frozen.
func (e *Engine) Paused() bool {
	return e.clock.IsPaused()
}
