package anim

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// EventKind classifies entries of the Instant log.
type EventKind string

const (
	EventTweenStart EventKind = "start"
	EventTweenEnd   EventKind = "end"
	EventSet        EventKind = "set"
	EventCall       EventKind = "call"
	EventComplete   EventKind = "complete"
)

// Event is one settled step recorded by Instant.
type Event struct {
	Run      int // play sequence number, starting at 1
	Timeline string
	Phase    string
	Kind     EventKind
	Target   string
	At       time.Duration // offset within the timeline
}

func (ev Event) String() string {
	if ev.Target != "" {
		return fmt.Sprintf("%s/%s %s %s @%s", ev.Timeline, ev.Phase, ev.Kind, ev.Target, ev.At)
	}
	return fmt.Sprintf("%s/%s %s @%s", ev.Timeline, ev.Phase, ev.Kind, ev.At)
}

// Instant settles each played timeline synchronously in virtual time. Values
// jump from start to end; callbacks run in timeline order on the caller's
// goroutine, and nested plays settle before the callback returns.
//
// While paused, plays are queued and settle on Resume in play order.
type Instant struct {
	logger *slog.Logger

	mu      sync.Mutex
	runs    int
	events  []Event
	paused  bool
	pending []queued
}

type queued struct {
	tl *Timeline
	c  *Completion
}

// NewInstant creates a discrete-event animator.
func NewInstant(logger *slog.Logger) *Instant {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Instant{logger: logger}
}

// Play settles tl, or queues it while paused.
func (in *Instant) Play(tl *Timeline) *Completion {
	if tl == nil {
		return Completed(nil)
	}
	if err := tl.Err(); err != nil {
		return Completed(err)
	}
	in.mu.Lock()
	if in.paused {
		c := NewCompletion()
		in.pending = append(in.pending, queued{tl: tl, c: c})
		in.mu.Unlock()
		return c
	}
	in.mu.Unlock()

	c := NewCompletion()
	in.settle(tl, c)
	return c
}

type op struct {
	at  time.Duration
	ev  Event
	run func()
}

func (in *Instant) settle(tl *Timeline, c *Completion) {
	in.mu.Lock()
	in.runs++
	run := in.runs
	in.mu.Unlock()

	pb := newPlayback(tl, 0, in.logger)
	var ops []op
	for _, p := range tl.phases {
		base := Event{Run: run, Timeline: tl.label, Phase: p.Label}
		switch p.Kind {
		case KindSet:
			ev := base
			ev.Kind, ev.At = EventSet, p.Start
			ops = append(ops, op{at: p.Start, ev: ev, run: func() {
				for _, t := range p.Targets {
					for k, v := range p.To {
						t.Set(k, v)
					}
				}
			}})
		case KindCall:
			ev := base
			ev.Kind, ev.At = EventCall, p.Start
			ops = append(ops, op{at: p.Start, ev: ev, run: func() { pb.invoke(p, p.Call) }})
		case KindTween:
			froms := make([]domain.Props, len(p.Targets))
			for j, t := range p.Targets {
				ts := p.TargetStart(j)
				ev := base
				ev.Kind, ev.Target, ev.At = EventTweenStart, t.ID(), ts
				ops = append(ops, op{at: ts, ev: ev, run: func() {
					froms[j] = make(domain.Props, len(p.To))
					for k := range p.To {
						froms[j][k] = t.Get(k)
					}
				}})
			}
			for j, t := range p.Targets {
				te := p.TargetStart(j) + p.TargetSpan()
				ev := base
				ev.Kind, ev.Target, ev.At = EventTweenEnd, t.ID(), te
				ops = append(ops, op{at: te, ev: ev, run: func() {
					for k, to := range p.To {
						t.Set(k, p.final(froms[j][k], to))
					}
				}})
			}
			ev := base
			ev.Kind, ev.At = EventComplete, p.End()
			ops = append(ops, op{at: p.End(), ev: ev, run: func() {
				if p.OnComplete != nil {
					pb.invoke(p, p.OnComplete)
				}
			}})
		}
	}
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].at < ops[j].at })

	for _, o := range ops {
		in.record(o.ev)
		o.run()
	}
	c.Resolve(pb.err)
}

func (in *Instant) record(ev Event) {
	in.mu.Lock()
	in.events = append(in.events, ev)
	in.mu.Unlock()
}

// Log returns a copy of every event recorded so far.
func (in *Instant) Log() []Event {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]Event, len(in.events))
	copy(out, in.events)
	return out
}

// Reset clears the event log.
func (in *Instant) Reset() {
	in.mu.Lock()
	in.events = nil
	in.mu.Unlock()
}

// Snapshot captures rendered geometry of targets.
func (in *Instant) Snapshot(targets []domain.Target) []Snapshot {
	return Capture(targets)
}

// Pause queues subsequent plays.
func (in *Instant) Pause() {
	in.mu.Lock()
	in.paused = true
	in.mu.Unlock()
}

// Resume settles every queued play in order.
func (in *Instant) Resume() {
	in.mu.Lock()
	in.paused = false
	pending := in.pending
	in.pending = nil
	in.mu.Unlock()

	for _, q := range pending {
		in.settle(q.tl, q.c)
	}
}

// Paused reports whether plays are being queued.
func (in *Instant) Paused() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.paused
}
