package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// ErrCallbackPanic is the settlement error of a timeline whose callback panicked.
var ErrCallbackPanic = errors.New("anim: callback panicked")

type track struct {
	from    domain.Props
	started bool
	done    bool
}

// playback is the mutable progress of one played timeline. It is only touched
// by the goroutine driving it.
type playback struct {
	tl         *Timeline
	phases     []*Phase
	tracks     [][]track
	done       []bool
	remaining  int
	origin     time.Duration
	completion *Completion
	err        error
	logger     *slog.Logger
}

func newPlayback(tl *Timeline, origin time.Duration, logger *slog.Logger) *playback {
	phases := make([]*Phase, len(tl.phases))
	copy(phases, tl.phases)
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Start < phases[j].Start })

	tracks := make([][]track, len(phases))
	for i, p := range phases {
		if p.Kind == KindTween {
			tracks[i] = make([]track, len(p.Targets))
		}
	}
	return &playback{
		tl:         tl,
		phases:     phases,
		tracks:     tracks,
		done:       make([]bool, len(phases)),
		remaining:  len(phases),
		origin:     origin,
		completion: NewCompletion(),
		logger:     logger,
	}
}

func (pb *playback) finished() bool { return pb.remaining == 0 }

// advance moves playback to local time t, running every phase due by then in
// start order. Callbacks run inline.
func (pb *playback) advance(t time.Duration) {
	for i, p := range pb.phases {
		if pb.done[i] || t < p.Start {
			continue
		}
		switch p.Kind {
		case KindSet:
			for _, tgt := range p.Targets {
				for k, v := range p.To {
					tgt.Set(k, v)
				}
			}
			pb.finishPhase(i)
		case KindCall:
			pb.invoke(p, p.Call)
			pb.finishPhase(i)
		case KindTween:
			if pb.stepTween(i, p, t) {
				pb.finishPhase(i)
				if p.OnComplete != nil {
					pb.invoke(p, p.OnComplete)
				}
			}
		}
	}
}

func (pb *playback) stepTween(i int, p *Phase, t time.Duration) bool {
	all := true
	span := p.TargetSpan()
	for j, tgt := range p.Targets {
		tr := &pb.tracks[i][j]
		if tr.done {
			continue
		}
		ts := p.TargetStart(j)
		if t < ts {
			all = false
			continue
		}
		if !tr.started {
			tr.from = make(domain.Props, len(p.To))
			for k := range p.To {
				tr.from[k] = tgt.Get(k)
			}
			tr.started = true
		}
		local := t - ts
		if local >= span {
			for k, to := range p.To {
				tgt.Set(k, p.final(tr.from[k], to))
			}
			tr.done = true
			continue
		}
		for k, to := range p.To {
			tgt.Set(k, p.value(tr.from[k], to, local))
		}
		all = false
	}
	return all
}

func (pb *playback) finishPhase(i int) {
	pb.done[i] = true
	pb.remaining--
}

func (pb *playback) invoke(p *Phase, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %s/%s: %v", ErrCallbackPanic, pb.tl.label, p.Label, r)
			pb.logger.Error("timeline callback panicked", "timeline", pb.tl.label, "phase", p.Label, "panic", r)
			if pb.err == nil {
				pb.err = err
			}
		}
	}()
	fn()
}

func (pb *playback) resolve() {
	pb.completion.Resolve(pb.err)
}
