package runtime

import (
	"context"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

func (o *Orchestrator) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: o.clock.Now(), Type: t}
}

func (o *Orchestrator) emitStart(ctx context.Context, id string, from domain.LayoutMode, index int) {
	if o.hooks.OnTransitionStart != nil {
		o.hooks.OnTransitionStart(ctx, &domain.TransitionEvent{
			EventBase: o.base(domain.EventTransitionStart),
			ID:        id,
			From:      from,
			Index:     index,
		})
	}
}

func (o *Orchestrator) emitEnd(ctx context.Context, id string, from, to domain.LayoutMode, index int, d time.Duration, err error) {
	if o.hooks.OnTransitionEnd != nil {
		o.hooks.OnTransitionEnd(ctx, &domain.TransitionEvent{
			EventBase: o.base(domain.EventTransitionEnd),
			ID:        id,
			From:      from,
			To:        to,
			Index:     index,
			Duration:  d,
			Err:       err,
		})
	}
}

func (o *Orchestrator) emitDropped(ctx context.Context, from domain.LayoutMode, index int) {
	if o.hooks.OnTransitionDropped != nil {
		o.hooks.OnTransitionDropped(ctx, &domain.TransitionEvent{
			EventBase: o.base(domain.EventTransitionDropped),
			From:      from,
			Index:     index,
		})
	}
}

func (o *Orchestrator) emitModeChange(ctx context.Context, id string, from, to domain.LayoutMode, index int) {
	if o.hooks.OnModeChange != nil {
		o.hooks.OnModeChange(ctx, &domain.ModeEvent{
			EventBase:    o.base(domain.EventModeChange),
			TransitionID: id,
			From:         from,
			To:           to,
			Index:        index,
		})
	}
}

func (o *Orchestrator) emitFinale(ctx context.Context, items int) {
	if o.hooks.OnFinale != nil {
		o.hooks.OnFinale(ctx, &domain.FinaleEvent{
			EventBase: o.base(domain.EventFinale),
			Items:     items,
		})
	}
}
