package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/marquee/pkg/domain"
)

// Chain merges hook sets. Each callback runs in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnTransitionStart = chain(out.OnTransitionStart, h.OnTransitionStart)
		out.OnTransitionEnd = chain(out.OnTransitionEnd, h.OnTransitionEnd)
		out.OnTransitionDropped = chain(out.OnTransitionDropped, h.OnTransitionDropped)
		out.OnModeChange = chain(out.OnModeChange, h.OnModeChange)
		out.OnFinale = chain(out.OnFinale, h.OnFinale)
		out.OnParticleSpawn = chain(out.OnParticleSpawn, h.OnParticleSpawn)
		out.OnParticleRemove = chain(out.OnParticleRemove, h.OnParticleRemove)
		out.OnReschedule = chain(out.OnReschedule, h.OnReschedule)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LogHooks logs every lifecycle event. Particle events go to Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionStart: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition_start", "id", e.ID, "from", e.From, "index", e.Index)
		},
		OnTransitionEnd: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "transition_end", "id", e.ID, "to", e.To, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.InfoContext(ctx, "transition_end", "id", e.ID, "to", e.To, "duration", e.Duration)
		},
		OnTransitionDropped: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition_dropped", "from", e.From)
		},
		OnModeChange: func(ctx context.Context, e *domain.ModeEvent) {
			logger.InfoContext(ctx, "mode_change", "from", e.From, "to", e.To, "index", e.Index)
		},
		OnFinale: func(ctx context.Context, e *domain.FinaleEvent) {
			logger.InfoContext(ctx, "finale", "items", e.Items)
		},
		OnParticleSpawn: func(ctx context.Context, e *domain.ParticleEvent) {
			logger.DebugContext(ctx, "particle_spawn", "particle", e.Particle, "variant", e.Variant, "live", e.Live)
		},
		OnParticleRemove: func(ctx context.Context, e *domain.ParticleEvent) {
			logger.DebugContext(ctx, "particle_remove", "particle", e.Particle, "live", e.Live)
		},
		OnReschedule: func(ctx context.Context, e *domain.ScheduleEvent) {
			logger.DebugContext(ctx, "reschedule", "slot", e.Slot, "delay", e.Delay, "dropped", e.Dropped)
		},
	}
}
