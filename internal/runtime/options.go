package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// DefaultFinaleDelay is how long after entering the penultimate transition
// the finale fires.
const DefaultFinaleDelay = 2 * time.Second

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = h
	}
}

// WithFinaleDelay overrides DefaultFinaleDelay.
func WithFinaleDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.finaleDelay = d
		}
	}
}
