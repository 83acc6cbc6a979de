package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransitionStart   EventType = "transition_start"
	EventTransitionEnd     EventType = "transition_end"
	EventTransitionDropped EventType = "transition_dropped"
	EventModeChange        EventType = "mode_change"
	EventFinale            EventType = "finale"
	EventParticleSpawn     EventType = "particle_spawn"
	EventParticleRemove    EventType = "particle_remove"
	EventReschedule        EventType = "reschedule"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent describes one orchestrator run.
type TransitionEvent struct {
	EventBase
	ID       string        `json:"id"`
	From     LayoutMode    `json:"from"`
	To       LayoutMode    `json:"to,omitempty"`
	Index    int           `json:"index"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// ModeEvent is emitted from the mutation point of a transition.
type ModeEvent struct {
	EventBase
	TransitionID string     `json:"transition_id"`
	From         LayoutMode `json:"from"`
	To           LayoutMode `json:"to"`
	Index        int        `json:"index"`
}

// FinaleEvent is emitted when the once-per-cycle finale starts.
type FinaleEvent struct {
	EventBase
	Items int `json:"items"`
}

// ParticleEvent is emitted when a particle is attached or removed.
type ParticleEvent struct {
	EventBase
	Particle string  `json:"particle"`
	Variant  Variant `json:"variant"`
	// Live is the number of particles attached to the host after the event.
	Live int `json:"live"`
}

// ScheduleEvent is emitted when a scheduler slot is armed or a request dropped.
type ScheduleEvent struct {
	EventBase
	Slot    string        `json:"slot"`
	Delay   time.Duration `json:"delay,omitempty"`
	Dropped bool          `json:"dropped,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTransitionStart   func(context.Context, *TransitionEvent)
	OnTransitionEnd     func(context.Context, *TransitionEvent)
	OnTransitionDropped func(context.Context, *TransitionEvent)
	OnModeChange        func(context.Context, *ModeEvent)
	OnFinale            func(context.Context, *FinaleEvent)
	OnParticleSpawn     func(context.Context, *ParticleEvent)
	OnParticleRemove    func(context.Context, *ParticleEvent)
	OnReschedule        func(context.Context, *ScheduleEvent)
}
