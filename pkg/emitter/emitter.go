package emitter

import (
	"sync"

	"github.com/aretw0/marquee/pkg/clock"
	"github.com/aretw0/marquee/pkg/domain"
)

// Emitter spawns particles onto one host until stopped or its lifetime ends.
type Emitter struct {
	factory *Factory
	host    domain.ParticleHost
	variant domain.Variant
	seq     int

	spawn    *clock.Slot
	lifetime *clock.Slot

	mu      sync.Mutex
	active  bool
	spawned int
}

// Start begins spawning. It is a no-op while already active.
func (e *Emitter) Start() {
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return
	}
	e.active = true
	e.factory.track(e, true)
	e.lifetime.Arm(e.factory.settings.Lifetime, e.Stop)
	e.mu.Unlock()

	e.factory.logger.Debug("emitter started", "emitter", e.seq, "variant", e.variant)
	e.spawnOne()
}

// spawnOne emits a particle and re-arms the spawn slot while still active.
// The lock is held across the spawn so a concurrent Stop either precedes it
// or waits for it.
func (e *Emitter) spawnOne() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return
	}
	e.spawned++
	e.factory.spawnParticle(e.host, e.variant)
	e.spawn.Arm(e.factory.nextDelay(), e.spawnOne)
}

// Stop halts spawning and cancels pending timers. Particles already spawned
// finish their animation and are removed. Stop is idempotent.
func (e *Emitter) Stop() {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	e.spawn.Cancel()
	e.lifetime.Cancel()
	spawned := e.spawned
	e.mu.Unlock()

	e.factory.track(e, false)
	e.factory.logger.Debug("emitter stopped", "emitter", e.seq, "spawned", spawned)
}

// Active reports whether the emitter is still spawning.
func (e *Emitter) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Spawned returns how many particles this emitter created.
func (e *Emitter) Spawned() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spawned
}

// Pending reports whether a spawn or lifetime timer is armed.
func (e *Emitter) Pending() bool {
	return e.spawn.Pending() || e.lifetime.Pending()
}

// Variant returns the particle variant.
func (e *Emitter) Variant() domain.Variant {
	return e.variant
}
