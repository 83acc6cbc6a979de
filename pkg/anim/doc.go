/*
Package anim is the animation capability consumed by the transition pipelines.

It provides the phase primitives (Timeline, Phase, Position), easing identifiers,
awaitable completions, geometry snapshots, and two engines implementing
ports.Animator:

  - Engine: frame-driven interpolation on a PausableClock. Pausing freezes playback
    without touching wall-clock timers.
  - Instant: a discrete-event engine that settles a whole timeline synchronously in
    virtual time and records an event log. Used by tests and headless traces.

A timeline with zero total duration settles on the caller's goroutine (the empty
set / zero duration fast path), so its completion never depends on a frame tick.
*/
package anim
