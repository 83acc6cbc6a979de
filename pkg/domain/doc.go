/*
Package domain contains the core models of the marquee presentation engine.

It defines the fundamental entities of the layout cycle, such as layout modes, the
animatable targets the pipelines drive, presentation items and their state flags, and
the cycle state snapshot. This package is kept pure and free of external dependencies
like rendering or timers, following Hexagonal Architecture principles.

# Key Entities

  - LayoutMode: One named visual arrangement in the cyclic sequence.
  - Target: An opaque animatable entity with numeric properties.
  - Item: A presentation item (a Target with label, detail and particle host).
  - CycleState: The runtime snapshot of the cycle (index, in-flight, finale flag).
  - LifecycleHooks: Callbacks fired by the orchestrator, scheduler and emitters.
*/
package domain
