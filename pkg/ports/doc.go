/*
Package ports defines the driven ports (interfaces) for the marquee core.

These interfaces decouple the cycle orchestration from rendering, animation and
content, so the same core runs against a terminal surface, an in-memory stage or a
test double.

# Key Interfaces

  - Animator: plays timelines and captures geometry snapshots (anim.Engine, anim.Instant).
  - Stage: the presentation surface. It owns the mode tags and recomputes layout.
  - NarrativeLookup: static table of per-item narrative metadata.
  - ParticleHost: surface region particle effects attach to.
*/
package ports
