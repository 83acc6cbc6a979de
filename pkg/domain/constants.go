package domain

// Schedule slot names. Each slot holds at most one pending timer.
const (
	SlotLoop       = "loop"
	SlotResize     = "resize"
	SlotFinale     = "finale"
	SlotSpawn      = "spawn"
	SlotLifetime   = "lifetime"
	SlotVisibility = "visibility"
)
