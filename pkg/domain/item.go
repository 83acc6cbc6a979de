package domain

import "strings"

// ItemFlag is an explicit state flag on an Item. The presentation surface
// translates flags into visuals.
type ItemFlag uint8

const (
	FlagRevealActive ItemFlag = 1 << iota
	FlagColorShift
	FlagFinaleActive
)

// Has reports whether all bits of o are set in f.
func (f ItemFlag) Has(o ItemFlag) bool {
	return f&o == o
}

func (f ItemFlag) String() string {
	var parts []string
	if f.Has(FlagRevealActive) {
		parts = append(parts, "reveal-active")
	}
	if f.Has(FlagColorShift) {
		parts = append(parts, "color-shift")
	}
	if f.Has(FlagFinaleActive) {
		parts = append(parts, "finale-active")
	}
	return strings.Join(parts, "|")
}

// ParticleHost is the surface region particles are attached to.
type ParticleHost interface {
	// Spawn creates a particle of the given variant attached to the host.
	Spawn(v Variant) Target
	// Remove detaches a particle. Removing an unknown particle is a no-op.
	Remove(t Target)
	// Count returns the number of attached particles.
	Count() int
}

// Item is one presentation element of the cycle.
type Item interface {
	Placed

	// Key identifies the narrative entry of the item.
	Key() string
	// Label and Detail are the two content sub-targets revealed in grid mode.
	Label() Target
	Detail() Target
	Particles() ParticleHost

	Flags() ItemFlag
	SetFlag(f ItemFlag, on bool)
}

// Targets converts items to their target view.
func Targets(items []Item) []Target {
	out := make([]Target, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Labels returns the label sub-targets of items.
func Labels(items []Item) []Target {
	out := make([]Target, len(items))
	for i, it := range items {
		out[i] = it.Label()
	}
	return out
}

// Details returns the detail sub-targets of items.
func Details(items []Item) []Target {
	out := make([]Target, len(items))
	for i, it := range items {
		out[i] = it.Detail()
	}
	return out
}
