package anim

import "time"

type anchor int

const (
	anchorStart     anchor = iota // timeline start
	anchorEnd                     // current end of the timeline
	anchorPrevStart               // start of the previous phase
	anchorPrevEnd                 // end of the previous phase
)

// Position places a phase on its timeline. Offsets may be negative to overlap
// earlier phases; a position resolving before the timeline start clamps to 0.
type Position struct {
	anchor anchor
	offset time.Duration
}

// At places a phase at an absolute offset from the timeline start.
func At(d time.Duration) Position {
	return Position{anchor: anchorStart, offset: d}
}

// AtEnd places a phase relative to the end of everything added so far.
// This is the default position.
func AtEnd(d time.Duration) Position {
	return Position{anchor: anchorEnd, offset: d}
}

// AfterPrev places a phase relative to the end of the previous phase.
func AfterPrev(d time.Duration) Position {
	return Position{anchor: anchorPrevEnd, offset: d}
}

// WithPrev places a phase relative to the start of the previous phase.
func WithPrev(d time.Duration) Position {
	return Position{anchor: anchorPrevStart, offset: d}
}
