package domain

// TransitionStatus is the orchestrator's single-flight state.
type TransitionStatus string

const (
	StatusIdle         TransitionStatus = "idle"
	StatusInTransition TransitionStatus = "in_transition"
)

// CycleState is a snapshot of the cycle owned by the orchestrator.
type CycleState struct {
	// Index is the position of Mode in the sequence, in [0, N).
	Index int
	Mode  LayoutMode

	InFlight bool

	// FinalSequenceFired is the once-per-cycle finale guard. It resets to
	// false exactly when Index wraps to 0.
	FinalSequenceFired bool
}

// Status derives the single-flight status from the snapshot.
func (s CycleState) Status() TransitionStatus {
	if s.InFlight {
		return StatusInTransition
	}
	return StatusIdle
}
