// Package cycle holds the ordered layout sequence and the current position in it.
package cycle

import (
	"fmt"

	"github.com/aretw0/marquee/pkg/domain"
)

// Machine is a cyclic state machine over layout modes.
// It is not safe for concurrent use; the orchestrator owns it behind its lock.
type Machine struct {
	modes []domain.LayoutMode
	index int
}

// New builds a machine positioned at the first mode. An empty sequence, an
// unknown mode or a duplicate mode is a contract violation.
func New(modes ...domain.LayoutMode) (*Machine, error) {
	if len(modes) == 0 {
		return nil, domain.ErrEmptySequence
	}
	seen := make(map[domain.LayoutMode]struct{}, len(modes))
	for _, m := range modes {
		if !m.Valid() {
			return nil, fmt.Errorf("%w: unknown layout %q", domain.ErrContract, m)
		}
		if _, dup := seen[m]; dup {
			return nil, fmt.Errorf("%w: duplicate layout %q", domain.ErrContract, m)
		}
		seen[m] = struct{}{}
	}
	cp := make([]domain.LayoutMode, len(modes))
	copy(cp, modes)
	return &Machine{modes: cp}, nil
}

// Default builds a machine over domain.DefaultSequence.
func Default() *Machine {
	m, _ := New(domain.DefaultSequence()...)
	return m
}

// Current returns the mode at the current index.
func (m *Machine) Current() domain.LayoutMode {
	return m.modes[m.index]
}

// Advance moves to the next mode, wrapping to the start, and returns it.
func (m *Machine) Advance() domain.LayoutMode {
	m.index = (m.index + 1) % len(m.modes)
	return m.modes[m.index]
}

// Peek returns the mode Advance would move to.
func (m *Machine) Peek() domain.LayoutMode {
	return m.modes[(m.index+1)%len(m.modes)]
}

func (m *Machine) Index() int { return m.index }

func (m *Machine) Len() int { return len(m.modes) }

// Modes returns a copy of the sequence.
func (m *Machine) Modes() []domain.LayoutMode {
	out := make([]domain.LayoutMode, len(m.modes))
	copy(out, m.modes)
	return out
}

// IsPenultimate reports whether the current mode is the one before the last.
// A single-mode sequence has no penultimate position.
func (m *Machine) IsPenultimate() bool {
	return len(m.modes) > 1 && m.index == len(m.modes)-2
}
