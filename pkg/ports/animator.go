package ports

import (
	"github.com/aretw0/marquee/pkg/anim"
	"github.com/aretw0/marquee/pkg/domain"
)

// Animator is the minimal animation capability consumed by the pipelines.
type Animator interface {
	// Play starts a timeline. The returned completion resolves once every phase
	// has settled. A started timeline is never cancelled.
	Play(tl *anim.Timeline) *anim.Completion

	// Snapshot captures rendered geometry of targets for inverse-FLIP reflow.
	Snapshot(targets []domain.Target) []anim.Snapshot

	// Pause freezes every in-flight timeline; Resume continues them.
	Pause()
	Resume()
	Paused() bool
}

var (
	_ Animator = (*anim.Engine)(nil)
	_ Animator = (*anim.Instant)(nil)
)
