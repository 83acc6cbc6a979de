package ports

import "github.com/aretw0/marquee/pkg/domain"

// Stage is the presentation surface. Applying a mode tag recomputes item
// geometry instantly; animation is the caller's job.
type Stage interface {
	Items() []domain.Item
	// Highlights are the decorative elements shown only in final mode.
	Highlights() []domain.Target

	AddMode(m domain.LayoutMode)
	RemoveMode(m domain.LayoutMode)
	Modes() []domain.LayoutMode

	// Settle forces pending layout work to complete before geometry is read.
	Settle()
	Resize(width, height int)
}

// ParticleHost is the surface region particles attach to.
type ParticleHost = domain.ParticleHost
