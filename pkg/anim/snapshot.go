package anim

import "github.com/aretw0/marquee/pkg/domain"

// Snapshot is the rendered state of a target captured at one instant.
type Snapshot struct {
	Target  domain.Target
	Box     domain.Box // layout box translated by x/y and stretched by scaleX/scaleY
	Opacity float64
	Scale   float64
}

// Capture reads the current rendered geometry and opacity of targets.
func Capture(targets []domain.Target) []Snapshot {
	out := make([]Snapshot, 0, len(targets))
	for _, t := range targets {
		if t == nil {
			continue
		}
		var box domain.Box
		if p, ok := t.(domain.Placed); ok {
			box = p.Box()
		}
		out = append(out, Snapshot{
			Target: t,
			Box: box.Translate(t.Get(domain.PropX), t.Get(domain.PropY)).
				Stretch(t.Get(domain.PropScaleX), t.Get(domain.PropScaleY)),
			Opacity: t.Get(domain.PropOpacity),
			Scale:   t.Get(domain.PropScale),
		})
	}
	return out
}
