package domain

// Prop names a numeric visual property of a Target.
type Prop string

const (
	PropOpacity   Prop = "opacity"
	PropScale     Prop = "scale"
	PropScaleX    Prop = "scaleX" // box width factor, anchored at the top-left corner
	PropScaleY    Prop = "scaleY"
	PropX         Prop = "x" // translation relative to the layout box
	PropY         Prop = "y"
	PropZ         Prop = "z"
	PropRotation  Prop = "rotation"
	PropRotationX Prop = "rotationX"
	PropRotationY Prop = "rotationY"
	PropShadow    Prop = "shadow" // 0..1 emphasis glow
	PropBlur      Prop = "blur"
	PropHue       Prop = "hue"
	PropLeft      Prop = "left" // percent of the host surface
	PropTop       Prop = "top"
	PropDisplay   Prop = "display" // 1 shown, 0 removed from layout
)

// Props maps properties to values.
type Props map[Prop]float64

// Clone returns a copy of p.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// DefaultValue is the value a property reads as before it was ever set.
func DefaultValue(p Prop) float64 {
	switch p {
	case PropOpacity, PropScale, PropScaleX, PropScaleY, PropDisplay:
		return 1
	}
	return 0
}

// Target is an opaque animatable entity. Implementations must be safe for
// concurrent use: the animation engine writes while renderers read.
type Target interface {
	ID() string
	Get(p Prop) float64
	Set(p Prop, v float64)
}

// Box is a layout rectangle in surface units.
type Box struct {
	X, Y, W, H float64
}

// Translate returns b moved by dx, dy.
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Stretch returns b with its width and height multiplied by sx, sy. The
// top-left corner stays fixed.
func (b Box) Stretch(sx, sy float64) Box {
	b.W *= sx
	b.H *= sy
	return b
}

// Placed is a Target that occupies layout geometry computed by the surface.
type Placed interface {
	Target
	Box() Box
}
