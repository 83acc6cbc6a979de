package anim

import (
	"fmt"
	"strings"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/tanema/gween/ease"
)

// Ease is an easing identifier in the "family.direction" notation, for example
// "power2.inOut" or "elastic.out(1,0.5)". Parameters in parentheses are accepted
// and ignored.
type Ease string

const (
	Linear      Ease = "linear"
	Power1In    Ease = "power1.in"
	Power1Out   Ease = "power1.out"
	Power1InOut Ease = "power1.inOut"
	Power2In    Ease = "power2.in"
	Power2Out   Ease = "power2.out"
	Power2InOut Ease = "power2.inOut"
	Power3Out   Ease = "power3.out"
	Power4Out   Ease = "power4.out"
	SineInOut   Ease = "sine.inOut"
	BackOut     Ease = "back.out"
	ElasticOut  Ease = "elastic.out"
	DefaultEase      = Power1Out
)

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(p float64) float64

var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"none":          ease.Linear,
	"power1.in":     ease.InQuad,
	"power1.out":    ease.OutQuad,
	"power1.inout":  ease.InOutQuad,
	"power2.in":     ease.InCubic,
	"power2.out":    ease.OutCubic,
	"power2.inout":  ease.InOutCubic,
	"power3.in":     ease.InQuart,
	"power3.out":    ease.OutQuart,
	"power3.inout":  ease.InOutQuart,
	"power4.in":     ease.InQuint,
	"power4.out":    ease.OutQuint,
	"power4.inout":  ease.InOutQuint,
	"sine.in":       ease.InSine,
	"sine.out":      ease.OutSine,
	"sine.inout":    ease.InOutSine,
	"expo.out":      ease.OutExpo,
	"circ.out":      ease.OutCirc,
	"back.in":       ease.InBack,
	"back.out":      ease.OutBack,
	"back.inout":    ease.InOutBack,
	"elastic.in":    ease.InElastic,
	"elastic.out":   ease.OutElastic,
	"elastic.inout": ease.InOutElastic,
	"bounce.out":    ease.OutBounce,
}

// Func resolves the identifier. The empty Ease resolves to DefaultEase.
func (e Ease) Func() (EaseFunc, error) {
	name := string(e)
	if name == "" {
		name = string(DefaultEase)
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEase, string(e))
	}
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return float64(fn(float32(p), 0, 1, 1))
	}, nil
}
