package pipeline

import (
	"fmt"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// Timing holds the pacing constants of every transition shape.
type Timing struct {
	LetterStagger time.Duration `mapstructure:"letter_stagger" yaml:"letter_stagger"`
	WordReveal    time.Duration `mapstructure:"word_reveal" yaml:"word_reveal"`
	// LabelDelay is the label fade-in offset within a reveal; the detail
	// follows NarrativeDelay after the label.
	LabelDelay     time.Duration `mapstructure:"label_delay" yaml:"label_delay"`
	NarrativeDelay time.Duration `mapstructure:"narrative_delay" yaml:"narrative_delay"`
	DramaDuration  time.Duration `mapstructure:"drama_duration" yaml:"drama_duration"`

	FadeOut      time.Duration `mapstructure:"fade_out" yaml:"fade_out"`
	FadeIn       time.Duration `mapstructure:"fade_in" yaml:"fade_in"`
	FadeStagger  time.Duration `mapstructure:"fade_stagger" yaml:"fade_stagger"`
	FlipDuration time.Duration `mapstructure:"flip_duration" yaml:"flip_duration"`
	FlipStagger  time.Duration `mapstructure:"flip_stagger" yaml:"flip_stagger"`

	GridScale         float64       `mapstructure:"grid_scale" yaml:"grid_scale"`
	GridScaleDuration time.Duration `mapstructure:"grid_scale_duration" yaml:"grid_scale_duration"`
	// GridOverlap is the fraction of the scale-down phase that content
	// reveals overlap.
	GridOverlap    float64       `mapstructure:"grid_overlap" yaml:"grid_overlap"`
	GridItemStride time.Duration `mapstructure:"grid_item_stride" yaml:"grid_item_stride"`

	FinalRevealStagger  time.Duration `mapstructure:"final_reveal_stagger" yaml:"final_reveal_stagger"`
	FinalRevealDuration time.Duration `mapstructure:"final_reveal_duration" yaml:"final_reveal_duration"`
}

// DefaultTiming returns the stock pacing.
func DefaultTiming() Timing {
	return Timing{
		LetterStagger:       200 * time.Millisecond,
		WordReveal:          1200 * time.Millisecond,
		LabelDelay:          800 * time.Millisecond,
		NarrativeDelay:      800 * time.Millisecond,
		DramaDuration:       3500 * time.Millisecond,
		FadeOut:             400 * time.Millisecond,
		FadeIn:              400 * time.Millisecond,
		FadeStagger:         50 * time.Millisecond,
		FlipDuration:        1500 * time.Millisecond,
		FlipStagger:         100 * time.Millisecond,
		GridScale:           0.65,
		GridScaleDuration:   time.Second,
		GridOverlap:         0.25,
		GridItemStride:      800 * time.Millisecond,
		FinalRevealStagger:  300 * time.Millisecond,
		FinalRevealDuration: 2500 * time.Millisecond,
	}
}

// Validate rejects negative durations and out-of-range factors.
func (t Timing) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"letter_stagger", t.LetterStagger},
		{"word_reveal", t.WordReveal},
		{"label_delay", t.LabelDelay},
		{"narrative_delay", t.NarrativeDelay},
		{"drama_duration", t.DramaDuration},
		{"fade_out", t.FadeOut},
		{"fade_in", t.FadeIn},
		{"fade_stagger", t.FadeStagger},
		{"flip_duration", t.FlipDuration},
		{"flip_stagger", t.FlipStagger},
		{"grid_scale_duration", t.GridScaleDuration},
		{"grid_item_stride", t.GridItemStride},
		{"final_reveal_stagger", t.FinalRevealStagger},
		{"final_reveal_duration", t.FinalRevealDuration},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("timing %s: %w", d.name, domain.ErrNegativeDuration)
		}
	}
	if t.GridOverlap < 0 || t.GridOverlap > 1 {
		return fmt.Errorf("%w: grid_overlap %v outside [0,1]", domain.ErrContract, t.GridOverlap)
	}
	if t.GridScale <= 0 {
		return fmt.Errorf("%w: grid_scale must be positive", domain.ErrContract)
	}
	return nil
}
