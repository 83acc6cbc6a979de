package emitter

import (
	"fmt"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// Settings tunes spawn cadence and particle motion.
type Settings struct {
	// Spawn delay is SpawnBase + rand*SpawnJitter.
	SpawnBase   time.Duration `mapstructure:"spawn_base" yaml:"spawn_base"`
	SpawnJitter time.Duration `mapstructure:"spawn_jitter" yaml:"spawn_jitter"`
	// Lifetime bounds how long an emitter keeps spawning.
	Lifetime time.Duration `mapstructure:"lifetime" yaml:"lifetime"`
	Rise     time.Duration `mapstructure:"rise" yaml:"rise"`
	// Fade overlaps the end of the rise by its own duration.
	Fade time.Duration `mapstructure:"fade" yaml:"fade"`
}

// DefaultSettings returns the stock particle cadence.
func DefaultSettings() Settings {
	return Settings{
		SpawnBase:   200 * time.Millisecond,
		SpawnJitter: 300 * time.Millisecond,
		Lifetime:    5 * time.Second,
		Rise:        3 * time.Second,
		Fade:        time.Second,
	}
}

// Validate rejects negative durations and a non-positive spawn interval.
func (s Settings) Validate() error {
	for name, d := range map[string]time.Duration{
		"spawn_base":   s.SpawnBase,
		"spawn_jitter": s.SpawnJitter,
		"lifetime":     s.Lifetime,
		"rise":         s.Rise,
		"fade":         s.Fade,
	} {
		if d < 0 {
			return fmt.Errorf("emitter %s: %w", name, domain.ErrNegativeDuration)
		}
	}
	if s.SpawnBase+s.SpawnJitter <= 0 {
		return fmt.Errorf("%w: emitter spawn interval must be positive", domain.ErrContract)
	}
	return nil
}
