package domain

// Narrative is the emotional arc attached to an item. It only branches
// cosmetic parameters (particle variant, easing choice, accents).
type Narrative struct {
	Emotion string `json:"emotion" yaml:"emotion"`
	Theme   string `json:"theme" yaml:"theme"`
	Climax  string `json:"climax" yaml:"climax"`
}

const (
	EmotionWonder        = "wonder"
	EmotionWarmth        = "warmth"
	EmotionDetermination = "determination"
	ThemeResilience      = "resilience"
)

// Variant tags the visual class of an emitter's particles.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantGold    Variant = "gold"
	VariantSilver  Variant = "silver"
)

// VariantFor picks the particle variant for an emotion.
func VariantFor(emotion string) Variant {
	switch emotion {
	case EmotionWonder:
		return VariantGold
	case EmotionWarmth:
		return VariantSilver
	}
	return VariantDefault
}
