package domain

// LayoutMode names one visual arrangement in the cyclic sequence.
// The presentation surface reacts to the mode tag to realise the geometry.
type LayoutMode string

const (
	ModeFinal   LayoutMode = "final"
	ModePlain   LayoutMode = "plain"
	ModeColumns LayoutMode = "columns"
	ModeRows    LayoutMode = "rows"
	ModeGrid    LayoutMode = "grid"
)

// DefaultSequence returns the cycle used when no layouts are configured.
func DefaultSequence() []LayoutMode {
	return []LayoutMode{ModeFinal, ModePlain, ModeColumns, ModeRows, ModeGrid}
}

// Valid reports whether m is one of the known layout modes.
func (m LayoutMode) Valid() bool {
	switch m {
	case ModeFinal, ModePlain, ModeColumns, ModeRows, ModeGrid:
		return true
	}
	return false
}

func (m LayoutMode) String() string {
	return string(m)
}
