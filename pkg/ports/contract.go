package ports

import (
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStageContract verifies that a Stage implementation honors the mode tag
// and geometry contract. The stage must hold at least two items.
func RunStageContract(t *testing.T, stage Stage) {
	items := stage.Items()
	require.GreaterOrEqual(t, len(items), 2, "contract needs at least two items")

	t.Run("Tags are idempotent", func(t *testing.T) {
		stage.AddMode(domain.ModeRows)
		stage.AddMode(domain.ModeRows)
		assert.Contains(t, stage.Modes(), domain.ModeRows)
		count := 0
		for _, m := range stage.Modes() {
			if m == domain.ModeRows {
				count++
			}
		}
		assert.Equal(t, 1, count)

		stage.RemoveMode(domain.ModeRows)
		stage.RemoveMode(domain.ModeRows)
		assert.NotContains(t, stage.Modes(), domain.ModeRows)
	})

	t.Run("Tag change recomputes geometry", func(t *testing.T) {
		stage.AddMode(domain.ModeColumns)
		stage.Settle()
		before := items[1].Box()

		stage.RemoveMode(domain.ModeColumns)
		stage.AddMode(domain.ModeRows)
		stage.Settle()
		after := items[1].Box()
		assert.NotEqual(t, before, after)
		stage.RemoveMode(domain.ModeRows)
	})

	t.Run("Resize recomputes geometry", func(t *testing.T) {
		stage.AddMode(domain.ModeColumns)
		stage.Resize(40, 10)
		small := items[1].Box()
		stage.Resize(120, 40)
		large := items[1].Box()
		assert.Greater(t, large.W, small.W)
		stage.RemoveMode(domain.ModeColumns)
	})

	t.Run("Items carry content and hosts", func(t *testing.T) {
		for _, it := range items {
			assert.NotNil(t, it.Label())
			assert.NotNil(t, it.Detail())
			assert.NotNil(t, it.Particles())
		}
	})
}

// RunNarrativeLookupContract verifies lookups for known keys and the missing
// key error.
func RunNarrativeLookupContract(t *testing.T, lookup NarrativeLookup, known []string) {
	for _, k := range known {
		_, err := lookup.Lookup(k)
		assert.NoError(t, err, k)
	}
	_, err := lookup.Lookup("no-such-narrative")
	assert.ErrorIs(t, err, domain.ErrMissingNarrative)
	assert.ErrorIs(t, err, domain.ErrContract)
}
