package cycle_test

import (
	"testing"

	"github.com/aretw0/marquee/pkg/cycle"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_AdvanceWraps(t *testing.T) {
	m := cycle.Default()
	require.Equal(t, 5, m.Len())
	assert.Equal(t, domain.ModeFinal, m.Current())

	var seen []domain.LayoutMode
	for i := 0; i < m.Len(); i++ {
		seen = append(seen, m.Advance())
	}
	assert.Equal(t, []domain.LayoutMode{
		domain.ModePlain, domain.ModeColumns, domain.ModeRows, domain.ModeGrid, domain.ModeFinal,
	}, seen)
	assert.Equal(t, 0, m.Index())
}

func TestMachine_PenultimateAndPeek(t *testing.T) {
	m := cycle.Default()
	for m.Current() != domain.ModeRows {
		assert.False(t, m.IsPenultimate())
		m.Advance()
	}
	assert.True(t, m.IsPenultimate())
	assert.Equal(t, domain.ModeGrid, m.Peek())
	assert.Equal(t, domain.ModeRows, m.Current(), "peek does not move")
}

func TestMachine_SingleMode(t *testing.T) {
	m, err := cycle.New(domain.ModeGrid)
	require.NoError(t, err)
	assert.False(t, m.IsPenultimate())
	assert.Equal(t, domain.ModeGrid, m.Advance())
	assert.Equal(t, 0, m.Index())
}

func TestNew_ContractViolations(t *testing.T) {
	_, err := cycle.New()
	assert.ErrorIs(t, err, domain.ErrEmptySequence)
	assert.ErrorIs(t, err, domain.ErrContract)

	_, err = cycle.New(domain.ModeGrid, domain.ModeGrid)
	assert.ErrorIs(t, err, domain.ErrContract)

	_, err = cycle.New("diagonal")
	assert.ErrorIs(t, err, domain.ErrContract)
}

func TestMachine_ModesIsACopy(t *testing.T) {
	m := cycle.Default()
	modes := m.Modes()
	modes[0] = domain.ModeGrid
	assert.Equal(t, domain.ModeFinal, m.Current())
}
