package memory_test

import (
	"testing"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStage_Contract(t *testing.T) {
	stage := memory.NewStage(memory.DefaultItems(), memory.DefaultHighlights())
	ports.RunStageContract(t, stage)
}

func TestMemoryNarratives_Contract(t *testing.T) {
	n := memory.DefaultNarratives()
	ports.RunNarrativeLookupContract(t, n, n.Keys())
	assert.Equal(t, 7, n.Len())
}

func TestStage_InitialPose(t *testing.T) {
	stage := memory.NewStage(memory.DefaultItems(), memory.DefaultHighlights(), memory.WithInitialMode(domain.ModeFinal))
	assert.Equal(t, domain.ModeFinal, stage.Mode())

	it := stage.StageItems()[0]
	assert.Equal(t, "B", it.Text())
	assert.Equal(t, 0.0, it.Label().Get(domain.PropOpacity))
	assert.Equal(t, 20.0, it.Label().Get(domain.PropY))
	assert.Equal(t, 0.9, it.Detail().Get(domain.PropScale))

	for _, h := range stage.HighlightElements() {
		assert.False(t, h.Visible())
	}
}

func TestStage_ActiveModeIsLastTag(t *testing.T) {
	stage := memory.NewStage(memory.DefaultItems(), nil)
	assert.Equal(t, domain.ModePlain, stage.Mode())

	stage.AddMode(domain.ModeGrid)
	stage.AddMode(domain.ModeRows)
	assert.Equal(t, domain.ModeRows, stage.Mode())
	stage.RemoveMode(domain.ModeRows)
	assert.Equal(t, domain.ModeGrid, stage.Mode())
}

func TestLayout_Grid(t *testing.T) {
	boxes := memory.Layout(domain.ModeGrid, 7, 90, 30)
	require.Len(t, boxes, 7)
	// 7 items: 3 columns, 3 rows.
	assert.Equal(t, domain.Box{X: 0, Y: 0, W: 30, H: 10}, boxes[0])
	assert.Equal(t, domain.Box{X: 30, Y: 10, W: 30, H: 10}, boxes[4])
	assert.Equal(t, domain.Box{X: 0, Y: 20, W: 30, H: 10}, boxes[6])
	assert.Empty(t, memory.Layout(domain.ModeRows, 0, 10, 10))
}

func TestElement_Rendered(t *testing.T) {
	stage := memory.NewStage(memory.DefaultItems(), nil, memory.WithViewport(70, 21))
	it := stage.StageItems()[1]
	layout := it.Box()
	it.Set(domain.PropX, 5)
	assert.Equal(t, layout.Translate(5, 0), it.Rendered())
	assert.Equal(t, 5.0, it.Props()[domain.PropX])

	it.Set(domain.PropScaleX, 0.5)
	it.Set(domain.PropScaleY, 2)
	assert.Equal(t, layout.Translate(5, 0).Stretch(0.5, 2), it.Rendered())
}

func TestParticleHost(t *testing.T) {
	h := memory.NewParticleHost("h")
	a := h.Spawn(domain.VariantGold)
	b := h.Spawn(domain.VariantSilver)
	assert.Equal(t, 2, h.Count())
	assert.Equal(t, "h/1", a.ID())

	h.Remove(a)
	h.Remove(a)
	assert.Equal(t, 1, h.Count())
	live := h.Live()
	require.Len(t, live, 1)
	assert.Equal(t, b.ID(), live[0].ID())
	assert.Equal(t, "silver", live[0].Text())
}

func TestItem_Flags(t *testing.T) {
	it := memory.NewItem("x", memory.ItemSpec{Key: "shores"})
	it.SetFlag(domain.FlagRevealActive, true)
	it.SetFlag(domain.FlagFinaleActive, true)
	it.SetFlag(domain.FlagRevealActive, false)
	assert.Equal(t, domain.FlagFinaleActive, it.Flags())
	assert.Equal(t, "shores", it.Key())
}
