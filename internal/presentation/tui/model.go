package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
)

// DefaultFrameRate is the redraw interval of the model.
const DefaultFrameRate = 33 * time.Millisecond

// Presenter is the presentation surface driven by the model.
type Presenter interface {
	Resize(width, height int) bool
	SetVisible(visible bool)
	TogglePause() bool
	Paused() bool
	Transition(ctx context.Context) (bool, error)
	State() domain.CycleState
	Stage() *memory.Stage
}

const (
	stylePlain = iota
	styleItem
	styleDim
	styleShift
	styleFinale
	styleCaption
	styleHighlight
	styleGold
	styleSilver
	styleSpark
)

func palette() []lipgloss.Style {
	base := lipgloss.NewStyle()
	return []lipgloss.Style{
		stylePlain:     base,
		styleItem:      base.Bold(true).Foreground(lipgloss.Color("#e2e8f0")),
		styleDim:       base.Faint(true),
		styleShift:     base.Bold(true).Foreground(lipgloss.Color("#c084fc")),
		styleFinale:    base.Bold(true).Foreground(lipgloss.Color("#fbbf24")),
		styleCaption:   base.Italic(true).Foreground(lipgloss.Color("#94a3b8")),
		styleHighlight: base.Bold(true).Foreground(lipgloss.Color("#f472b6")),
		styleGold:      base.Foreground(lipgloss.Color("#facc15")),
		styleSilver:    base.Foreground(lipgloss.Color("#cbd5e1")),
		styleSpark:     base.Foreground(lipgloss.Color("#818cf8")),
	}
}

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#0f172a")).
	Background(lipgloss.Color("#a78bfa")).
	Padding(0, 1)

type frameMsg time.Time

type transitionMsg struct {
	accepted bool
	err      error
}

// Model is the bubbletea model of `marquee play`.
type Model struct {
	ctx    context.Context
	p      Presenter
	frame  time.Duration
	styles []lipgloss.Style

	width, height int
	sized         bool
	lastErr       error
	dropped       int
}

// NewModel creates a model over p. Manual transitions run with ctx.
func NewModel(ctx context.Context, p Presenter) Model {
	return Model{ctx: ctx, p: p, frame: DefaultFrameRate, styles: palette()}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-1, 1)
		if !m.sized {
			// The initial size only lays out the stage.
			m.sized = true
			m.p.Stage().Resize(msg.Width, h)
			return m, nil
		}
		m.p.Resize(msg.Width, h)
		return m, nil

	case tea.FocusMsg:
		m.p.SetVisible(true)
	case tea.BlurMsg:
		m.p.SetVisible(false)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.p.TogglePause()
		case "n":
			return m, m.transition()
		}

	case frameMsg:
		return m, m.tick()

	case transitionMsg:
		m.lastErr = msg.err
		if !msg.accepted {
			m.dropped++
		}
	}
	return m, nil
}

func (m Model) transition() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.p.Transition(m.ctx)
		return transitionMsg{accepted: ok, err: err}
	}
}

func (m Model) View() string {
	if !m.sized {
		return "starting..."
	}
	c := newCanvas(m.width, max(m.height-1, 1), m.styles)
	stage := m.p.Stage()

	for _, hl := range stage.HighlightElements() {
		if !hl.Visible() {
			continue
		}
		b := hl.Rendered()
		c.text(b.X, b.Y, hl.Text(), fade(hl, styleHighlight))
	}
	for _, it := range stage.StageItems() {
		drawItem(c, it)
	}
	return c.String() + "\n" + m.status()
}

func drawItem(c *canvas, it *memory.Item) {
	b := it.Rendered()
	cx, cy := b.X+b.W/2, b.Y+b.H/2

	for _, p := range it.Host().Live() {
		if !p.Visible() {
			continue
		}
		px := b.X + p.Get(domain.PropLeft)/100*b.W + p.Get(domain.PropX)/20
		py := b.Y + p.Get(domain.PropTop)/100*b.H + p.Get(domain.PropY)/20
		glyph, style := "·", styleSpark
		switch domain.Variant(p.Text()) {
		case domain.VariantGold:
			glyph, style = "✦", styleGold
		case domain.VariantSilver:
			glyph, style = "✧", styleSilver
		}
		c.text(px, py, glyph, style)
	}

	if !it.Visible() {
		return
	}
	style := styleItem
	switch flags := it.Flags(); {
	case flags.Has(domain.FlagFinaleActive):
		style = styleFinale
	case flags.Has(domain.FlagColorShift):
		style = styleShift
	}
	c.text(cx, cy, it.Text(), fade(it.Element, style))

	if l := it.LabelElement(); l.Visible() {
		c.text(cx, cy+1+l.Get(domain.PropY)/10, l.Text(), fade(l, styleItem))
	}
	if d := it.DetailElement(); d.Visible() {
		c.text(cx, cy+2+d.Get(domain.PropY)/10, d.Text(), fade(d, styleCaption))
	}
}

// fade dims elements that are mostly transparent.
func fade(e *memory.Element, style int) int {
	if e.Get(domain.PropOpacity) < 0.5 {
		return styleDim
	}
	return style
}

func (m Model) status() string {
	st := m.p.State()
	s := fmt.Sprintf("%s [%d]  %s", st.Mode, st.Index, st.Status())
	if st.FinalSequenceFired {
		s += "  finale"
	}
	if m.p.Paused() {
		s += "  paused"
	}
	if m.dropped > 0 {
		s += fmt.Sprintf("  dropped %d", m.dropped)
	}
	if m.lastErr != nil {
		s += "  error: " + m.lastErr.Error()
	}
	s += "  (n next, p pause, q quit)"
	return statusStyle.Render(s)
}
