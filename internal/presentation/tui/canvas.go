package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	style int
}

// canvas is a cell grid painted back to front. Style 0 is unstyled.
type canvas struct {
	w, h   int
	cells  [][]cell
	styles []lipgloss.Style
}

func newCanvas(w, h int, styles []lipgloss.Style) *canvas {
	c := &canvas{w: w, h: h, styles: styles}
	c.cells = make([][]cell, h)
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// text writes s centred on (cx, cy). Off-canvas runes are clipped.
func (c *canvas) text(cx, cy float64, s string, style int) {
	y := int(math.Round(cy))
	x := int(math.Round(cx)) - utf8.RuneCountInString(s)/2
	for _, r := range s {
		c.set(x, y, r, style)
		x++
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			if st := row[start].style; st == 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(c.styles[st].Render(string(run)))
			}
			start = x
		}
	}
	return b.String()
}
