package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a rune grid with a foreground color per cell.
type canvas struct {
	runes  [][]rune
	colors [][]string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		runes:  make([][]rune, height),
		colors: make([][]string, height),
	}
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", width))
		c.colors[y] = make([]string, width)
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return row >= 0 && row < len(c.runes) && col >= 0 && col < len(c.runes[row])
}

func (c *canvas) set(col, row int, r rune, color string) {
	if !c.inside(col, row) {
		return
	}
	c.runes[row][col] = r
	c.colors[row][col] = color
}

func (c *canvas) setIfEmpty(col, row int, r rune, color string) {
	if c.inside(col, row) && c.runes[row][col] == ' ' {
		c.set(col, row, r, color)
	}
}

// text writes s starting at col, skipping cells that are already drawn.
func (c *canvas) text(col, row int, s, color string) {
	for i, r := range []rune(s) {
		c.setIfEmpty(col+i, row, r, color)
	}
}

// render joins the grid into lines, styling runs of equal color at once.
func (c *canvas) render() string {
	styles := make(map[string]lipgloss.Style)
	styleFor := func(color string) lipgloss.Style {
		s, ok := styles[color]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = s
		}
		return s
	}

	var b strings.Builder
	for y, row := range c.runes {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.colors[y][x] == c.colors[y][start] {
				continue
			}
			run := string(row[start:x])
			if color := c.colors[y][start]; color != "" {
				run = styleFor(color).Render(run)
			}
			b.WriteString(run)
			start = x
		}
		if y < len(c.runes)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
