package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-gravity/internal/physics"
)

// MiniMapConfig sizes the text overview map.
type MiniMapConfig struct {
	Width  int // inner columns
	Height int // inner rows
}

// DefaultMiniMapConfig returns a map sized for an 80-column terminal.
func DefaultMiniMapConfig() MiniMapConfig {
	return MiniMapConfig{Width: 60, Height: 20}
}

// WriteMiniMap draws every body as a letter inside a box scaled to fit the
// farthest body, followed by a legend. The origin is the box center and +y
// points up.
func WriteMiniMap(w io.Writer, bodies []*physics.Body, cfg MiniMapConfig) {
	if len(bodies) == 0 {
		fmt.Fprintln(w, "No bodies to map")
		return
	}
	if cfg.Width < 3 {
		cfg.Width = 3
	}
	if cfg.Height < 3 {
		cfg.Height = 3
	}

	extent := 0.0
	for _, b := range bodies {
		if !finitePos(b.Pos) {
			continue
		}
		extent = math.Max(extent, math.Max(math.Abs(b.Pos.X), math.Abs(b.Pos.Y)))
	}
	if extent == 0 {
		extent = 1
	}

	grid := make([][]rune, cfg.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cfg.Width))
	}

	halfW := float64(cfg.Width-1) / 2
	halfH := float64(cfg.Height-1) / 2
	legend := make([]string, 0, len(bodies))
	for i, b := range bodies {
		mark := markerFor(i)
		if !finitePos(b.Pos) {
			legend = append(legend, fmt.Sprintf("%c %s (off map)", mark, b.Name))
			continue
		}
		col := int(math.Round(halfW + b.Pos.X/extent*halfW))
		row := int(math.Round(halfH - b.Pos.Y/extent*halfH))
		grid[row][col] = mark
		legend = append(legend, fmt.Sprintf("%c %s (%s)", mark, b.Name, FormatDistance(physics.Distance(b.Pos, physics.Vec{}))))
	}

	fmt.Fprintf(w, "┌%s┐ ±%s\n", strings.Repeat("─", cfg.Width), FormatDistance(extent))
	for _, row := range grid {
		fmt.Fprintf(w, "│%s│\n", string(row))
	}
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", cfg.Width))
	for _, line := range legend {
		fmt.Fprintln(w, "  "+line)
	}
}

func finitePos(p physics.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

const markers = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// markerFor labels bodies by index; later bodies share '*'.
func markerFor(i int) rune {
	if i < len(markers) {
		return rune(markers[i])
	}
	return '*'
}
