package ui

import (
	"math"

	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/state"
)

// Display pixels covered by one terminal cell. Cells are about twice as
// tall as they are wide.
const (
	cellW = 8.0
	cellH = 16.0
)

// camera maps world meters to canvas cells through the display pixel space
// the context's zoom and pan are expressed in. Screen y grows downward.
type camera struct {
	width, height int // canvas size in cells
	zoom          float64
	offsetX       float64 // px
	offsetY       float64 // px
}

func newCamera(width, height int, ctx state.SimulationContext) camera {
	zoom := ctx.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return camera{
		width:   width,
		height:  height,
		zoom:    zoom,
		offsetX: ctx.OffsetX,
		offsetY: ctx.OffsetY,
	}
}

// toPixels returns display pixels relative to the canvas center.
func (c camera) toPixels(p physics.Vec) (float64, float64) {
	return p.X*physics.Scale*c.zoom + c.offsetX, p.Y*physics.Scale*c.zoom + c.offsetY
}

// toCell returns the cell containing p, which may lie off the canvas.
func (c camera) toCell(p physics.Vec) (col, row int) {
	px, py := c.toPixels(p)
	col = int(math.Floor(float64(c.width)/2 + px/cellW))
	row = int(math.Floor(float64(c.height)/2 + py/cellH))
	return col, row
}

// cellCenterPixels returns the pixel position of a cell's center relative to
// the canvas center.
func (c camera) cellCenterPixels(col, row int) (float64, float64) {
	px := (float64(col) + 0.5 - float64(c.width)/2) * cellW
	py := (float64(row) + 0.5 - float64(c.height)/2) * cellH
	return px, py
}

// cellDelta converts a pointer movement in cells to world meters.
func (c camera) cellDelta(dcol, drow int) physics.Vec {
	k := physics.Scale * c.zoom
	return physics.Vec{X: float64(dcol) * cellW / k, Y: float64(drow) * cellH / k}
}

// radiusCells returns a body's on-screen radius in columns and rows.
func (c camera) radiusCells(b *physics.Body) (float64, float64) {
	r := b.RenderRadius * c.zoom
	return r / cellW, r / cellH
}

func (c camera) inside(col, row int) bool {
	return col >= 0 && col < c.width && row >= 0 && row < c.height
}

// hit reports whether the cell lies on b's disk. The body's own cell always
// counts so tiny bodies stay clickable.
func (c camera) hit(b *physics.Body, col, row int) bool {
	bc, br := c.toCell(b.Pos)
	if bc == col && br == row {
		return true
	}
	bx, by := c.toPixels(b.Pos)
	mx, my := c.cellCenterPixels(col, row)
	return math.Hypot(mx-bx, my-by) <= b.RenderRadius*c.zoom
}

// bodyAt returns the topmost body under the cell, or 0. Later bodies are
// drawn on top.
func (c camera) bodyAt(bodies []*physics.Body, col, row int) physics.BodyID {
	for i := len(bodies) - 1; i >= 0; i-- {
		if c.hit(bodies[i], col, row) {
			return bodies[i].ID
		}
	}
	return 0
}
