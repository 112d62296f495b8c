package state

import "github.com/litescript/ls-gravity/internal/physics"

// Camera and speed limits.
const (
	ZoomStep         = 0.1
	MinZoom          = 0.1
	MaxStepsPerFrame = 64
)

// SimulationContext is the interactive camera and rate state shared between
// input handling and rendering. Offsets are display pixels added after
// scaling by Zoom.
type SimulationContext struct {
	Zoom          float64
	OffsetX       float64
	OffsetY       float64
	Paused        bool
	StepsPerFrame int
	FreezeOnHover bool
	ShowLabels    bool
	ShowTrails    bool

	Hovered physics.BodyID // 0 when the pointer is over empty space
	Dragged physics.BodyID // 0 when nothing is grabbed
}

// DefaultContext returns an unzoomed, running context with trails shown.
func DefaultContext() SimulationContext {
	return SimulationContext{
		Zoom:          1,
		StepsPerFrame: 1,
		ShowTrails:    true,
	}
}

// ZoomIn increases the zoom by one step.
func (c *SimulationContext) ZoomIn() {
	c.Zoom += ZoomStep
}

// ZoomOut decreases the zoom by one step, never below MinZoom.
func (c *SimulationContext) ZoomOut() {
	c.Zoom -= ZoomStep
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
}

// Pan shifts the view by dx, dy display pixels.
func (c *SimulationContext) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// Recenter resets pan and zoom.
func (c *SimulationContext) Recenter() {
	c.Zoom = 1
	c.OffsetX, c.OffsetY = 0, 0
}

// Faster doubles the steps per frame, up to MaxStepsPerFrame.
func (c *SimulationContext) Faster() {
	c.StepsPerFrame *= 2
	if c.StepsPerFrame > MaxStepsPerFrame {
		c.StepsPerFrame = MaxStepsPerFrame
	}
}

// Slower halves the steps per frame, down to one.
func (c *SimulationContext) Slower() {
	c.StepsPerFrame /= 2
	if c.StepsPerFrame < 1 {
		c.StepsPerFrame = 1
	}
}

// PausedFunc returns the per-body pause predicate for the current
// interaction: the grabbed and hovered bodies hold still, and with
// FreezeOnHover every body holds while anything is hovered.
func (c SimulationContext) PausedFunc() physics.PausedFunc {
	dragged, hovered, freeze := c.Dragged, c.Hovered, c.FreezeOnHover
	return func(b *physics.Body) bool {
		if b.ID != 0 && (b.ID == dragged || b.ID == hovered) {
			return true
		}
		return freeze && hovered != 0
	}
}
