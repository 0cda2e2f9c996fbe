// Package viewport owns the zoom, pan and fullscreen state of the editing
// canvas, independent of graph content.
package viewport

import (
	"math"

	"sopflow/flow"
)

// Zoom bounds and the grid lattice spacing, in canvas units.
const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1
	GridSize = 15.0
)

// Viewport holds the canvas transform. Zoom is clamped to [MinZoom, MaxZoom];
// pan is unconstrained.
type Viewport struct {
	zoom       float64
	pan        flow.Point
	fullscreen bool
}

// New creates a viewport at zoom 1.0 with no pan offset.
func New() *Viewport {
	return &Viewport{zoom: 1.0}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// ZoomIn raises the zoom by one step. At the upper bound the call is an
// idempotent no-op.
func (v *Viewport) ZoomIn() {
	v.zoom = clampZoom(v.zoom + ZoomStep)
}

// ZoomOut lowers the zoom by one step. At the lower bound the call is an
// idempotent no-op.
func (v *Viewport) ZoomOut() {
	v.zoom = clampZoom(v.zoom - ZoomStep)
}

// Pan returns the current pan offset in screen units.
func (v *Viewport) Pan() flow.Point { return v.pan }

// SetPan replaces the pan offset.
func (v *Viewport) SetPan(p flow.Point) { v.pan = p }

// PanBy shifts the pan offset.
func (v *Viewport) PanBy(dx, dy float64) {
	v.pan.X += dx
	v.pan.Y += dy
}

// Fullscreen reports the fullscreen flag.
func (v *Viewport) Fullscreen() bool { return v.fullscreen }

// SetFullscreen sets the fullscreen flag.
func (v *Viewport) SetFullscreen(on bool) { v.fullscreen = on }

// Snap quantizes a position to the nearest point on the grid lattice.
// Snap is deterministic and idempotent.
func (v *Viewport) Snap(p flow.Point) flow.Point {
	return flow.Point{
		X: math.Round(p.X/GridSize) * GridSize,
		Y: math.Round(p.Y/GridSize) * GridSize,
	}
}

// ToCanvas converts a screen position to canvas space under the current
// zoom and pan.
func (v *Viewport) ToCanvas(screen flow.Point) flow.Point {
	return flow.Point{
		X: (screen.X - v.pan.X) / v.zoom,
		Y: (screen.Y - v.pan.Y) / v.zoom,
	}
}

// ToScreen converts a canvas position to screen space.
func (v *Viewport) ToScreen(canvas flow.Point) flow.Point {
	return flow.Point{
		X: canvas.X*v.zoom + v.pan.X,
		Y: canvas.Y*v.zoom + v.pan.Y,
	}
}

// clampZoom keeps the factor inside the bounds, rounding to one decimal so
// repeated steps don't accumulate float drift.
func clampZoom(z float64) float64 {
	z = math.Round(z*10) / 10
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
