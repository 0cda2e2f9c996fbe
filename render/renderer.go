// Package render paints the workflow graph onto a raster surface.
package render

import (
	"errors"
	"image"

	"sopflow/flow"
	"sopflow/viewport"
)

// ErrEmptySurface is returned by Capture when there is no painted surface
// to capture.
var ErrEmptySurface = errors.New("render: no painted surface")

// Surface is a painted canvas ready for display or capture.
type Surface struct {
	img *image.RGBA
}

// Bounds returns the pixel bounds of the surface.
func (s *Surface) Bounds() image.Rectangle {
	if s == nil || s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Renderer is the drawing contract: Paint composes a surface from the graph
// and viewport, Capture freezes a painted surface into an immutable image.
type Renderer interface {
	Paint(nodes []flow.Node, edges []flow.Edge, vp *viewport.Viewport) (*Surface, error)
	Capture(s *Surface) (image.Image, error)
}
