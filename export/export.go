// Package export captures the rendered canvas as a raster image file.
package export

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"sopflow/flow"
	"sopflow/render"
	"sopflow/viewport"
)

// ErrCaptureUnavailable is returned when the renderer cannot produce a
// capturable surface. The operation is recoverable: the caller may surface
// it to the user and retry.
var ErrCaptureUnavailable = errors.New("export: capture unavailable")

// Exporter writes PNG snapshots of a workflow graph.
type Exporter struct {
	renderer render.Renderer
}

// NewExporter creates an exporter over the given renderer.
func NewExporter(r render.Renderer) *Exporter {
	return &Exporter{renderer: r}
}

// PNG paints a settled frame of the graph and writes it to dir as a PNG
// named from the workflow title. It returns the written path.
//
// The paint happens inside the call, so the capture never sees a
// mid-transition frame from an earlier render.
func (x *Exporter) PNG(store *flow.Store, vp *viewport.Viewport, dir string) (string, error) {
	surface, err := x.renderer.Paint(store.Nodes(), store.Edges(), vp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	img, err := x.renderer.Capture(surface)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	path := filepath.Join(dir, Filename(store.Title()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, nil
}

// Filename derives the download filename from a workflow title: runs of
// non-alphanumeric characters collapse to single dashes.
func Filename(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "workflow"
	}
	return name + ".png"
}
