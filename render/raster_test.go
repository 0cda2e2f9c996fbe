package render

import (
	"errors"
	"image/color"
	"testing"

	"sopflow/flow"
	"sopflow/viewport"
)

func newTestRaster(t *testing.T) *Raster {
	t.Helper()
	r, err := NewRaster(DefaultOptions())
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	return r
}

func TestPaintFillsCanvas(t *testing.T) {
	r := newTestRaster(t)

	s, err := r.Paint(nil, nil, viewport.New())
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	b := s.Bounds()
	if b.Dx() != 1200 || b.Dy() != 800 {
		t.Fatalf("surface bounds = %v, want 1200x800", b)
	}

	img, err := r.Capture(s)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got := img.At(0, 0); got != colorCanvas {
		t.Errorf("corner pixel = %v, want canvas background", got)
	}
}

func TestPaintNodeFill(t *testing.T) {
	r := newTestRaster(t)

	store := flow.NewStore()
	store.AddNode(flow.KindProcess, "", flow.Point{X: 100, Y: 100})

	s, err := r.Paint(store.Nodes(), nil, viewport.New())
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	img, _ := r.Capture(s)

	// Center of the box is inside the fill, well clear of the border.
	want := kindStyles[flow.KindProcess].Fill
	if got := img.At(180, 132); got != want {
		t.Errorf("node center = %v, want process fill %v", got, want)
	}
	// Just off the node is still canvas.
	if got := img.At(100+int(flow.NodeWidth)+20, 132); got != colorCanvas {
		t.Errorf("outside node = %v, want canvas background", got)
	}
}

func TestPaintSkipsDanglingEdges(t *testing.T) {
	r := newTestRaster(t)

	nodes := []flow.Node{{ID: "a", Position: flow.Point{X: 100, Y: 100}}}
	edges := []flow.Edge{{ID: "e", Source: "a", Target: "missing"}}
	if _, err := r.Paint(nodes, edges, viewport.New()); err != nil {
		t.Fatalf("Paint with dangling edge: %v", err)
	}
}

func TestCaptureNilSurface(t *testing.T) {
	r := newTestRaster(t)

	_, err := r.Capture(nil)
	if !errors.Is(err, ErrEmptySurface) {
		t.Errorf("Capture(nil) err = %v, want ErrEmptySurface", err)
	}
	_, err = r.Capture(&Surface{})
	if !errors.Is(err, ErrEmptySurface) {
		t.Errorf("Capture(empty) err = %v, want ErrEmptySurface", err)
	}
}

func TestCaptureIsACopy(t *testing.T) {
	r := newTestRaster(t)

	s, _ := r.Paint(nil, nil, viewport.New())
	img, err := r.Capture(s)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	// Painting over the surface must not change the captured frame.
	stamp(s.img, 5, 5, color.RGBA{0, 0, 0, 255})
	if got := img.At(5, 5); got != colorCanvas {
		t.Errorf("captured pixel changed after repaint: %v", got)
	}
}

func TestNewRasterZeroOptionsFallsBack(t *testing.T) {
	r, err := NewRaster(Options{})
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	s, _ := r.Paint(nil, nil, nil)
	if b := s.Bounds(); b.Dx() != 1200 || b.Dy() != 800 {
		t.Errorf("bounds = %v, want defaults", b)
	}
}

func TestStyleFor(t *testing.T) {
	if s := StyleFor(flow.Node{Kind: flow.KindDecision}); s.Shape != ShapeDiamond {
		t.Errorf("decision shape = %v, want diamond", s.Shape)
	}

	base := StyleFor(flow.Node{Kind: flow.KindProcess})
	accented := StyleFor(flow.Node{Kind: flow.KindProcess, Color: flow.AccentRed})
	if accented.Border == base.Border {
		t.Error("accent did not override the border color")
	}
	if accented.Fill != base.Fill {
		t.Error("accent should leave the fill alone")
	}

	if s := StyleFor(flow.Node{Kind: flow.Kind(99)}); s.Shape != ShapeBox {
		t.Errorf("unknown kind = %v, want process fallback", s.Shape)
	}
}
