package export

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"sopflow/flow"
	"sopflow/render"
	"sopflow/viewport"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Order Fulfilment", "order-fulfilment.png"},
		{"  My   Flow!!  ", "my-flow.png"},
		{"Ops / Oncall (v2)", "ops-oncall-v2.png"},
		{"ALREADY-fine", "already-fine.png"},
		{"", "workflow.png"},
		{"!!!", "workflow.png"},
		{"trailing junk???", "trailing-junk.png"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestPNGWritesDecodableFile(t *testing.T) {
	store := flow.NewStore()
	store.SetTitle("Smoke Test")
	a := store.AddNode(flow.KindStart, "Start", flow.Point{X: 60, Y: 60})
	b := store.AddNode(flow.KindEnd, "Done", flow.Point{X: 60, Y: 300})
	store.AddEdge(a, b, flow.AnchorBottom, flow.AnchorTop)

	r, err := render.NewRaster(render.DefaultOptions())
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}

	dir := t.TempDir()
	path, err := NewExporter(r).PNG(store, viewport.New(), dir)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if filepath.Base(path) != "smoke-test.png" {
		t.Errorf("path = %s, want name derived from title", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	opts := render.DefaultOptions()
	if img.Bounds().Dx() != opts.Width || img.Bounds().Dy() != opts.Height {
		t.Errorf("image size = %v, want %dx%d", img.Bounds(), opts.Width, opts.Height)
	}
}

// failingRenderer paints fine but refuses capture, exercising the
// recoverable-failure path.
type failingRenderer struct{}

func (failingRenderer) Paint([]flow.Node, []flow.Edge, *viewport.Viewport) (*render.Surface, error) {
	return &render.Surface{}, nil
}

func (failingRenderer) Capture(*render.Surface) (image.Image, error) {
	return nil, errors.New("backing store lost")
}

func TestPNGCaptureFailureIsRecoverable(t *testing.T) {
	store := flow.NewStore()
	dir := t.TempDir()
	_, err := NewExporter(failingRenderer{}).PNG(store, viewport.New(), dir)
	if !errors.Is(err, ErrCaptureUnavailable) {
		t.Fatalf("err = %v, want ErrCaptureUnavailable", err)
	}
	// Nothing should have been written.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("unexpected files written: %v", entries)
	}
}
