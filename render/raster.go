package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"sopflow/flow"
	"sopflow/geometry"
	"sopflow/viewport"
)

// Options configures the raster renderer.
type Options struct {
	Width    int
	Height   int
	FontSize float64
}

// DefaultOptions returns the standard canvas size.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 800, FontSize: 13}
}

// Raster paints the graph onto an RGBA image. Edges are drawn first as
// curved connectors with arrowheads, then nodes on top with kind-dependent
// shapes. Self-loops get a distinct stroke color so they stand out.
type Raster struct {
	width  int
	height int
	face   font.Face
}

// NewRaster creates a raster renderer, loading the embedded label font.
func NewRaster(opts Options) (*Raster, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 13
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building font face: %w", err)
	}

	return &Raster{width: opts.Width, height: opts.Height, face: face}, nil
}

// Paint composes a fresh surface from the graph under the given viewport.
func (r *Raster) Paint(nodes []flow.Node, edges []flow.Edge, vp *viewport.Viewport) (*Surface, error) {
	if vp == nil {
		vp = viewport.New()
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorCanvas), image.Point{}, draw.Src)

	byID := make(map[string]flow.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	for _, e := range edges {
		src, okS := byID[e.Source]
		dst, okT := byID[e.Target]
		if !okS || !okT {
			continue
		}
		r.paintEdge(img, src, dst, e, vp)
	}

	for _, n := range nodes {
		r.paintNode(img, n, vp)
	}

	return &Surface{img: img}, nil
}

// Capture freezes a painted surface into an immutable image.
func (r *Raster) Capture(s *Surface) (image.Image, error) {
	if s == nil || s.img == nil {
		return nil, ErrEmptySurface
	}
	out := image.NewRGBA(s.img.Bounds())
	draw.Draw(out, out.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return out, nil
}

func (r *Raster) paintEdge(img *image.RGBA, src, dst flow.Node, e flow.Edge, vp *viewport.Viewport) {
	stroke := colorEdge
	if e.IsSelfLoop() {
		stroke = colorPending
	}

	sa, ta := e.SourceAnchor, e.TargetAnchor
	if sa == flow.AnchorAuto || ta == flow.AnchorAuto {
		auto1, auto2 := defaultAnchors(src, dst)
		if sa == flow.AnchorAuto {
			sa = auto1
		}
		if ta == flow.AnchorAuto {
			ta = auto2
		}
	}

	p0 := vp.ToScreen(src.AnchorPoint(sa))
	p1 := vp.ToScreen(dst.AnchorPoint(ta))

	var cx, cy float64
	if e.IsSelfLoop() {
		// Loop out past the node's top-right corner.
		b := src.Bounds()
		c := vp.ToScreen(flow.Point{X: b.Max.X + 48, Y: b.Min.Y - 48})
		p0 = vp.ToScreen(src.AnchorPoint(flow.AnchorRight))
		p1 = vp.ToScreen(src.AnchorPoint(flow.AnchorTop))
		cx, cy = c.X, c.Y
	} else {
		cx, cy = curveControl(p0, p1)
	}

	drawQuad(img, p0.X, p0.Y, cx, cy, p1.X, p1.Y, stroke)
	drawArrowhead(img, cx, cy, p1.X, p1.Y, stroke)
}

func (r *Raster) paintNode(img *image.RGBA, n flow.Node, vp *viewport.Viewport) {
	style := StyleFor(n)
	b := n.Bounds()
	min := vp.ToScreen(b.Min)
	max := vp.ToScreen(b.Max)
	rect := image.Rect(int(min.X), int(min.Y), int(max.X), int(max.Y))
	if rect.Empty() {
		return
	}

	const borderW = 2
	if n.Highlighted {
		fillShape(img, rect.Inset(-4), style.Shape, colorHighlight)
	}
	fillShape(img, rect, style.Shape, style.Border)
	fillShape(img, rect.Inset(borderW), style.Shape, style.Fill)

	r.drawLabel(img, rect, n.Label)
}

func (r *Raster) drawLabel(img *image.RGBA, rect image.Rectangle, label string) {
	if r.face == nil || label == "" {
		return
	}
	maxW := rect.Dx() - 16
	if maxW <= 0 {
		return
	}
	text := truncate(r.face, label, maxW)

	w := font.MeasureString(r.face, text).Ceil()
	m := r.face.Metrics()
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + rect.Dy()/2 + m.Ascent.Ceil()/2 - 1

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func truncate(face font.Face, s string, maxW int) string {
	if font.MeasureString(face, s).Ceil() <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if font.MeasureString(face, candidate).Ceil() <= maxW {
			return candidate
		}
	}
	return "…"
}

// defaultAnchors picks the anchor pair from the nodes' relative centers:
// vertical separation uses bottom→top, horizontal uses right→left.
func defaultAnchors(src, dst flow.Node) (flow.Anchor, flow.Anchor) {
	sc, dc := src.Center(), dst.Center()
	dx, dy := dc.X-sc.X, dc.Y-sc.Y
	if math.Abs(dy) >= math.Abs(dx) {
		if dy >= 0 {
			return flow.AnchorBottom, flow.AnchorTop
		}
		return flow.AnchorTop, flow.AnchorBottom
	}
	if dx >= 0 {
		return flow.AnchorRight, flow.AnchorLeft
	}
	return flow.AnchorLeft, flow.AnchorRight
}

// curveControl bows the connector perpendicular to its chord.
func curveControl(p0, p1 flow.Point) (float64, float64) {
	mx, my := (p0.X+p1.X)/2, (p0.Y+p1.Y)/2
	dist := geometry.Dist(p0.X, p0.Y, p1.X, p1.Y)
	if dist < 1 {
		return mx, my
	}
	bow := geometry.Clamp(dist*0.15, 8, 48)
	nx := -(p1.Y - p0.Y) / dist
	ny := (p1.X - p0.X) / dist
	return mx + nx*bow, my + ny*bow
}

func drawQuad(img *image.RGBA, x0, y0, cx, cy, x1, y1 float64, col color.RGBA) {
	steps := int(geometry.Dist(x0, y0, x1, y1)/2) + 8
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := geometry.Quad(x0, y0, cx, cy, x1, y1, t)
		stamp(img, x, y, col)
	}
}

func drawArrowhead(img *image.RGBA, cx, cy, tx, ty float64, col color.RGBA) {
	angle := geometry.Angle(cx, cy, tx, ty)
	const length = 10.0
	const spread = 0.45
	for _, a := range []float64{angle + math.Pi - spread, angle + math.Pi + spread} {
		ex := tx + length*math.Cos(a)
		ey := ty + length*math.Sin(a)
		drawLine(img, tx, ty, ex, ey, col)
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	steps := int(geometry.Dist(x0, y0, x1, y1)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stamp(img, geometry.Lerp(x0, x1, t), geometry.Lerp(y0, y1, t), col)
	}
}

// stamp writes a 2x2 block so strokes survive downscaling.
func stamp(img *image.RGBA, x, y float64, col color.RGBA) {
	px, py := int(x), int(y)
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if image.Pt(px+dx, py+dy).In(img.Bounds()) {
				img.SetRGBA(px+dx, py+dy, col)
			}
		}
	}
}

// fillShape rasterizes one of the node outlines into rect.
func fillShape(img *image.RGBA, rect image.Rectangle, shape Shape, col color.RGBA) {
	if rect.Empty() {
		return
	}
	switch shape {
	case ShapePill:
		fillRoundRect(img, rect, rect.Dy()/2, col)
	case ShapeDiamond:
		fillDiamond(img, rect, col)
	case ShapeEllipse:
		fillEllipse(img, rect, col)
	case ShapeSquare:
		fillRoundRect(img, rect, 4, col)
	default:
		fillRoundRect(img, rect, 6, col)
	}
}

func fillRoundRect(img *image.RGBA, rect image.Rectangle, radius int, col color.RGBA) {
	if radius > rect.Dy()/2 {
		radius = rect.Dy() / 2
	}
	if radius > rect.Dx()/2 {
		radius = rect.Dx() / 2
	}
	uni := image.NewUniform(col)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		inset := 0
		if dy := y - rect.Min.Y; dy < radius {
			inset = radius - int(math.Sqrt(float64(2*radius*dy-dy*dy)))
		} else if dy := rect.Max.Y - 1 - y; dy < radius {
			inset = radius - int(math.Sqrt(float64(2*radius*dy-dy*dy)))
		}
		row := image.Rect(rect.Min.X+inset, y, rect.Max.X-inset, y+1)
		draw.Draw(img, row.Intersect(img.Bounds()), uni, image.Point{}, draw.Src)
	}
}

func fillDiamond(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	uni := image.NewUniform(col)
	h := rect.Dy()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		// Half-width grows to the middle row, then shrinks.
		dy := y - rect.Min.Y
		frac := 1 - math.Abs(float64(2*dy-h))/float64(h)
		half := int(frac * float64(rect.Dx()) / 2)
		cx := (rect.Min.X + rect.Max.X) / 2
		row := image.Rect(cx-half, y, cx+half, y+1)
		draw.Draw(img, row.Intersect(img.Bounds()), uni, image.Point{}, draw.Src)
	}
}

func fillEllipse(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	uni := image.NewUniform(col)
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	cx := float64(rect.Min.X) + rx
	cy := float64(rect.Min.Y) + ry
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		fy := (float64(y) + 0.5 - cy) / ry
		if fy*fy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-fy*fy)
		row := image.Rect(int(cx-half), y, int(cx+half), y+1)
		draw.Draw(img, row.Intersect(img.Bounds()), uni, image.Point{}, draw.Src)
	}
}
