package layout

import "sopflow/flow"

// GridLayout arranges nodes in a fixed-column wrapping grid: index i lands
// at column i mod Columns, row i / Columns. Placement is a pure function of
// index, so the same input order always produces the same positions.
type GridLayout struct {
	Columns  int
	HSpacing float64
	VSpacing float64
	Origin   flow.Point
}

// NewGridLayout creates a grid layout with the default three-column shape.
func NewGridLayout() *GridLayout {
	return &GridLayout{
		Columns:  3,
		HSpacing: 220,
		VSpacing: 140,
		Origin:   flow.Point{X: 60, Y: 60},
	}
}

// Position returns the canvas position for the i-th node.
func (g *GridLayout) Position(i int) flow.Point {
	cols := g.Columns
	if cols <= 0 {
		cols = 3
	}
	return flow.Point{
		X: g.Origin.X + float64(i%cols)*g.HSpacing,
		Y: g.Origin.Y + float64(i/cols)*g.VSpacing,
	}
}

// Layout assigns grid positions to every node by its index. Edges do not
// influence placement.
func (g *GridLayout) Layout(nodes []flow.Node, edges []flow.Edge) ([]flow.Node, error) {
	out := make([]flow.Node, len(nodes))
	copy(out, nodes)
	for i := range out {
		out[i].Position = g.Position(i)
	}
	return out, nil
}
