package layout

import (
	"testing"

	"sopflow/flow"
)

func TestGridPositionWraps(t *testing.T) {
	g := NewGridLayout()

	// Index 0..2 share a row, index 3 wraps to the next.
	if g.Position(0).Y != g.Position(2).Y {
		t.Error("indexes 0 and 2 should share a row")
	}
	if g.Position(3).X != g.Position(0).X {
		t.Error("index 3 should wrap back to column 0")
	}
	if g.Position(3).Y != g.Position(0).Y+g.VSpacing {
		t.Error("index 3 should land one row below index 0")
	}
}

func TestGridLayoutDeterministic(t *testing.T) {
	g := NewGridLayout()
	nodes := make([]flow.Node, 7)
	for i := range nodes {
		nodes[i] = flow.Node{ID: string(rune('a' + i))}
	}

	first, err := g.Layout(nodes, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	second, err := g.Layout(nodes, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for i := range first {
		if first[i].Position != second[i].Position {
			t.Errorf("node %d position differs between runs: %+v vs %+v",
				i, first[i].Position, second[i].Position)
		}
	}
}

func TestGridLayoutDoesNotMutateInput(t *testing.T) {
	g := NewGridLayout()
	nodes := []flow.Node{{ID: "a", Position: flow.Point{X: 999, Y: 999}}}
	if _, err := g.Layout(nodes, nil); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if nodes[0].Position.X != 999 {
		t.Error("layout mutated its input slice")
	}
}
