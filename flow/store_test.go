package flow

import (
	"math"
	"testing"
)

func TestAddNodeDefaults(t *testing.T) {
	s := NewStore()
	id := s.AddNode(KindProcess, "Review order", Point{X: 100, Y: 50})

	n, ok := s.Node(id)
	if !ok {
		t.Fatal("added node not found")
	}
	if n.Highlighted {
		t.Error("new node should not be highlighted")
	}
	if n.Color != AccentNone {
		t.Errorf("new node color = %v, want AccentNone", n.Color)
	}
	if !n.Editable {
		t.Error("new node should be editable")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := s.AddNode(KindProcess, "step", Point{})
		if seen[id] {
			t.Fatalf("duplicate node id %s", id)
		}
		seen[id] = true
	}
}

func TestDeleteNodesCascadesEdges(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindStart, "a", Point{})
	b := s.AddNode(KindProcess, "b", Point{})
	c := s.AddNode(KindEnd, "c", Point{})
	s.AddEdge(a, b, AnchorAuto, AnchorAuto)
	s.AddEdge(b, c, AnchorAuto, AnchorAuto)
	s.AddEdge(a, c, AnchorAuto, AnchorAuto)

	s.DeleteNodes(b)

	if s.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", s.NodeCount())
	}
	for _, e := range s.Edges() {
		if e.Source == b || e.Target == b {
			t.Errorf("dangling edge %s references deleted node", e.ID)
		}
	}
	if s.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", s.EdgeCount())
	}
}

func TestDeleteNodesPrunesSelection(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindProcess, "a", Point{})
	b := s.AddNode(KindProcess, "b", Point{})
	s.SetSelection(a, b)

	s.DeleteNodes(a)

	for _, id := range s.Selection() {
		if id == a {
			t.Error("selection still contains deleted node")
		}
	}
	if !s.IsSelected(b) {
		t.Error("surviving node dropped from selection")
	}
}

func TestAddEdgeMissingEndpoint(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindProcess, "a", Point{})

	if _, ok := s.AddEdge(a, "nope", AnchorAuto, AnchorAuto); ok {
		t.Error("edge to unknown target should be rejected")
	}
	if _, ok := s.AddEdge("nope", a, AnchorAuto, AnchorAuto); ok {
		t.Error("edge from unknown source should be rejected")
	}
	if s.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", s.EdgeCount())
	}
}

func TestAddEdgeAllowsDuplicatesAndSelfLoops(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindProcess, "a", Point{})
	b := s.AddNode(KindProcess, "b", Point{})

	id1, _ := s.AddEdge(a, b, AnchorBottom, AnchorTop)
	id2, _ := s.AddEdge(a, b, AnchorBottom, AnchorTop)
	if id1 == id2 {
		t.Error("parallel edges should get distinct ids")
	}
	if s.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2 (duplicates permitted)", s.EdgeCount())
	}

	if _, ok := s.AddEdge(a, a, AnchorRight, AnchorTop); !ok {
		t.Error("self-loop should be permitted")
	}
}

func TestUpdateNodeLabel(t *testing.T) {
	s := NewStore()
	id := s.AddNode(KindProcess, "original", Point{})

	s.UpdateNodeLabel(id, "  Step A  ")
	if n, _ := s.Node(id); n.Label != "Step A" {
		t.Errorf("label = %q, want %q", n.Label, "Step A")
	}

	s.UpdateNodeLabel(id, "   ")
	if n, _ := s.Node(id); n.Label != "Step A" {
		t.Errorf("empty commit changed label to %q, want previous retained", n.Label)
	}

	s.UpdateNodeLabel("unknown", "x") // must not panic
}

func TestUpdateNodePosition(t *testing.T) {
	s := NewStore()
	id := s.AddNode(KindProcess, "a", Point{X: 10, Y: 10})

	s.UpdateNodePosition(id, Point{X: 42, Y: 7})
	if n, _ := s.Node(id); n.Position.X != 42 || n.Position.Y != 7 {
		t.Errorf("position = %+v, want (42, 7)", n.Position)
	}

	s.UpdateNodePosition(id, Point{X: math.NaN(), Y: 7})
	if n, _ := s.Node(id); math.IsNaN(n.Position.X) {
		t.Error("NaN position was stored")
	}

	s.UpdateNodePosition("unknown", Point{X: 1, Y: 1}) // no-op
}

func TestSetSelectionFiltersUnknown(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindProcess, "a", Point{})
	s.SetSelection(a, "ghost")

	sel := s.Selection()
	if len(sel) != 1 || sel[0] != a {
		t.Errorf("selection = %v, want [%s]", sel, a)
	}
}

func TestToggleHighlightAndColor(t *testing.T) {
	s := NewStore()
	a := s.AddNode(KindProcess, "a", Point{})

	s.ToggleHighlight(a, "ghost")
	if n, _ := s.Node(a); !n.Highlighted {
		t.Error("highlight not toggled on")
	}
	s.ToggleHighlight(a)
	if n, _ := s.Node(a); n.Highlighted {
		t.Error("highlight not toggled off")
	}

	s.SetColor(AccentGreen, a)
	if n, _ := s.Node(a); n.Color != AccentGreen {
		t.Errorf("color = %v, want AccentGreen", n.Color)
	}
}

func TestReplaceDropsDanglingAndPrunesSelection(t *testing.T) {
	s := NewStore()
	old := s.AddNode(KindProcess, "old", Point{})
	s.SetSelection(old)

	s.Replace(
		[]Node{
			{ID: "n1", Kind: KindStart, Label: "one", Editable: true},
			{ID: "n2", Kind: KindEnd, Label: "two", Editable: true},
		},
		[]Edge{
			{ID: "e1", Source: "n1", Target: "n2"},
			{ID: "e2", Source: "n1", Target: "missing"},
		},
	)

	if s.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", s.NodeCount())
	}
	if s.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1 (dangling edge dropped)", s.EdgeCount())
	}
	if len(s.Selection()) != 0 {
		t.Errorf("selection = %v, want empty after wholesale replace", s.Selection())
	}
}

func TestReferentialIntegrityUnderMutation(t *testing.T) {
	// A longer mutation sequence: after every delete, no surviving edge may
	// reference a deleted node.
	s := NewStore()
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, s.AddNode(KindProcess, "n", Point{}))
	}
	for i := 0; i < 9; i++ {
		s.AddEdge(ids[i], ids[i+1], AnchorAuto, AnchorAuto)
		s.AddEdge(ids[9-i], ids[i], AnchorAuto, AnchorAuto)
	}

	for _, batch := range [][]string{{ids[0], ids[5]}, {ids[9]}, {ids[1], ids[2], ids[3]}} {
		s.DeleteNodes(batch...)
		deleted := make(map[string]bool)
		for _, id := range batch {
			deleted[id] = true
		}
		for _, e := range s.Edges() {
			if deleted[e.Source] || deleted[e.Target] {
				t.Fatalf("edge %s survived deletion of its endpoint", e.ID)
			}
		}
	}
}

func TestSpawnPositionBounded(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := SpawnPosition(i)
		if p.X < 80 || p.X > 400 || p.Y < 80 || p.Y > 400 {
			t.Fatalf("spawn %d = %+v outside the default region", i, p)
		}
	}
}
