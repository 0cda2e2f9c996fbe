package flow

import (
	"encoding/json"
	"testing"
)

func TestKindParse(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"start", KindStart, true},
		{"process", KindProcess, true},
		{"decision", KindDecision, true},
		{"end", KindEnd, true},
		{"circle", KindCircle, true},
		{"square", KindSquare, true},
		{"", KindProcess, true},
		{"banana", KindProcess, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindJSONUnknownTolerated(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`{"id":"x","kind":"hexagon","label":"y"}`), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Kind != KindProcess {
		t.Errorf("unknown kind decoded as %v, want KindProcess", n.Kind)
	}
}

func TestNodeContains(t *testing.T) {
	n := Node{Kind: KindProcess, Position: Point{X: 100, Y: 100}}
	if !n.Contains(Point{X: 150, Y: 120}) {
		t.Error("point inside node body not detected")
	}
	if n.Contains(Point{X: 99, Y: 120}) {
		t.Error("point left of node detected as inside")
	}
	if n.Contains(Point{X: 150, Y: 100 + NodeHeight}) {
		t.Error("point below node detected as inside")
	}
}

func TestAnchorPoints(t *testing.T) {
	n := Node{Kind: KindProcess, Position: Point{X: 0, Y: 0}}
	if p := n.AnchorPoint(AnchorTop); p.Y != 0 || p.X != NodeWidth/2 {
		t.Errorf("top anchor = %+v", p)
	}
	if p := n.AnchorPoint(AnchorBottom); p.Y != NodeHeight {
		t.Errorf("bottom anchor = %+v", p)
	}
	if p := n.AnchorPoint(AnchorLeft); p.X != 0 {
		t.Errorf("left anchor = %+v", p)
	}
	if p := n.AnchorPoint(AnchorRight); p.X != NodeWidth {
		t.Errorf("right anchor = %+v", p)
	}
	// Auto resolves to the bottom anchor.
	if p := n.AnchorPoint(AnchorAuto); p != n.AnchorPoint(AnchorBottom) {
		t.Errorf("auto anchor = %+v", p)
	}
}

func TestCompactKindsUseSquareFootprint(t *testing.T) {
	for _, k := range []Kind{KindCircle, KindSquare} {
		n := Node{Kind: k}
		w, h := n.Size()
		if w != h {
			t.Errorf("%v footprint = %vx%v, want square", k, w, h)
		}
	}
}
