package flow

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the single source of truth for a workflow graph: nodes, edges and
// the current selection. Every mutation runs to completion synchronously and
// keeps the structural invariants intact: node ids stay unique, edges never
// reference a missing node, and the selection only ever names live nodes.
//
// Invalid mutations (unknown ids, missing endpoints) degrade to no-ops; they
// are caller bugs, not runtime conditions, so nothing is surfaced beyond a
// debug log line.
type Store struct {
	title     string
	nodes     []Node
	edges     []Edge
	selection map[string]bool
	edgeSeq   int
}

// NewStore creates an empty graph store.
func NewStore() *Store {
	return &Store{selection: make(map[string]bool)}
}

// Title returns the workflow's human-readable title.
func (s *Store) Title() string { return s.title }

// SetTitle sets the workflow's title.
func (s *Store) SetTitle(title string) { s.title = title }

// Nodes returns the nodes in seed/creation order. The slice is a copy.
func (s *Store) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns the edges in creation order. The slice is a copy.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Node looks up a node by id.
func (s *Store) Node(id string) (Node, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.nodes[i], true
	}
	return Node{}, false
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// AddNode creates a node and returns its fresh id. New nodes start
// unhighlighted with no accent color and are editable.
func (s *Store) AddNode(kind Kind, label string, pos Point) string {
	id := uuid.NewString()
	s.nodes = append(s.nodes, Node{
		ID:       id,
		Kind:     kind,
		Label:    label,
		Position: sanitizePosition(pos, len(s.nodes)),
		Editable: true,
	})
	return id
}

// UpdateNodePosition replaces a node's position. Unknown ids and
// non-finite coordinates are ignored.
func (s *Store) UpdateNodePosition(id string, pos Point) {
	i := s.indexOf(id)
	if i < 0 {
		slog.Debug("position update for unknown node", "id", id)
		return
	}
	if !finite(pos) {
		slog.Debug("position update rejected", "id", id, "x", pos.X, "y", pos.Y)
		return
	}
	s.nodes[i].Position = pos
}

// UpdateNodeLabel replaces a node's label with the trimmed text. An empty
// result keeps the previous label; a label is never stored empty.
func (s *Store) UpdateNodeLabel(id, label string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	trimmed := trimLabel(label)
	if trimmed == "" {
		return
	}
	s.nodes[i].Label = trimmed
}

// DeleteNodes removes the named nodes and, atomically, every edge whose
// source or target is among them. Deleted ids are pruned from the selection.
func (s *Store) DeleteNodes(ids ...string) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if !doomed[n.ID] {
			kept = append(kept, n)
		}
	}
	s.nodes = kept

	keptEdges := s.edges[:0]
	for _, e := range s.edges {
		if !doomed[e.Source] && !doomed[e.Target] {
			keptEdges = append(keptEdges, e)
		}
	}
	s.edges = keptEdges

	for id := range doomed {
		delete(s.selection, id)
	}
}

// AddEdge creates a directed edge between two existing nodes and returns its
// id. If either endpoint is missing the call is a silent no-op and ok is
// false. Duplicate parallel edges and self-loops are permitted.
func (s *Store) AddEdge(source, target string, sourceAnchor, targetAnchor Anchor) (string, bool) {
	if s.indexOf(source) < 0 || s.indexOf(target) < 0 {
		slog.Debug("edge rejected, missing endpoint", "source", source, "target", target)
		return "", false
	}
	s.edgeSeq++
	id := fmt.Sprintf("edge-%d-%d", time.Now().UnixMilli(), s.edgeSeq)
	s.edges = append(s.edges, Edge{
		ID:           id,
		Source:       source,
		Target:       target,
		SourceAnchor: sourceAnchor,
		TargetAnchor: targetAnchor,
	})
	return id, true
}

// SetSelection replaces the selection with the given ids. Ids not present in
// the store are dropped.
func (s *Store) SetSelection(ids ...string) {
	s.selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.indexOf(id) >= 0 {
			s.selection[id] = true
		}
	}
}

// ToggleSelection flips a single node's membership in the selection.
func (s *Store) ToggleSelection(id string) {
	if s.indexOf(id) < 0 {
		return
	}
	if s.selection[id] {
		delete(s.selection, id)
	} else {
		s.selection[id] = true
	}
}

// Selection returns the selected node ids in a stable order.
func (s *Store) Selection() []string {
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports whether the node is in the current selection.
func (s *Store) IsSelected(id string) bool { return s.selection[id] }

// ToggleHighlight flips the highlight flag on each named node. Unknown ids
// are ignored.
func (s *Store) ToggleHighlight(ids ...string) {
	for _, id := range ids {
		if i := s.indexOf(id); i >= 0 {
			s.nodes[i].Highlighted = !s.nodes[i].Highlighted
		}
	}
}

// SetColor assigns an accent color to each named node. Unknown ids are
// ignored; AccentNone restores kind-based styling.
func (s *Store) SetColor(color Accent, ids ...string) {
	for _, id := range ids {
		if i := s.indexOf(id); i >= 0 {
			s.nodes[i].Color = color
		}
	}
}

// SetEditable sets the repositioning flag on every node. Read-only surfaces
// seed with editable=false.
func (s *Store) SetEditable(editable bool) {
	for i := range s.nodes {
		s.nodes[i].Editable = editable
	}
}

// Replace swaps in a whole new node and edge list, last writer wins. Edges
// referencing missing nodes are dropped, and the selection is pruned to the
// surviving ids. This is the full-state reload path used when an external
// collaborator pushes a change notification.
func (s *Store) Replace(nodes []Node, edges []Edge) {
	s.nodes = make([]Node, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		if n.ID == "" || seen[n.ID] {
			slog.Warn("dropping node with missing or duplicate id", "id", n.ID)
			continue
		}
		seen[n.ID] = true
		n.Position = sanitizePosition(n.Position, i)
		s.nodes = append(s.nodes, n)
	}

	s.edges = make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !seen[e.Source] || !seen[e.Target] {
			slog.Warn("dropping edge with missing endpoint", "edge", e.ID)
			continue
		}
		s.edges = append(s.edges, e)
	}

	for id := range s.selection {
		if !seen[id] {
			delete(s.selection, id)
		}
	}
}

// SpawnPosition returns a position inside the bounded default spawn region
// for the i-th node added by explicit user action.
func SpawnPosition(i int) Point {
	const (
		originX = 80.0
		originY = 80.0
		step    = 40.0
		cols    = 5
		rows    = 5
	)
	return Point{
		X: originX + float64(i%cols)*step,
		Y: originY + float64((i/cols)%rows)*step,
	}
}

func (s *Store) indexOf(id string) int {
	for i, n := range s.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func sanitizePosition(p Point, i int) Point {
	if finite(p) {
		return p
	}
	return SpawnPosition(i)
}

func trimLabel(label string) string {
	return strings.TrimSpace(label)
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
