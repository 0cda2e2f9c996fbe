// Package seed converts between the external step-list shapes supplied by
// the generation and persistence collaborators and the in-memory graph store.
package seed

import (
	"fmt"
	"log/slog"

	"sopflow/flow"
	"sopflow/layout"
)

// Step is the wire shape of a single workflow step. Two forms arrive from
// collaborators: the successor-list form (id, title, type, next) and the
// explicit-coordinate form (id, title, description, type, x, y, connections).
// One struct covers both; X and Y are pointers so absence is distinguishable
// from zero.
type Step struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Next        []string `json:"next,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Connections []string `json:"connections,omitempty"`
}

// successors merges the two wire forms' edge lists.
func (s Step) successors() []string {
	if len(s.Connections) > 0 {
		return s.Connections
	}
	return s.Next
}

// Option adjusts seeding behavior.
type Option func(*options)

type options struct {
	editable bool
}

// ReadOnly seeds nodes with the repositioning flag cleared, for read-only
// presentation surfaces.
func ReadOnly() Option {
	return func(o *options) { o.editable = false }
}

// FromSteps builds a graph store from an external step list. Steps missing a
// required id, or carrying no label text in either title or description, are
// dropped with a diagnostic; the remaining valid steps still seed. Steps without explicit coordinates fall into the
// deterministic grid auto-layout by index. An empty list seeds a single
// default start node.
func FromSteps(steps []Step, opts ...Option) *flow.Store {
	o := options{editable: true}
	for _, opt := range opts {
		opt(&o)
	}

	store := flow.NewStore()
	nodes, edges := build(steps)
	store.Replace(nodes, edges)

	if store.NodeCount() == 0 {
		store.AddNode(flow.KindStart, "Start", flow.SpawnPosition(0))
	}
	if !o.editable {
		store.SetEditable(false)
	}
	return store
}

// Reload replaces the store's graph wholesale from a fresh step list. The
// incoming list wins; there is no merge. Selection entries for vanished
// nodes are pruned.
func Reload(store *flow.Store, steps []Step) {
	nodes, edges := build(steps)
	store.Replace(nodes, edges)
}

// Steps snapshots the store back into the explicit-coordinate wire form for
// upsert by the persistence collaborator.
func Steps(store *flow.Store) []Step {
	nodes := store.Nodes()
	out := make([]Step, 0, len(nodes))

	conns := make(map[string][]string)
	for _, e := range store.Edges() {
		conns[e.Source] = append(conns[e.Source], e.Target)
	}

	for _, n := range nodes {
		x, y := n.Position.X, n.Position.Y
		out = append(out, Step{
			ID:          n.ID,
			Title:       n.Label,
			Type:        n.Kind.String(),
			X:           &x,
			Y:           &y,
			Connections: conns[n.ID],
		})
	}
	return out
}

func build(steps []Step) ([]flow.Node, []flow.Edge) {
	grid := layout.NewGridLayout()

	var nodes []flow.Node
	valid := make(map[string]bool)
	for _, s := range steps {
		// Title labels the node; description stands in when there is no
		// title, so richer explicit-coordinate steps keep their text.
		label := s.Title
		if label == "" {
			label = s.Description
		}
		if s.ID == "" || label == "" {
			slog.Warn("dropping malformed step", "id", s.ID, "title", s.Title)
			continue
		}
		kind, ok := flow.ParseKind(s.Type)
		if !ok {
			slog.Debug("unknown step type, using process", "id", s.ID, "type", s.Type)
		}
		pos := grid.Position(len(nodes))
		if s.X != nil && s.Y != nil {
			pos = flow.Point{X: *s.X, Y: *s.Y}
		}
		nodes = append(nodes, flow.Node{
			ID:       s.ID,
			Kind:     kind,
			Label:    label,
			Position: pos,
			Editable: true,
		})
		valid[s.ID] = true
	}

	var edges []flow.Edge
	seq := 0
	for _, s := range steps {
		if !valid[s.ID] {
			continue
		}
		for _, target := range s.successors() {
			if !valid[target] {
				slog.Warn("dropping seed edge to unknown step", "source", s.ID, "target", target)
				continue
			}
			seq++
			edges = append(edges, flow.Edge{
				ID:     edgeID(s.ID, target, seq),
				Source: s.ID,
				Target: target,
			})
		}
	}
	return nodes, edges
}

func edgeID(source, target string, seq int) string {
	return fmt.Sprintf("seed-%s-%s-%d", source, target, seq)
}
