// Package preview renders the compact read-only summary of a workflow:
// the first three steps stacked vertically with directional arrows, plus
// affordances that delegate to the full editor and exporter.
package preview

import (
	"strings"

	"sopflow/flow"
)

// How many steps the compact summary shows.
const maxRows = 3

// Row is one entry in the summary.
type Row struct {
	ID    string
	Label string
	Kind  flow.Kind
}

// Preview is a reduced, read-only view over a graph store. It owns no
// editing logic of its own; the Edit and Export affordances call back into
// the surfaces that do.
type Preview struct {
	store    *flow.Store
	OnEdit   func()
	OnExport func()
}

// New creates a preview over the given store.
func New(store *flow.Store) *Preview {
	return &Preview{store: store}
}

// Rows returns up to the first three nodes in seed order.
func (p *Preview) Rows() []Row {
	nodes := p.store.Nodes()
	if len(nodes) > maxRows {
		nodes = nodes[:maxRows]
	}
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, Row{ID: n.ID, Label: n.Label, Kind: n.Kind})
	}
	return rows
}

// Truncated reports whether the graph has more steps than the summary shows.
func (p *Preview) Truncated() bool {
	return p.store.NodeCount() > maxRows
}

// Render returns the summary as text: labels stacked with arrows between
// consecutive entries.
func (p *Preview) Render() string {
	rows := p.Rows()
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("  ↓\n")
		}
		b.WriteString(r.Label)
		b.WriteByte('\n')
	}
	if p.Truncated() {
		b.WriteString("  ⋮\n")
	}
	return b.String()
}

// Edit delegates to the full editor.
func (p *Preview) Edit() {
	if p.OnEdit != nil {
		p.OnEdit()
	}
}

// Export delegates to the exporter.
func (p *Preview) Export() {
	if p.OnExport != nil {
		p.OnExport()
	}
}
