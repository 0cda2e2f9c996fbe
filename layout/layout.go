// Package layout provides the positioning strategies for nodes.
package layout

import "sopflow/flow"

// Layout is the interface all layout engines implement.
type Layout interface {
	Layout(nodes []flow.Node, edges []flow.Edge) ([]flow.Node, error)
}
