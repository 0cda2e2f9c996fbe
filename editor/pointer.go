package editor

import (
	"math"

	"sopflow/flow"
)

// Modifier is the modifier-key state accompanying a pointer event.
type Modifier uint8

const (
	ModNone   Modifier = 0
	ModToggle Modifier = 1 << iota // ctrl/cmd held: toggle selection membership
)

// anchorHitRadius is how close (canvas units) a pointer must be to an
// anchor point to grab it in connect mode.
const anchorHitRadius = 14.0

// dragThreshold separates a click from a drag, in canvas units.
const dragThreshold = 2.0

// PointerDown starts a gesture. What happens depends on the active mode and
// what is under the pointer: a node body, a connection anchor, or empty
// canvas.
func (e *Editor) PointerDown(screen flow.Point, mod Modifier) {
	if e.state != StateIdle {
		return
	}
	if e.editingID != "" {
		e.CommitEdit() // pointer-down elsewhere is a blur
	}

	p := e.view.ToCanvas(screen)

	if e.mode == ModeConnect {
		if id, anchor, ok := e.hitAnchor(p); ok {
			e.state = StateConnecting
			e.connectFrom = id
			e.connectAnchor = anchor
			e.pendingTo = p
			return
		}
	}

	if n, ok := e.hitNode(p); ok {
		if mod&ModToggle != 0 {
			e.store.ToggleSelection(n.ID)
			return
		}
		e.store.SetSelection(n.ID)
		if e.mode == ModeMove && n.Editable {
			e.state = StateDragging
			e.dragID = n.ID
			e.dragOffset = p.Sub(n.Position)
			e.dragStart = n.Position
			e.dragMoved = false
		}
		return
	}

	// Empty canvas.
	if e.mode == ModeMove {
		e.state = StatePanning
		e.panStart = screen
		e.panOrigin = e.view.Pan()
		e.panMoved = false
		return
	}
	e.store.SetSelection()
}

// PointerMove advances the active gesture. Dragged nodes follow the pointer
// live and unsnapped; the snap lands on pointer-up.
func (e *Editor) PointerMove(screen flow.Point) {
	p := e.view.ToCanvas(screen)

	switch e.state {
	case StateDragging:
		target := p.Sub(e.dragOffset)
		// Displacement is measured from the pointer-down position, so a
		// drag delivered as many tiny increments still counts as moved.
		moved := target.Sub(e.dragStart)
		if moved.X > dragThreshold || moved.X < -dragThreshold ||
			moved.Y > dragThreshold || moved.Y < -dragThreshold {
			e.dragMoved = true
		}
		e.store.UpdateNodePosition(e.dragID, target)

	case StateConnecting:
		e.pendingTo = p

	case StatePanning:
		dx := screen.X - e.panStart.X
		dy := screen.Y - e.panStart.Y
		if dx > dragThreshold || dx < -dragThreshold ||
			dy > dragThreshold || dy < -dragThreshold {
			e.panMoved = true
		}
		e.view.SetPan(flow.Point{X: e.panOrigin.X + dx, Y: e.panOrigin.Y + dy})
	}
}

// PointerUp completes the active gesture and returns to idle.
func (e *Editor) PointerUp(screen flow.Point) {
	p := e.view.ToCanvas(screen)

	switch e.state {
	case StateDragging:
		if e.dragMoved {
			if n, ok := e.store.Node(e.dragID); ok {
				e.store.UpdateNodePosition(e.dragID, e.view.Snap(n.Position))
			}
		}

	case StateConnecting:
		if id, anchor, ok := e.hitAnchor(p); ok {
			e.store.AddEdge(e.connectFrom, id, e.connectAnchor, anchor)
		}
		// Pointer-up elsewhere discards the provisional edge.

	case StatePanning:
		if !e.panMoved {
			e.store.SetSelection()
		}
	}

	e.cancelGesture()
}

// DoubleClick on a node body enters inline label editing.
func (e *Editor) DoubleClick(screen flow.Point) {
	if e.state != StateIdle {
		return
	}
	p := e.view.ToCanvas(screen)
	if n, ok := e.hitNode(p); ok {
		e.startEdit(n)
	}
}

// ZoomIn raises the viewport zoom one step.
func (e *Editor) ZoomIn() { e.view.ZoomIn() }

// ZoomOut lowers the viewport zoom one step.
func (e *Editor) ZoomOut() { e.view.ZoomOut() }

// hitNode finds the topmost node under a canvas point.
func (e *Editor) hitNode(p flow.Point) (flow.Node, bool) {
	nodes := e.store.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Contains(p) {
			return nodes[i], true
		}
	}
	return flow.Node{}, false
}

// hitAnchor finds the nearest connection anchor within reach of a canvas
// point. The node's own anchors are valid targets; self-loops are allowed.
func (e *Editor) hitAnchor(p flow.Point) (string, flow.Anchor, bool) {
	bestDist := anchorHitRadius
	var bestID string
	var bestAnchor flow.Anchor
	found := false

	for _, n := range e.store.Nodes() {
		for _, a := range flow.Anchors() {
			ap := n.AnchorPoint(a)
			d := dist(ap, p)
			if d <= bestDist {
				bestDist = d
				bestID = n.ID
				bestAnchor = a
				found = true
			}
		}
	}
	return bestID, bestAnchor, found
}

func dist(a, b flow.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
