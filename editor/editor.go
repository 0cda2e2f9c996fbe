// Package editor is the interaction controller: a small state machine that
// translates pointer and keyboard input into graph store mutations,
// depending on the active mode.
package editor

import (
	"sopflow/flow"
	"sopflow/viewport"
)

// Editor drives one editing session over a store and viewport. All methods
// run synchronously on the caller's event loop; only one gesture can be
// active at a time.
type Editor struct {
	store *flow.Store
	view  *viewport.Viewport

	mode  Mode
	state State

	// Drag gesture
	dragID     string
	dragOffset flow.Point
	dragStart  flow.Point // node position at pointer-down
	dragMoved  bool

	// Connect gesture
	connectFrom   string
	connectAnchor flow.Anchor
	pendingTo     flow.Point

	// Pan gesture
	panStart  flow.Point // pointer-down position in screen space
	panOrigin flow.Point // pan offset at pointer-down
	panMoved  bool

	// Inline label editing
	editingID  string
	textBuffer []rune

	spawned int // count of toolbar-added nodes, for spawn placement
}

// New creates an editor over the given store and viewport.
func New(store *flow.Store, view *viewport.Viewport) *Editor {
	return &Editor{store: store, view: view}
}

// Store returns the underlying graph store.
func (e *Editor) Store() *flow.Store { return e.store }

// Viewport returns the viewport controller.
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// Mode returns the active interaction mode.
func (e *Editor) Mode() Mode { return e.mode }

// State returns the current gesture state.
func (e *Editor) State() State { return e.state }

// SetMode switches the interaction tool. Any in-progress drag, connection
// or pan is cancelled.
func (e *Editor) SetMode(m Mode) {
	if m != e.mode {
		e.cancelGesture()
	}
	e.mode = m
}

// ToggleMode flips between move and connect.
func (e *Editor) ToggleMode() {
	if e.mode == ModeMove {
		e.SetMode(ModeConnect)
	} else {
		e.SetMode(ModeMove)
	}
}

// PendingEdge reports the provisional edge while a connect gesture is in
// flight: the source anchor position and the pointer position, both in
// canvas space.
func (e *Editor) PendingEdge() (from, to flow.Point, ok bool) {
	if e.state != StateConnecting {
		return flow.Point{}, flow.Point{}, false
	}
	src, found := e.store.Node(e.connectFrom)
	if !found {
		return flow.Point{}, flow.Point{}, false
	}
	return src.AnchorPoint(e.connectAnchor), e.pendingTo, true
}

// AddNode creates a node of the given kind inside the default spawn region
// and selects it.
func (e *Editor) AddNode(kind flow.Kind) string {
	id := e.store.AddNode(kind, kind.String(), flow.SpawnPosition(e.spawned))
	e.spawned++
	e.store.SetSelection(id)
	return id
}

// DeleteSelection removes every selected node, cascading to incident edges.
func (e *Editor) DeleteSelection() {
	sel := e.store.Selection()
	if len(sel) == 0 {
		return
	}
	if e.editingID != "" {
		e.CancelEdit()
	}
	e.store.DeleteNodes(sel...)
}

// HighlightSelection toggles the highlight flag on the selection.
func (e *Editor) HighlightSelection() {
	e.store.ToggleHighlight(e.store.Selection()...)
}

// ColorSelection assigns an accent color to the selection.
func (e *Editor) ColorSelection(accent flow.Accent) {
	e.store.SetColor(accent, e.store.Selection()...)
}

// cancelGesture discards any in-flight gesture and returns to idle. A live
// drag leaves the node at its last dragged position, unsnapped.
func (e *Editor) cancelGesture() {
	e.state = StateIdle
	e.dragID = ""
	e.dragMoved = false
	e.connectFrom = ""
	e.panMoved = false
}
