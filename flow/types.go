// Package flow contains the workflow graph model shared by every surface:
// the full editor, the read-only preview, and the exporters.
package flow

import (
	"encoding/json"
	"fmt"
)

// Point is a 2D coordinate in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by f on both axes.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Rect is an axis-aligned rectangle in canvas space.
type Rect struct {
	Min, Max Point
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Kind is the visual and semantic category of a node. Start and End carry
// no traversal meaning beyond their styling.
type Kind int

const (
	KindProcess Kind = iota
	KindStart
	KindDecision
	KindEnd
	KindCircle
	KindSquare
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindProcess:
		return "process"
	case KindDecision:
		return "decision"
	case KindEnd:
		return "end"
	case KindCircle:
		return "circle"
	case KindSquare:
		return "square"
	default:
		return "process"
	}
}

// ParseKind maps a wire name to a Kind. Unknown names report ok=false and
// fall back to KindProcess.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "start":
		return KindStart, true
	case "process", "":
		return KindProcess, true
	case "decision":
		return KindDecision, true
	case "end":
		return KindEnd, true
	case "circle":
		return KindCircle, true
	case "square":
		return KindSquare, true
	default:
		return KindProcess, false
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a wire name, tolerating unknown values.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("node kind: %w", err)
	}
	parsed, _ := ParseKind(s)
	*k = parsed
	return nil
}

// Accent is an optional color override for a node. AccentNone defers to the
// kind's default styling.
type Accent int

const (
	AccentNone Accent = iota
	AccentRed
	AccentOrange
	AccentYellow
	AccentGreen
	AccentBlue
	AccentPurple
)

// String returns the wire name of the accent, or "" for AccentNone.
func (a Accent) String() string {
	switch a {
	case AccentRed:
		return "red"
	case AccentOrange:
		return "orange"
	case AccentYellow:
		return "yellow"
	case AccentGreen:
		return "green"
	case AccentBlue:
		return "blue"
	case AccentPurple:
		return "purple"
	default:
		return ""
	}
}

// ParseAccent maps a wire name to an Accent.
func ParseAccent(s string) (Accent, bool) {
	switch s {
	case "":
		return AccentNone, true
	case "red":
		return AccentRed, true
	case "orange":
		return AccentOrange, true
	case "yellow":
		return AccentYellow, true
	case "green":
		return AccentGreen, true
	case "blue":
		return AccentBlue, true
	case "purple":
		return AccentPurple, true
	default:
		return AccentNone, false
	}
}

// MarshalJSON encodes the accent as its wire name.
func (a Accent) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a wire name, tolerating unknown values.
func (a *Accent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("accent: %w", err)
	}
	parsed, _ := ParseAccent(s)
	*a = parsed
	return nil
}

// Anchor names an attachment point on a node's boundary. AnchorAuto lets
// the renderer choose a default pair from the nodes' relative positions.
type Anchor int

const (
	AnchorAuto Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// String returns the wire name of the anchor, or "" for AnchorAuto.
func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	default:
		return ""
	}
}

// ParseAnchor maps a wire name to an Anchor.
func ParseAnchor(s string) (Anchor, bool) {
	switch s {
	case "":
		return AnchorAuto, true
	case "top":
		return AnchorTop, true
	case "bottom":
		return AnchorBottom, true
	case "left":
		return AnchorLeft, true
	case "right":
		return AnchorRight, true
	default:
		return AnchorAuto, false
	}
}

// MarshalJSON encodes the anchor as its wire name.
func (a Anchor) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a wire name, tolerating unknown values.
func (a *Anchor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("anchor: %w", err)
	}
	parsed, _ := ParseAnchor(s)
	*a = parsed
	return nil
}

// Node is a single step in the workflow graph.
type Node struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Label       string `json:"label"`
	Position    Point  `json:"position"`
	Editable    bool   `json:"editable"`
	Highlighted bool   `json:"highlighted,omitempty"`
	Color       Accent `json:"color,omitempty"`
}

// Node footprints in canvas units. Circle and square nodes are drawn on a
// compact square footprint, the rest on the standard card.
const (
	NodeWidth        = 160.0
	NodeHeight       = 64.0
	CompactNodeWidth = 90.0
)

// Size returns the node's width and height in canvas units.
func (n Node) Size() (w, h float64) {
	switch n.Kind {
	case KindCircle, KindSquare:
		return CompactNodeWidth, CompactNodeWidth
	default:
		return NodeWidth, NodeHeight
	}
}

// Bounds returns the node's rectangle in canvas space. Position is the
// top-left corner.
func (n Node) Bounds() Rect {
	w, h := n.Size()
	return Rect{
		Min: n.Position,
		Max: Point{X: n.Position.X + w, Y: n.Position.Y + h},
	}
}

// Center returns the center point of the node.
func (n Node) Center() Point {
	return n.Bounds().Center()
}

// Contains reports whether a canvas point falls inside the node body.
func (n Node) Contains(p Point) bool {
	return n.Bounds().Contains(p)
}

// AnchorPoint returns the canvas position of one of the node's boundary
// anchors. AnchorAuto resolves to the bottom anchor.
func (n Node) AnchorPoint(a Anchor) Point {
	b := n.Bounds()
	c := b.Center()
	switch a {
	case AnchorTop:
		return Point{X: c.X, Y: b.Min.Y}
	case AnchorLeft:
		return Point{X: b.Min.X, Y: c.Y}
	case AnchorRight:
		return Point{X: b.Max.X, Y: c.Y}
	default:
		return Point{X: c.X, Y: b.Max.Y}
	}
}

// Anchors lists the four boundary anchors in a fixed order.
func Anchors() []Anchor {
	return []Anchor{AnchorTop, AnchorBottom, AnchorLeft, AnchorRight}
}

// Edge is a directed connection between two nodes. Duplicate parallel edges
// and self-loops are permitted.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceAnchor Anchor `json:"sourceAnchor,omitempty"`
	TargetAnchor Anchor `json:"targetAnchor,omitempty"`
}

// IsSelfLoop reports whether the edge connects a node to itself.
func (e Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}
