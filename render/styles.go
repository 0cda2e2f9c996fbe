package render

import (
	"image/color"

	"sopflow/flow"
)

// Shape selects the outline drawn for a node kind.
type Shape int

const (
	ShapeBox Shape = iota
	ShapePill
	ShapeDiamond
	ShapeEllipse
	ShapeSquare
)

// Style is the resolved visual treatment for one node.
type Style struct {
	Fill   color.RGBA
	Border color.RGBA
	Shape  Shape
}

var (
	colorCanvas    = color.RGBA{250, 250, 250, 255}
	colorEdge      = color.RGBA{120, 120, 120, 255}
	colorLabel     = color.RGBA{40, 40, 40, 255}
	colorHighlight = color.RGBA{255, 193, 7, 255}
	colorPending   = color.RGBA{33, 150, 243, 255}
)

var kindStyles = map[flow.Kind]Style{
	flow.KindStart:    {Fill: color.RGBA{232, 245, 233, 255}, Border: color.RGBA{46, 125, 50, 255}, Shape: ShapePill},
	flow.KindProcess:  {Fill: color.RGBA{227, 242, 253, 255}, Border: color.RGBA{21, 101, 192, 255}, Shape: ShapeBox},
	flow.KindDecision: {Fill: color.RGBA{255, 248, 225, 255}, Border: color.RGBA{249, 168, 37, 255}, Shape: ShapeDiamond},
	flow.KindEnd:      {Fill: color.RGBA{255, 235, 238, 255}, Border: color.RGBA{198, 40, 40, 255}, Shape: ShapePill},
	flow.KindCircle:   {Fill: color.RGBA{243, 229, 245, 255}, Border: color.RGBA{106, 27, 154, 255}, Shape: ShapeEllipse},
	flow.KindSquare:   {Fill: color.RGBA{236, 239, 241, 255}, Border: color.RGBA{69, 90, 100, 255}, Shape: ShapeSquare},
}

var accentColors = map[flow.Accent]color.RGBA{
	flow.AccentRed:    {229, 57, 53, 255},
	flow.AccentOrange: {251, 140, 0, 255},
	flow.AccentYellow: {253, 216, 53, 255},
	flow.AccentGreen:  {67, 160, 71, 255},
	flow.AccentBlue:   {30, 136, 229, 255},
	flow.AccentPurple: {142, 36, 170, 255},
}

// StyleFor resolves a node's visual style: kind defaults, with the border
// replaced by the accent color when one is set.
func StyleFor(n flow.Node) Style {
	s, ok := kindStyles[n.Kind]
	if !ok {
		s = kindStyles[flow.KindProcess]
	}
	if ac, ok := accentColors[n.Color]; ok {
		s.Border = ac
	}
	return s
}
