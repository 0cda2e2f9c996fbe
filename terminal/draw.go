package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"sopflow/flow"
)

var kindColors = map[flow.Kind]tcell.Color{
	flow.KindStart:    tcell.ColorGreen,
	flow.KindProcess:  tcell.ColorBlue,
	flow.KindDecision: tcell.ColorYellow,
	flow.KindEnd:      tcell.ColorRed,
	flow.KindCircle:   tcell.ColorPurple,
	flow.KindSquare:   tcell.ColorGray,
}

var accentTerm = map[flow.Accent]tcell.Color{
	flow.AccentRed:    tcell.ColorRed,
	flow.AccentOrange: tcell.ColorOrange,
	flow.AccentYellow: tcell.ColorYellow,
	flow.AccentGreen:  tcell.ColorGreen,
	flow.AccentBlue:   tcell.ColorBlue,
	flow.AccentPurple: tcell.ColorPurple,
}

func (a *App) draw() {
	s := a.screen
	s.Clear()

	store := a.ed.Store()
	nodes := store.Nodes()
	byID := make(map[string]flow.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	for _, e := range store.Edges() {
		src, okS := byID[e.Source]
		dst, okT := byID[e.Target]
		if !okS || !okT {
			continue
		}
		a.drawEdge(src.Center(), dst.Center(), e.IsSelfLoop())
	}

	if from, to, ok := a.ed.PendingEdge(); ok {
		a.drawPending(from, to)
	}

	for _, n := range nodes {
		a.drawNode(n)
	}

	a.drawStatus()
	s.Show()
}

// toCell projects a canvas point to a terminal cell.
func (a *App) toCell(p flow.Point) (int, int) {
	sp := a.ed.Viewport().ToScreen(p)
	return int(sp.X / cellW), int(sp.Y / cellH)
}

func (a *App) drawNode(n flow.Node) {
	x0, y0 := a.toCell(n.Position)
	w, h := n.Size()
	zoom := a.ed.Viewport().Zoom()
	cw := int(w * zoom / cellW)
	ch := int(h * zoom / cellH)
	if cw < 4 {
		cw = 4
	}
	if ch < 2 {
		ch = 2
	}

	color := kindColors[n.Kind]
	if ac, ok := accentTerm[n.Color]; ok {
		color = ac
	}
	style := tcell.StyleDefault.Foreground(color)
	if n.Highlighted {
		style = style.Bold(true)
	}
	if a.ed.Store().IsSelected(n.ID) {
		style = style.Reverse(true)
	}

	a.drawBox(x0, y0, cw, ch, style, n.Kind == flow.KindDecision)

	label := n.Label
	if id, editing := a.ed.Editing(); editing && id == n.ID {
		label = a.ed.TextBuffer() + "▏"
	}
	maxLabel := cw - 2
	if maxLabel > 0 {
		runes := []rune(label)
		if len(runes) > maxLabel {
			runes = runes[:maxLabel]
		}
		a.putString(x0+1, y0+ch/2, style, string(runes))
	}
}

func (a *App) drawBox(x, y, w, h int, style tcell.Style, angled bool) {
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if angled {
		tl, tr, bl, br = '◇', '◇', '◇', '◇'
	}
	for i := 1; i < w; i++ {
		a.put(x+i, y, '─', style)
		a.put(x+i, y+h, '─', style)
	}
	for j := 1; j < h; j++ {
		a.put(x, y+j, '│', style)
		a.put(x+w, y+j, '│', style)
	}
	a.put(x, y, tl, style)
	a.put(x+w, y, tr, style)
	a.put(x, y+h, bl, style)
	a.put(x+w, y+h, br, style)
}

func (a *App) drawEdge(from, to flow.Point, selfLoop bool) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if selfLoop {
		style = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	}
	x0, y0 := a.toCell(from)
	x1, y1 := a.toCell(to)
	a.drawCellLine(x0, y0, x1, y1, '·', style)
	a.put(x1, y1, arrowRune(x1-x0, y1-y0), style)
}

func (a *App) drawPending(from, to flow.Point) {
	style := tcell.StyleDefault.Foreground(tcell.ColorAqua)
	x0, y0 := a.toCell(from)
	x1, y1 := a.toCell(to)
	a.drawCellLine(x0, y0, x1, y1, '*', style)
}

// drawCellLine is a plain Bresenham walk between two cells.
func (a *App) drawCellLine(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		a.put(x, y, r, style)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func arrowRune(dx, dy int) rune {
	if abs(dy) >= abs(dx) {
		if dy >= 0 {
			return '▼'
		}
		return '▲'
	}
	if dx >= 0 {
		return '▶'
	}
	return '◀'
}

func (a *App) drawStatus() {
	_, height := a.screen.Size()
	store := a.ed.Store()
	vp := a.ed.Viewport()

	line := fmt.Sprintf("[%s] nodes:%d edges:%d zoom:%.1f  m:mode a:add d:del h:hl x:export s:save q:quit",
		a.ed.Mode(), store.NodeCount(), store.EdgeCount(), vp.Zoom())
	if _, editing := a.ed.Editing(); editing {
		line = "editing label - Enter commits, Esc cancels"
	}
	if a.status != "" {
		line = a.status + "  |  " + line
	}
	a.putString(0, height-1, tcell.StyleDefault.Reverse(true), line)
}

func (a *App) put(x, y int, r rune, style tcell.Style) {
	w, h := a.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	a.screen.SetContent(x, y, r, nil, style)
}

func (a *App) putString(x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		a.put(x+i, y, r, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
