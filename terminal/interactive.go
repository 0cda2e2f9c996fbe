// Package terminal hosts the interactive editor in a tcell screen. Mouse
// events become pointer events for the interaction controller; the canvas
// is projected onto terminal cells for live editing, while image export
// always goes through the raster renderer.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"sopflow/editor"
	"sopflow/export"
	"sopflow/flow"
	"sopflow/seed"
)

// One terminal cell covers this many canvas units at zoom 1. Cells are
// roughly twice as tall as wide, so the projection is anisotropic.
const (
	cellW = 10.0
	cellH = 20.0
)

// doubleClickWindow is the longest gap between two clicks that still
// counts as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// App runs one editing session in the terminal.
type App struct {
	screen   tcell.Screen
	ed       *editor.Editor
	exporter *export.Exporter

	filename  string
	exportDir string

	mouseDown bool
	lastClick time.Time
	lastCell  [2]int
	status    string
}

// NewApp creates a terminal session over an editor and exporter.
func NewApp(ed *editor.Editor, exporter *export.Exporter, filename, exportDir string) *App {
	return &App{ed: ed, exporter: exporter, filename: filename, exportDir: exportDir}
}

// Run enters the event loop until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	a.screen = screen

	for {
		a.draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			a.handleMouse(ev)
		}
	}
}

// handleKey processes a key event. It returns true when the user quits.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if _, editing := a.ed.Editing(); editing {
		switch ev.Key() {
		case tcell.KeyEnter:
			a.ed.HandleTextKey('\r')
		case tcell.KeyEscape:
			a.ed.HandleTextKey(27)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			a.ed.HandleTextKey(127)
		case tcell.KeyRune:
			a.ed.HandleTextKey(ev.Rune())
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return ev.Key() == tcell.KeyCtrlC
	case tcell.KeyDelete:
		a.ed.DeleteSelection()
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'm':
		a.ed.ToggleMode()
	case 'a':
		a.ed.AddNode(flow.KindProcess)
	case 'D':
		a.ed.AddNode(flow.KindDecision)
	case 'd':
		a.ed.DeleteSelection()
	case 'h':
		a.ed.HighlightSelection()
	case '0', '1', '2', '3', '4', '5', '6':
		a.ed.ColorSelection(flow.Accent(ev.Rune() - '0'))
	case '+', '=':
		a.ed.ZoomIn()
	case '-':
		a.ed.ZoomOut()
	case 'f':
		vp := a.ed.Viewport()
		vp.SetFullscreen(!vp.Fullscreen())
	case 'x':
		a.exportPNG()
	case 's':
		a.save()
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	screenPt := flow.Point{X: float64(x) * cellW, Y: float64(y) * cellH}

	if btns := ev.Buttons(); btns&tcell.WheelUp != 0 {
		a.ed.ZoomIn()
		return
	} else if btns&tcell.WheelDown != 0 {
		a.ed.ZoomOut()
		return
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !a.mouseDown:
		a.mouseDown = true
		now := time.Now()
		if now.Sub(a.lastClick) < doubleClickWindow && a.lastCell == [2]int{x, y} {
			a.ed.DoubleClick(screenPt)
		} else {
			mod := editor.ModNone
			if ev.Modifiers()&(tcell.ModCtrl|tcell.ModShift) != 0 {
				mod = editor.ModToggle
			}
			a.ed.PointerDown(screenPt, mod)
		}
		a.lastClick = now
		a.lastCell = [2]int{x, y}
	case pressed && a.mouseDown:
		a.ed.PointerMove(screenPt)
	case !pressed && a.mouseDown:
		a.mouseDown = false
		a.ed.PointerUp(screenPt)
	}
}

func (a *App) exportPNG() {
	path, err := a.exporter.PNG(a.ed.Store(), a.ed.Viewport(), a.exportDir)
	if err != nil {
		a.status = fmt.Sprintf("export failed: %v (press x to retry)", err)
		return
	}
	a.status = "exported " + path
}

func (a *App) save() {
	if a.filename == "" {
		a.status = "no file to save to"
		return
	}
	if err := seed.SaveFile(a.filename, a.ed.Store()); err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.status = "saved " + a.filename
}
