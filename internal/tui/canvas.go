package tui

import (
	"sort"
	"strings"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

type borderSet struct {
	h, v, tl, tr, bl, br rune
}

var (
	thinBorder  = borderSet{'─', '│', '┌', '┐', '└', '┘'}
	heavyBorder = borderSet{'━', '┃', '┏', '┓', '┗', '┛'}
)

// renderDesktop draws the visible windows of desk onto a width x height
// character canvas, bottom of the stack first so higher windows occlude
// lower ones. The active window gets a heavy border.
func renderDesktop(desk *wm.Desktop, width, height int) []string {
	if desk == nil || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	windows := make([]wm.WindowView, 0, len(desk.Windows))
	for _, w := range desk.Windows {
		if w.Minimized || w.Phase == anim.PhaseRemoved || w.Phase == anim.PhaseClosed {
			continue
		}
		windows = append(windows, w)
	}
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].ZIndex < windows[j].ZIndex })

	vw, vh := desk.Viewport.Width, desk.Viewport.Height
	if vw <= 0 || vh <= 0 {
		vw, vh = 1, 1
	}
	for _, w := range windows {
		border := thinBorder
		if w.Active {
			border = heavyBorder
		}
		drawWindow(canvas, w.Rect, w.Title, border, vw, vh)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawWindow(canvas [][]rune, rect geom.Rect, title string, b borderSet, vw, vh int) {
	canvasH := len(canvas)
	canvasW := len(canvas[0])
	innerW, innerH := canvasW-2, canvasH-2

	x1 := 1 + rect.X*innerW/vw
	y1 := 1 + rect.Y*innerH/vh
	x2 := (rect.X+rect.Width)*innerW/vw
	y2 := (rect.Y+rect.Height)*innerH/vh

	x1 = geom.Clamp(x1, 1, canvasW-2)
	y1 = geom.Clamp(y1, 1, canvasH-2)
	x2 = geom.Clamp(x2, 1, canvasW-2)
	y2 = geom.Clamp(y2, 1, canvasH-2)

	// Need at least 2x2 for a window
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			canvas[y][x] = ' '
		}
	}
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = b.h
		canvas[y2][x] = b.h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = b.v
		canvas[y][x2] = b.v
	}
	canvas[y1][x1] = b.tl
	canvas[y1][x2] = b.tr
	canvas[y2][x1] = b.bl
	canvas[y2][x2] = b.br

	label := []rune(title)
	if room := x2 - x1 - 1; len(label) > room {
		label = label[:room]
	}
	for i, r := range label {
		canvas[y1][x1+1+i] = r
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
