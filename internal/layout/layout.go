package layout

import (
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/store"
)

// Viewport describes the desktop surface windows are laid out on.
type Viewport struct {
	Width            int `json:"width"`
	Height           int `json:"height"`
	MenuBarHeight    int `json:"menu_bar_height"`
	DockHeight       int `json:"dock_height"`
	MobileBreakpoint int `json:"mobile_breakpoint"`
	MobileMargin     int `json:"mobile_margin"`
}

// DefaultViewport returns a 1440x900 desktop with the stock chrome sizes.
func DefaultViewport() Viewport {
	return Viewport{
		Width:            1440,
		Height:           900,
		MenuBarHeight:    36,
		DockHeight:       60,
		MobileBreakpoint: 768,
		MobileMargin:     10,
	}
}

// Mobile reports whether the viewport is below the narrow breakpoint.
func (v Viewport) Mobile() bool {
	return v.Width < v.MobileBreakpoint
}

// Workspace is the area between the menu bar and the dock. Maximized
// windows and the top snap zone fill it.
func (v Viewport) Workspace() geom.Rect {
	return geom.Rect{
		X:      0,
		Y:      v.MenuBarHeight,
		Width:  v.Width,
		Height: max(0, v.Height-v.MenuBarHeight-v.DockHeight),
	}
}

// Placement holds the knobs for initial window geometry.
type Placement struct {
	DefaultSize     geom.Size
	MinSize         geom.Size
	CascadeOrigin   geom.Point
	CascadeStep     int
	OffscreenMargin int
}

// DefaultPlacement returns the stock placement values.
func DefaultPlacement() Placement {
	return Placement{
		DefaultSize:     geom.Size{Width: 800, Height: 600},
		MinSize:         geom.Size{Width: 320, Height: 200},
		CascadeOrigin:   geom.Point{X: 100, Y: 100},
		CascadeStep:     30,
		OffscreenMargin: 100,
	}
}

// InitialGeometry computes where a new window of type t opens.
//
// active is the focused, non-minimized window to cascade from, or nil.
// openCount is the number of windows already open.
func InitialGeometry(reg *content.Registry, t content.Type, vp Viewport, p Placement, active *geom.Rect, openCount int) geom.Rect {
	if vp.Mobile() {
		m := vp.MobileMargin
		ws := vp.Workspace()
		return geom.Rect{
			X:      m,
			Y:      ws.Y + m,
			Width:  max(1, vp.Width-2*m),
			Height: max(1, ws.Height-2*m),
		}
	}

	size := p.DefaultSize
	if reg != nil {
		if s, ok := reg.SizeFor(t); ok {
			size = s
		}
	}

	return geom.RectFrom(cascadePosition(vp, p, active, openCount), size)
}

func cascadePosition(vp Viewport, p Placement, active *geom.Rect, openCount int) geom.Point {
	if active != nil {
		next := geom.Point{X: active.X + p.CascadeStep, Y: active.Y + p.CascadeStep}
		if next.X > vp.Width-p.OffscreenMargin || next.Y > vp.Height-p.OffscreenMargin {
			return p.CascadeOrigin
		}
		return next
	}

	limit := min(vp.Width, vp.Height) / 2
	off := geom.CascadeOffset(openCount, p.CascadeStep, limit)
	return geom.Point{X: p.CascadeOrigin.X + off, Y: p.CascadeOrigin.Y + off}
}

// SnapTarget returns the snap rect for a pointer position. Edges are
// checked left, right, then top, so corners resolve deterministically.
func SnapTarget(pointer geom.Point, vp Viewport, threshold int) (geom.Rect, store.SnapEdge, bool) {
	ws := vp.Workspace()
	half := vp.Width / 2

	switch {
	case pointer.X < threshold:
		return geom.Rect{X: 0, Y: ws.Y, Width: half, Height: ws.Height}, store.SnapLeft, true
	case pointer.X > vp.Width-threshold:
		return geom.Rect{X: half, Y: ws.Y, Width: vp.Width - half, Height: ws.Height}, store.SnapRight, true
	case pointer.Y < vp.MenuBarHeight+threshold:
		return ws, store.SnapTop, true
	}
	return geom.Rect{}, store.SnapNone, false
}

// EdgeRect returns the rect for an edge without a pointer, used when the
// viewport changes under a snapped window.
func EdgeRect(edge store.SnapEdge, vp Viewport) geom.Rect {
	ws := vp.Workspace()
	half := vp.Width / 2
	switch edge {
	case store.SnapLeft:
		return geom.Rect{X: 0, Y: ws.Y, Width: half, Height: ws.Height}
	case store.SnapRight:
		return geom.Rect{X: half, Y: ws.Y, Width: vp.Width - half, Height: ws.Height}
	default:
		return ws
	}
}

// Contain clamps r so at least minVisible pixels stay on screen
// horizontally and the title bar stays below the menu bar and above the
// bottom edge. It reports whether r had to move.
func Contain(r geom.Rect, vp Viewport, minVisible int) (geom.Rect, bool) {
	out := r
	out.X = geom.Clamp(r.X, minVisible-r.Width, vp.Width-minVisible)
	out.Y = geom.Clamp(r.Y, vp.MenuBarHeight, vp.Height-minVisible)
	return out, out != r
}
