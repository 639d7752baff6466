package x11

import (
	"fmt"

	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	Bounds  geom.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(outputInfo.Name)
		}

		isPrimary := false
		for _, out := range crtcInfo.Outputs {
			if primary != 0 && out == primary {
				isPrimary = true
			}
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    name,
			Primary: isPrimary,
			Bounds: geom.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return monitors, nil
}

// RootBounds returns the geometry of the root window.
func (c *Connection) RootBounds() (geom.Rect, error) {
	g, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return geom.Rect{X: int(g.X), Y: int(g.Y), Width: int(g.Width), Height: int(g.Height)}, nil
}

// Pointer returns the pointer position relative to the root window.
func (c *Connection) Pointer() (geom.Point, error) {
	p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: int(p.RootX), Y: int(p.RootY)}, nil
}

// WorkArea returns the EWMH work area of the current desktop, which
// excludes panels and docks.
func (c *Connection) WorkArea() (geom.Rect, error) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil {
		return geom.Rect{}, err
	}
	if len(workArea) == 0 {
		return geom.Rect{}, fmt.Errorf("no work area")
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		idx = int(current)
	}
	wa := workArea[idx]
	return geom.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, nil
}

// chooseMonitor picks the primary monitor, then the one under the
// pointer, then the first.
func chooseMonitor(monitors []Monitor, pointer *geom.Point) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	if pointer != nil {
		for _, m := range monitors {
			if m.Bounds.Contains(*pointer) {
				return m, true
			}
		}
	}
	return monitors[0], true
}

// intersect returns the overlap of a and b.
func intersect(a, b geom.Rect) (geom.Rect, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.Right(), b.Right())
	y2 := min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}
