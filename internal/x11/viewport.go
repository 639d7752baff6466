package x11

import (
	"fmt"
	"sync"

	"github.com/1broseidon/deskwm/internal/geom"
)

// ViewportProbe reads the usable desktop size from a running X display.
// It keeps one connection open and is safe for concurrent use.
type ViewportProbe struct {
	display string

	mu   sync.Mutex
	conn *Connection
}

func NewViewportProbe(display string) *ViewportProbe {
	return &ViewportProbe{display: display}
}

// Size returns the size of the chosen monitor clipped to the work area.
// Without RandR it falls back to the root window.
func (p *ViewportProbe) Size() (geom.Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := NewConnection(p.display)
		if err != nil {
			return geom.Size{}, fmt.Errorf("failed to connect to X display %q: %w", p.display, err)
		}
		p.conn = conn
	}

	area, err := p.usableArea()
	if err != nil {
		// Drop the connection so the next poll reconnects.
		p.conn.Close()
		p.conn = nil
		return geom.Size{}, err
	}
	return area.Size(), nil
}

func (p *ViewportProbe) usableArea() (geom.Rect, error) {
	var bounds geom.Rect
	monitors, err := p.conn.GetMonitors()
	if err == nil {
		var pointer *geom.Point
		if pt, err := p.conn.Pointer(); err == nil {
			pointer = &pt
		}
		if m, ok := chooseMonitor(monitors, pointer); ok {
			bounds = m.Bounds
		}
	}
	if bounds.Empty() {
		root, err := p.conn.RootBounds()
		if err != nil {
			return geom.Rect{}, err
		}
		bounds = root
	}

	if wa, err := p.conn.WorkArea(); err == nil {
		if clipped, ok := intersect(bounds, wa); ok {
			bounds = clipped
		}
	}
	return bounds, nil
}

// Close releases the X connection.
func (p *ViewportProbe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
