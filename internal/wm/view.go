package wm

import (
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/store"
)

// WindowView is a read-only copy of one window for render surfaces.
type WindowView struct {
	ID        string       `json:"id"`
	ItemID    string       `json:"item_id"`
	Title     string       `json:"title"`
	Type      content.Type `json:"type"`
	Renderer  string       `json:"renderer"`
	Minimized bool         `json:"is_minimized"`
	Maximized bool         `json:"is_maximized"`
	Snapped   bool         `json:"is_snapped"`
	SnapEdge  string       `json:"snap_edge,omitempty"`
	ZIndex    int          `json:"z_index"`
	// Rect is the resting geometry as drawn.
	Rect        geom.Rect  `json:"rect"`
	PreSnapRect *geom.Rect `json:"pre_snap_rect,omitempty"`
	OriginRect  *geom.Rect `json:"origin_rect,omitempty"`
	Phase       anim.Phase `json:"phase"`
	Active      bool       `json:"active"`
	Frame       anim.Frame `json:"frame"`
}

// Desktop is a consistent snapshot of the whole window manager.
type Desktop struct {
	Viewport layout.Viewport `json:"viewport"`
	ActiveID string          `json:"active_id"`
	Windows  []WindowView    `json:"windows"`
	Gesture  string          `json:"gesture"`
	Preview  *SnapPreview    `json:"snap_preview,omitempty"`
}

// Snapshot returns every window in insertion order.
func (m *Manager) Snapshot() Desktop {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	d := Desktop{
		Viewport: m.settings.Viewport,
		ActiveID: m.store.Active(),
		Windows:  make([]WindowView, 0, m.store.Len()),
		Gesture:  m.gestures.Kind().String(),
	}
	for _, w := range m.store.All() {
		d.Windows = append(d.Windows, m.viewLocked(w, now))
	}
	if m.preview != nil {
		p := *m.preview
		d.Preview = &p
	}
	return d
}

// Window returns one window by id.
func (m *Manager) Window(id string) (WindowView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.store.Get(id)
	if !ok {
		return WindowView{}, false
	}
	return m.viewLocked(w, m.clock.Now()), true
}

// Frame returns the animated frame of a window right now.
func (m *Manager) Frame(id string) (anim.Frame, bool) {
	v, ok := m.Window(id)
	return v.Frame, ok
}

// ActiveID returns the focused window id, or "" when the desktop has focus.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Active()
}

// ListOpenItemIDs returns the item id of every window in insertion order.
func (m *Manager) ListOpenItemIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, m.store.Len())
	m.store.Each(func(w *store.Window) {
		ids = append(ids, w.ItemID)
	})
	return ids
}

// SnapPreview returns the snap zone under the current drag, if any.
func (m *Manager) SnapPreview() (SnapPreview, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.preview == nil {
		return SnapPreview{}, false
	}
	return *m.preview, true
}

// Viewport returns the current viewport metrics.
func (m *Manager) Viewport() layout.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Viewport
}

// Renderer returns the renderer name for a content type.
func (m *Manager) Renderer(t content.Type) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Registry.Renderer(t)
}

func (m *Manager) viewLocked(w store.Window, now time.Time) WindowView {
	rect := m.displayRect(w)
	v := WindowView{
		ID:         w.ID,
		ItemID:     w.ItemID,
		Title:      w.Title,
		Type:       w.Type,
		Renderer:   m.settings.Registry.Renderer(w.Type),
		Minimized:  w.Minimized,
		Maximized:  w.IsMaximized(),
		Snapped:    w.IsSnapped(),
		ZIndex:     w.ZIndex,
		Rect:       rect,
		OriginRect: w.Origin,
		Phase:      w.Phase,
		Active:     m.store.Active() == w.ID,
	}
	if pre, ok := w.PreSnapRect(); ok {
		v.PreSnapRect = &pre
		v.SnapEdge = w.Mode.Edge.String()
	}
	v.Frame = m.settings.Timing.Compute(anim.State{
		Phase:  w.Phase,
		Since:  w.PhaseSince,
		Target: rect,
		Origin: w.Origin,
		Layout: w.Layout,
	}, now)
	if w.Minimized {
		v.Frame.Opacity = 0
		v.Frame.Interactive = false
	}
	return v
}
