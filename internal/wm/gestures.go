package wm

import (
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/store"
)

// SnapPreview is the snap zone a drag would commit to if released now.
type SnapPreview struct {
	WindowID string    `json:"window_id"`
	Edge     string    `json:"edge"`
	Rect     geom.Rect `json:"rect"`
}

// BeginDrag starts dragging id with the pointer at pointer and focuses
// the window. It returns false if another gesture is active, the window
// is not interactive yet, or the window is maximized.
func (m *Manager) BeginDrag(id string, pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || !w.Phase.Interactive() || w.Minimized || w.IsMaximized() {
		m.logger.Debug("drag rejected", "window_id", id, "known", ok)
		return false
	}
	g := gesture.Gesture{Kind: gesture.KindDrag, WindowID: id, StartPointer: pointer, StartRect: w.Rect}
	if !m.gestures.Begin(g, m.clock.Now()) {
		m.logger.Debug("drag rejected: gesture in progress", "window_id", id)
		return false
	}
	m.store.Upsert(id, func(w *store.Window) { w.Layout = nil })
	m.focusLocked(id)
	return true
}

// DragTo moves the dragged window with the pointer and updates the snap
// preview. Shaking the window closes it and ends the drag.
func (m *Manager) DragTo(pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()

	if m.gestures.Kind() != gesture.KindDrag {
		return false
	}
	g, shaken, _ := m.gestures.Move(pointer, m.clock.Now())
	w, ok := m.store.Get(g.WindowID)
	if !ok {
		m.gestures.End()
		m.preview = nil
		return false
	}

	pos := g.DragRect().Pos()
	m.store.Upsert(g.WindowID, func(w *store.Window) { w.Rect = w.Rect.WithPos(pos) })
	m.preview = m.previewLocked(g.WindowID, pointer)

	if shaken {
		m.logger.Debug("window shaken", "window_id", g.WindowID)
		m.gestures.End()
		m.preview = nil
		m.emit(EventShaken, w)
		m.closeLocked(w)
	}
	return true
}

// EndDrag releases the drag at pointer and applies drop semantics. A
// release that completes a shake closes the window instead.
func (m *Manager) EndDrag(pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()

	if m.gestures.Kind() != gesture.KindDrag {
		return false
	}
	_, shaken, _ := m.gestures.Move(pointer, m.clock.Now())
	g, _ := m.gestures.End()
	m.preview = nil
	w, ok := m.store.Get(g.WindowID)
	if !ok {
		return false
	}

	pos := g.DragRect().Pos()
	m.store.Upsert(g.WindowID, func(w *store.Window) { w.Rect = w.Rect.WithPos(pos) })
	if shaken {
		m.logger.Debug("window shaken on release", "window_id", g.WindowID)
		m.emit(EventShaken, w)
		m.closeLocked(w)
		return true
	}
	m.releaseLocked(g.WindowID, pointer, g.StartRect)
	return true
}

// BeginResize starts resizing id from handle h. Maximized windows and
// windows that are still animating cannot be resized.
func (m *Manager) BeginResize(id string, h gesture.Handle, pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || h == gesture.HandleNone || !w.Phase.Interactive() || w.Minimized || w.IsMaximized() {
		m.logger.Debug("resize rejected", "window_id", id, "handle", h, "known", ok)
		return false
	}
	g := gesture.Gesture{Kind: gesture.KindResize, WindowID: id, Handle: h, StartPointer: pointer, StartRect: w.Rect}
	if !m.gestures.Begin(g, m.clock.Now()) {
		m.logger.Debug("resize rejected: gesture in progress", "window_id", id)
		return false
	}
	m.store.Upsert(id, func(w *store.Window) { w.Layout = nil })
	m.focusLocked(id)
	return true
}

// ResizeTo applies the resize for the current pointer position.
func (m *Manager) ResizeTo(pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()
	return m.resizeToLocked(pointer)
}

// EndResize applies the final pointer position and ends the resize.
func (m *Manager) EndResize(pointer geom.Point) bool {
	m.mu.Lock()
	defer m.unlock()
	if !m.resizeToLocked(pointer) {
		return false
	}
	m.gestures.End()
	return true
}

func (m *Manager) resizeToLocked(pointer geom.Point) bool {
	if m.gestures.Kind() != gesture.KindResize {
		return false
	}
	g, _, _ := m.gestures.Move(pointer, m.clock.Now())
	if !m.store.Has(g.WindowID) {
		m.gestures.End()
		return false
	}
	rect := gesture.ApplyResize(g.Handle, g.StartRect, g.Delta(), m.settings.Placement.MinSize)
	m.store.Upsert(g.WindowID, func(w *store.Window) { w.Rect = rect })
	return true
}

// CancelGesture aborts the active gesture and puts the window back where
// it started.
func (m *Manager) CancelGesture() bool {
	m.mu.Lock()
	defer m.unlock()

	g, ok := m.gestures.End()
	m.preview = nil
	if !ok {
		return false
	}
	m.store.Upsert(g.WindowID, func(w *store.Window) { w.Rect = g.StartRect })
	return true
}

func (m *Manager) previewLocked(id string, pointer geom.Point) *SnapPreview {
	if !m.settings.SnapEnabled {
		return nil
	}
	rect, edge, ok := layout.SnapTarget(pointer, m.settings.Viewport, m.settings.SnapThreshold)
	if !ok {
		return nil
	}
	return &SnapPreview{WindowID: id, Edge: edge.String(), Rect: rect}
}
