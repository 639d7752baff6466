// Package wm is the window manager facade. Manager is the only code that
// mutates window records; everything else reads snapshots or subscribes
// to events.
package wm

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/store"
	"github.com/1broseidon/deskwm/internal/zorder"
)

// Manager owns the window store and serializes every operation on it.
// Operations on unknown window ids are silent no-ops.
type Manager struct {
	mu       sync.Mutex
	settings Settings
	store    *store.Store
	gestures *gesture.Controller
	seq      *anim.Sequencer
	clock    anim.Clock
	logger   *slog.Logger
	preview  *SnapPreview

	queue        []Event
	draining     bool
	listeners    []listenerEntry
	nextListener int
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for animation timers.
func WithClock(c anim.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a manager with an empty desktop.
func New(settings Settings, opts ...Option) *Manager {
	m := &Manager{
		settings: normalizeSettings(settings),
		store:    store.New(),
		clock:    anim.SystemClock{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.seq = anim.NewSequencer(m.clock)
	m.gestures = gesture.NewController(m.shakeDetector())
	return m
}

func normalizeSettings(s Settings) Settings {
	if s.Registry == nil {
		s.Registry = content.NewRegistry(nil)
	}
	return s
}

func (m *Manager) shakeDetector() *gesture.ShakeDetector {
	if !m.settings.ShakeEnabled {
		return nil
	}
	return gesture.NewShakeDetector(m.settings.ShakeReversals, m.settings.ShakeWindow)
}

// unlock releases the lock and delivers queued events. Only one
// goroutine drains the queue at a time; events queued while it drains,
// including from listeners, are delivered by that goroutine in order.
func (m *Manager) unlock() {
	if m.draining || len(m.queue) == 0 {
		m.mu.Unlock()
		return
	}
	m.draining = true
	for len(m.queue) > 0 {
		ev := m.queue[0]
		m.queue = m.queue[1:]
		listeners := make([]Listener, 0, len(m.listeners))
		for _, e := range m.listeners {
			listeners = append(listeners, e.fn)
		}
		m.mu.Unlock()

		for _, l := range listeners {
			l(ev)
		}

		m.mu.Lock()
	}
	m.queue = nil
	m.draining = false
	m.mu.Unlock()
}

func (m *Manager) emit(kind EventKind, w store.Window) {
	m.queue = append(m.queue, Event{Kind: kind, WindowID: w.ID, ItemID: w.ItemID, At: m.clock.Now()})
}

// Open shows a window for item. An item that already has a window is
// restored and focused instead. origin is the launching icon rect and
// may be nil. It returns the window id.
func (m *Manager) Open(item content.Item, origin *geom.Rect) string {
	m.mu.Lock()
	defer m.unlock()

	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		m.logger.Debug("open ignored: empty item id")
		return ""
	}
	id := store.WindowID(item.ID)

	if w, ok := m.store.Get(id); ok {
		m.reopenLocked(w)
		return id
	}

	var cascadeFrom *geom.Rect
	if active, ok := m.store.Get(m.store.Active()); ok && active.Focusable() {
		cascadeFrom = &active.Rect
	}

	typ := content.NormalizeType(item.Type)
	title := item.Title
	if title == "" {
		title = item.ID
	}

	w := store.Window{
		ID:         id,
		ItemID:     item.ID,
		Title:      title,
		Type:       typ,
		Rect:       layout.InitialGeometry(m.settings.Registry, typ, m.settings.Viewport, m.settings.Placement, cascadeFrom, m.store.Len()),
		ZIndex:     zorder.NextZ(m.store),
		Phase:      anim.PhaseClosed,
		PhaseSince: m.clock.Now(),
	}
	if origin != nil {
		o := *origin
		w.Origin = &o
	}

	m.store.Insert(w)
	m.store.SetActive(id)
	m.emit(EventOpened, w)
	m.emit(EventFocused, w)
	m.logger.Debug("window opened", "window_id", id, "rect", w.Rect, "z", w.ZIndex)

	m.scheduleLocked(id, m.settings.Timing.PaintDelay, m.beginOpeningLocked)
	return id
}

func (m *Manager) reopenLocked(w store.Window) {
	if w.Phase == anim.PhaseClosing {
		m.seq.Cancel(w.ID)
		m.beginOpeningLocked(w.ID)
		m.emit(EventOpened, w)
	}
	if w.Minimized {
		m.store.Upsert(w.ID, func(w *store.Window) { w.Minimized = false })
		m.emit(EventRestored, w)
	}
	m.focusLocked(w.ID)
}

// Close starts the closing animation. The record is removed when it ends.
// Closing a window that is already closing does nothing.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok {
		m.logger.Debug("close ignored: unknown window", "window_id", id)
		return
	}
	if w.Closing() {
		return
	}
	m.closeLocked(w)
}

func (m *Manager) closeLocked(w store.Window) {
	m.seq.Cancel(w.ID)
	m.dropGestureLocked(w.ID)
	m.setPhaseLocked(w.ID, anim.PhaseClosing)
	m.emit(EventClosing, w)
	m.transferFocusLocked(w.ID)
	m.scheduleLocked(w.ID, m.settings.Timing.Close, m.finishClosingLocked)
}

// Minimize hides a window without touching its geometry or z.
func (m *Manager) Minimize(id string) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() || w.Minimized {
		m.logger.Debug("minimize ignored", "window_id", id, "known", ok)
		return
	}
	m.dropGestureLocked(id)
	m.store.Upsert(id, func(w *store.Window) { w.Minimized = true })
	m.emit(EventMinimized, w)
	m.transferFocusLocked(id)
}

// Restore un-minimizes a window and focuses it.
func (m *Manager) Restore(id string) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() {
		m.logger.Debug("restore ignored", "window_id", id, "known", ok)
		return
	}
	if w.Minimized {
		m.store.Upsert(id, func(w *store.Window) { w.Minimized = false })
		m.emit(EventRestored, w)
	}
	m.focusLocked(id)
}

// Maximize toggles the maximized state. Snapped windows are left alone.
func (m *Manager) Maximize(id string) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() {
		m.logger.Debug("maximize ignored", "window_id", id, "known", ok)
		return
	}
	if w.IsSnapped() {
		m.logger.Debug("maximize ignored: window is snapped", "window_id", id, "edge", w.Mode.Edge)
		return
	}

	m.dropGestureLocked(id)
	from := m.displayRect(w)
	kind := EventMaximized
	if w.IsMaximized() {
		w.Mode = store.Free()
		kind = EventUnmaximized
	} else {
		w.Mode = store.Maximized()
	}
	to := m.displayRect(w)
	m.store.Upsert(id, func(rec *store.Window) {
		rec.Mode = w.Mode
		rec.Minimized = false
		rec.Layout = m.transitionLocked(from, to)
	})
	m.emit(kind, w)
	m.focusLocked(id)
}

// Focus brings a window to the front and makes it active. Focusing a
// minimized window restores it.
func (m *Manager) Focus(id string) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() {
		m.logger.Debug("focus ignored", "window_id", id, "known", ok)
		return
	}
	if w.Minimized {
		m.store.Upsert(id, func(w *store.Window) { w.Minimized = false })
		m.emit(EventRestored, w)
	}
	m.focusLocked(id)
}

// Move positions a window at (x, y). With snap set it commits the drop:
// the window snaps if the pointer is in a snap zone, un-snaps if it was
// snapped, or bounces back if it was left mostly off screen. The pointer
// is the active drag's pointer, or (x, y) when there is no drag.
func (m *Manager) Move(id string, x, y int, snap bool) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() {
		m.logger.Debug("move ignored", "window_id", id, "known", ok)
		return
	}
	if w.IsMaximized() {
		m.logger.Debug("move ignored: window is maximized", "window_id", id)
		return
	}

	pos := geom.Point{X: x, Y: y}
	if !snap {
		m.store.Upsert(id, func(w *store.Window) {
			w.Rect = w.Rect.WithPos(pos)
			w.Layout = nil
		})
		return
	}

	pointer, start := pos, w.Rect
	if g, ok := m.gestures.ActiveFor(id); ok && g.Kind == gesture.KindDrag {
		pointer, start = g.LastPointer, g.StartRect
		m.gestures.End()
		m.preview = nil
	}
	m.store.Upsert(id, func(w *store.Window) { w.Rect = w.Rect.WithPos(pos) })
	m.releaseLocked(id, pointer, start)
}

// Resize sets a window's size, clamped to the minimum size.
func (m *Manager) Resize(id string, width, height int) {
	m.mu.Lock()
	defer m.unlock()

	w, ok := m.store.Get(id)
	if !ok || w.Closing() || w.IsMaximized() {
		m.logger.Debug("resize ignored", "window_id", id, "known", ok)
		return
	}
	size := gesture.ClampSize(geom.Size{Width: width, Height: height}, m.settings.Placement.MinSize)
	m.store.Upsert(id, func(w *store.Window) {
		w.Rect = w.Rect.WithSize(size)
		w.Layout = nil
	})
}

// SetViewport replaces the viewport metrics. Snapped windows follow their
// edge and free windows are pulled back on screen.
func (m *Manager) SetViewport(vp layout.Viewport) bool {
	m.mu.Lock()
	defer m.unlock()
	return m.setViewportLocked(vp)
}

// ResizeViewport changes only the viewport dimensions.
func (m *Manager) ResizeViewport(width, height int) bool {
	m.mu.Lock()
	defer m.unlock()
	vp := m.settings.Viewport
	vp.Width, vp.Height = width, height
	return m.setViewportLocked(vp)
}

func (m *Manager) setViewportLocked(vp layout.Viewport) bool {
	if vp.Width <= 0 || vp.Height <= 0 {
		m.logger.Debug("viewport ignored", "width", vp.Width, "height", vp.Height)
		return false
	}
	m.settings.Viewport = vp

	for _, w := range m.store.All() {
		switch {
		case w.IsSnapped():
			rect := layout.EdgeRect(w.Mode.Edge, vp)
			m.store.Upsert(w.ID, func(w *store.Window) { w.Rect = rect })
		case w.IsMaximized():
		default:
			if rect, moved := layout.Contain(w.Rect, vp, m.settings.MinVisible); moved {
				m.store.Upsert(w.ID, func(w *store.Window) { w.Rect = rect })
			}
		}
	}
	return true
}

// Apply swaps in new settings, keeping every open window. The viewport
// change is applied as with SetViewport; an invalid viewport keeps the
// current one.
func (m *Manager) Apply(settings Settings) {
	m.mu.Lock()
	defer m.unlock()

	vp := settings.Viewport
	settings.Viewport = m.settings.Viewport
	m.settings = normalizeSettings(settings)
	if m.gestures.Kind() == gesture.KindIdle {
		m.gestures.SetShake(m.shakeDetector())
	}
	m.setViewportLocked(vp)
}

// Shutdown cancels every pending animation timer.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.unlock()
	m.seq.CancelAll()
}

func (m *Manager) focusLocked(id string) {
	if zorder.BringToFront(m.store, id) {
		w, _ := m.store.Get(id)
		m.emit(EventFocused, w)
	}
}

// transferFocusLocked moves focus away from id if it was active.
func (m *Manager) transferFocusLocked(id string) {
	if m.store.Active() != id {
		return
	}
	next := zorder.TopVisible(m.store, id)
	m.store.SetActive(next)
	if w, ok := m.store.Get(next); ok {
		m.emit(EventFocused, w)
	}
}

func (m *Manager) setPhaseLocked(id string, p anim.Phase) {
	now := m.clock.Now()
	m.store.Upsert(id, func(w *store.Window) {
		if !w.Phase.CanTransition(p) {
			m.logger.Warn("unexpected phase transition", "window_id", id, "from", w.Phase, "to", p)
		}
		w.Phase = p
		w.PhaseSince = now
		w.Layout = nil
	})
}

func (m *Manager) scheduleLocked(id string, d time.Duration, step func(id string)) {
	m.seq.Schedule(id, d, func(token uint64) {
		m.mu.Lock()
		defer m.unlock()
		if !m.seq.Claim(id, token) || !m.store.Has(id) {
			return
		}
		step(id)
	})
}

func (m *Manager) beginOpeningLocked(id string) {
	m.setPhaseLocked(id, anim.PhaseOpening)
	m.scheduleLocked(id, m.settings.Timing.Open, m.finishOpeningLocked)
}

func (m *Manager) finishOpeningLocked(id string) {
	m.setPhaseLocked(id, anim.PhaseOpen)
}

func (m *Manager) finishClosingLocked(id string) {
	w, _ := m.store.Get(id)
	m.dropGestureLocked(id)
	m.store.Remove(id)
	m.emit(EventClosed, w)
	m.logger.Debug("window removed", "window_id", id)
}

func (m *Manager) dropGestureLocked(id string) {
	if _, ok := m.gestures.ActiveFor(id); ok {
		m.gestures.End()
		m.preview = nil
	}
}

// releaseLocked applies drop semantics for a window released with the
// pointer at pointer. start is the window rect before the drag began.
func (m *Manager) releaseLocked(id string, pointer geom.Point, start geom.Rect) {
	w, ok := m.store.Get(id)
	if !ok {
		return
	}
	vp := m.settings.Viewport
	from := w.Rect

	if m.settings.SnapEnabled {
		if target, edge, ok := layout.SnapTarget(pointer, vp, m.settings.SnapThreshold); ok {
			pre := start
			if saved, ok := w.PreSnapRect(); ok {
				pre = saved
			}
			m.store.Upsert(id, func(w *store.Window) {
				w.Rect = target
				w.Mode = store.Snapped(edge, pre)
				w.Layout = m.transitionLocked(from, target)
			})
			m.emit(EventSnapped, w)
			return
		}
	}

	rect := w.Rect
	if saved, ok := w.PreSnapRect(); ok {
		rect = rect.WithSize(saved.Size())
		m.emit(EventUnsnapped, w)
	}
	if contained, moved := layout.Contain(rect, vp, m.settings.MinVisible); moved {
		rect = contained
		m.emit(EventBounced, w)
	}
	m.store.Upsert(id, func(w *store.Window) {
		w.Rect = rect
		w.Mode = store.Free()
		if rect != from {
			w.Layout = m.transitionLocked(from, rect)
		}
	})
}

func (m *Manager) transitionLocked(from, to geom.Rect) *anim.Transition {
	if from == to {
		return nil
	}
	return &anim.Transition{
		From:     from,
		To:       to,
		Start:    m.clock.Now(),
		Duration: m.settings.Timing.Layout,
	}
}

// displayRect is where the window is drawn at rest.
func (m *Manager) displayRect(w store.Window) geom.Rect {
	if w.IsMaximized() {
		return m.settings.Viewport.Workspace()
	}
	return w.Rect
}
