package wm

import "time"

// EventKind names a window manager state change.
type EventKind string

const (
	EventOpened      EventKind = "opened"
	EventFocused     EventKind = "focused"
	EventMinimized   EventKind = "minimized"
	EventRestored    EventKind = "restored"
	EventMaximized   EventKind = "maximized"
	EventUnmaximized EventKind = "unmaximized"
	EventSnapped     EventKind = "snapped"
	EventUnsnapped   EventKind = "unsnapped"
	EventBounced     EventKind = "bounced"
	EventClosing     EventKind = "closing"
	EventClosed      EventKind = "closed"
	EventShaken      EventKind = "shaken"
)

// Event is delivered to subscribers after the change is committed.
type Event struct {
	Kind     EventKind `json:"kind"`
	WindowID string    `json:"window_id"`
	ItemID   string    `json:"item_id"`
	At       time.Time `json:"at"`
}

// Listener receives events in the order they happened. Listeners run
// outside the manager lock and may call back into the manager; events
// from such a call are delivered after the current batch.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextListener++
	id := m.nextListener
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: l})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, e := range m.listeners {
			if e.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}
