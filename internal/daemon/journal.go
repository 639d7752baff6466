package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/1broseidon/deskwm/internal/wm"
)

// EventJournal logs window manager events and keeps the most recent ones.
type EventJournal struct {
	logger   *slog.Logger
	capacity int

	mu     sync.Mutex
	recent []wm.Event
	counts map[wm.EventKind]int
}

// NewEventJournal creates a journal that keeps up to capacity events.
func NewEventJournal(logger *slog.Logger, capacity int) *EventJournal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if capacity <= 0 {
		capacity = 64
	}
	return &EventJournal{
		logger:   logger,
		capacity: capacity,
		counts:   make(map[wm.EventKind]int),
	}
}

// Attach subscribes the journal to m and returns the unsubscribe func.
func (j *EventJournal) Attach(m *wm.Manager) func() {
	return m.Subscribe(j.Record)
}

// Record logs ev. Focus changes are frequent, so they go to debug.
func (j *EventJournal) Record(ev wm.Event) {
	j.mu.Lock()
	j.counts[ev.Kind]++
	j.recent = append(j.recent, ev)
	if over := len(j.recent) - j.capacity; over > 0 {
		j.recent = append(j.recent[:0], j.recent[over:]...)
	}
	j.mu.Unlock()

	level := slog.LevelInfo
	if ev.Kind == wm.EventFocused {
		level = slog.LevelDebug
	}
	j.logger.Log(context.Background(), level, "window "+string(ev.Kind),
		"window_id", ev.WindowID,
		"item_id", ev.ItemID)
}

// Recent returns the retained events, oldest first.
func (j *EventJournal) Recent() []wm.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]wm.Event, len(j.recent))
	copy(out, j.recent)
	return out
}

// Count returns how many events of kind have been recorded.
func (j *EventJournal) Count(kind wm.EventKind) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.counts[kind]
}
