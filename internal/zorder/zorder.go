// Package zorder assigns stacking order and tracks focus.
package zorder

import "github.com/1broseidon/deskwm/internal/store"

// Floor reserves the low z band for desktop chrome.
const Floor = 10

// NextZ returns max(Floor, highest z ever held in s) + 1. Values of
// removed windows are never issued again.
func NextZ(s *store.Store) int {
	return max(Floor, s.MaxZ()) + 1
}

// BringToFront makes id active and gives it the next z value. Other
// windows keep their z. Unknown ids are ignored.
func BringToFront(s *store.Store, id string) bool {
	if !s.Has(id) {
		return false
	}
	z := NextZ(s)
	s.Upsert(id, func(w *store.Window) { w.ZIndex = z })
	s.SetActive(id)
	return true
}

// TopVisible returns the most recently focused focusable window other
// than exclude, or "" when none remain.
func TopVisible(s *store.Store, exclude string) string {
	best, bestZ := "", 0
	s.Each(func(w *store.Window) {
		if w.ID == exclude || !w.Focusable() {
			return
		}
		if best == "" || w.ZIndex > bestZ {
			best, bestZ = w.ID, w.ZIndex
		}
	})
	return best
}

// Stacked returns windows ordered bottom to top. Equal z values keep
// insertion order.
func Stacked(s *store.Store) []store.Window {
	out := s.All()
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ZIndex < out[j-1].ZIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
