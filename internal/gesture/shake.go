package gesture

import (
	"time"

	"github.com/1broseidon/deskwm/internal/geom"
)

// ShakeDetector counts horizontal direction reversals of a dragged window.
type ShakeDetector struct {
	Reversals int
	Window    time.Duration

	started bool
	lastX   int
	dir     int
	hits    []time.Time
}

// NewShakeDetector creates a detector that fires after reversals direction
// changes inside window.
func NewShakeDetector(reversals int, window time.Duration) *ShakeDetector {
	return &ShakeDetector{Reversals: reversals, Window: window}
}

// Observe records the window x position at time at and reports whether
// the shake threshold was reached.
func (d *ShakeDetector) Observe(x int, at time.Time) bool {
	if d.Reversals <= 0 {
		return false
	}
	if !d.started {
		d.started = true
		d.lastX = x
		return false
	}

	dir := geom.Sign(x - d.lastX)
	d.lastX = x
	if dir == 0 {
		return false
	}
	if d.dir == 0 || dir == d.dir {
		d.dir = dir
		return false
	}
	d.dir = dir

	// A pause longer than the window between reversals starts over.
	if n := len(d.hits); n > 0 && at.Sub(d.hits[n-1]) > d.Window {
		d.hits = d.hits[:0]
	}
	d.hits = append(d.hits, at)

	cutoff := at.Add(-d.Window)
	keep := d.hits[:0]
	for _, h := range d.hits {
		if !h.Before(cutoff) {
			keep = append(keep, h)
		}
	}
	d.hits = keep

	return len(d.hits) >= d.Reversals
}

// Count returns the reversals currently inside the window.
func (d *ShakeDetector) Count() int { return len(d.hits) }

// Reset forgets all motion.
func (d *ShakeDetector) Reset() {
	d.started = false
	d.lastX = 0
	d.dir = 0
	d.hits = d.hits[:0]
}
