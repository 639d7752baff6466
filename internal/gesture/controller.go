package gesture

import (
	"time"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Kind is the type of pointer gesture in progress.
type Kind int

const (
	// KindIdle means no gesture is active
	KindIdle Kind = iota
	// KindDrag means a window is being moved
	KindDrag
	// KindResize means a window is being resized from a handle
	KindResize
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindDrag:
		return "dragging"
	case KindResize:
		return "resizing"
	default:
		return "unknown"
	}
}

// Gesture is the state captured for one drag or resize.
type Gesture struct {
	Kind         Kind
	WindowID     string
	Handle       Handle
	StartPointer geom.Point
	StartRect    geom.Rect
	LastPointer  geom.Point
}

// Delta returns the pointer movement since the gesture began.
func (g Gesture) Delta() geom.Point {
	return geom.Point{
		X: g.LastPointer.X - g.StartPointer.X,
		Y: g.LastPointer.Y - g.StartPointer.Y,
	}
}

// DragRect returns the start rect translated by the pointer delta.
func (g Gesture) DragRect() geom.Rect {
	d := g.Delta()
	r := g.StartRect
	r.X += d.X
	r.Y += d.Y
	return r
}

// Controller tracks the single active pointer gesture on the desktop.
// Starting a second gesture while one is active is ignored.
type Controller struct {
	active *Gesture
	shake  *ShakeDetector
}

// NewController creates an idle controller. shake may be nil to disable
// shake detection.
func NewController(shake *ShakeDetector) *Controller {
	return &Controller{shake: shake}
}

// SetShake replaces the shake detector.
func (c *Controller) SetShake(shake *ShakeDetector) {
	c.shake = shake
}

// Begin starts a gesture. It returns false if another gesture is active.
func (c *Controller) Begin(g Gesture, at time.Time) bool {
	if c.active != nil {
		return false
	}
	g.LastPointer = g.StartPointer
	c.active = &g
	if c.shake != nil {
		c.shake.Reset()
		if g.Kind == KindDrag {
			c.shake.Observe(g.StartRect.X, at)
		}
	}
	return true
}

// Active returns the current gesture.
func (c *Controller) Active() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	return *c.active, true
}

// ActiveFor returns the current gesture if it targets windowID.
func (c *Controller) ActiveFor(windowID string) (Gesture, bool) {
	g, ok := c.Active()
	if !ok || g.WindowID != windowID {
		return Gesture{}, false
	}
	return g, true
}

// Move records a pointer position. For drags it also feeds the shake
// detector and reports whether the window was shaken.
func (c *Controller) Move(pointer geom.Point, at time.Time) (g Gesture, shaken bool, ok bool) {
	if c.active == nil {
		return Gesture{}, false, false
	}
	c.active.LastPointer = pointer
	g = *c.active
	if g.Kind == KindDrag && c.shake != nil {
		shaken = c.shake.Observe(g.DragRect().X, at)
	}
	return g, shaken, true
}

// End finishes the active gesture and returns it.
func (c *Controller) End() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	g := *c.active
	c.active = nil
	if c.shake != nil {
		c.shake.Reset()
	}
	return g, true
}

// Kind returns the kind of the active gesture, or KindIdle.
func (c *Controller) Kind() Kind {
	if c.active == nil {
		return KindIdle
	}
	return c.active.Kind
}
