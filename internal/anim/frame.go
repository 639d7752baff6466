package anim

import (
	"time"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Timing holds the durations and curves of the window lifecycle.
type Timing struct {
	// PaintDelay is how long a new window stays closed before opening,
	// so the host can paint the collapsed state once.
	PaintDelay time.Duration
	Open       time.Duration
	Close      time.Duration
	// Layout is the duration of maximize, snap and bounce transitions.
	Layout time.Duration
	Pop    Curve
}

// DefaultTiming returns the stock lifecycle timing.
func DefaultTiming() Timing {
	return Timing{
		PaintDelay: 16 * time.Millisecond,
		Open:       450 * time.Millisecond,
		Close:      220 * time.Millisecond,
		Layout:     260 * time.Millisecond,
		Pop:        NewSpringCurve(8.0, 0.45),
	}
}

// Transition is a geometry-only animation between two rects.
type Transition struct {
	From     geom.Rect     `json:"from"`
	To       geom.Rect     `json:"to"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
}

// At returns the interpolated rect at now and whether the transition ended.
func (tr Transition) At(now time.Time) (geom.Rect, bool) {
	if tr.Duration <= 0 {
		return tr.To, true
	}
	elapsed := now.Sub(tr.Start)
	if elapsed >= tr.Duration {
		return tr.To, true
	}
	p := EaseInOut.At(float64(elapsed) / float64(tr.Duration))
	return tr.From.Lerp(tr.To, p), false
}

// Frame is what a render surface draws for one window at one instant.
type Frame struct {
	Rect        geom.Rect `json:"rect"`
	Opacity     float64   `json:"opacity"`
	Scale       float64   `json:"scale"`
	Interactive bool      `json:"interactive"`
	Phase       Phase     `json:"phase"`
}

// State is the animation input for one window.
type State struct {
	Phase Phase
	// Since is when the current phase began.
	Since time.Time
	// Target is the window's resting geometry.
	Target geom.Rect
	// Origin is the launch rect. Nil means collapse to the target centre.
	Origin *geom.Rect
	// Layout is an in-flight maximize/snap/bounce transition, if any.
	Layout *Transition
}

// OriginOrFallback returns the origin rect, or a collapsed rect at the
// centre of target when no origin is known.
func OriginOrFallback(origin *geom.Rect, target geom.Rect) geom.Rect {
	if origin == nil {
		return geom.CenterCollapsed(target)
	}
	return *origin
}

// Compute returns the frame for s at now.
func (tm Timing) Compute(s State, now time.Time) Frame {
	origin := OriginOrFallback(s.Origin, s.Target)
	elapsed := now.Sub(s.Since)

	switch s.Phase {
	case PhaseClosed:
		return Frame{Rect: origin, Phase: s.Phase}

	case PhaseOpening:
		p := tm.pop().At(progress(elapsed, tm.Open))
		return Frame{
			Rect:    origin.Lerp(s.Target, p),
			Opacity: geom.ClampFloat(p, 0, 1),
			Scale:   p,
			Phase:   s.Phase,
		}

	case PhaseOpen:
		rect := s.Target
		if s.Layout != nil {
			rect, _ = s.Layout.At(now)
		}
		return Frame{Rect: rect, Opacity: 1, Scale: 1, Interactive: true, Phase: s.Phase}

	case PhaseClosing:
		p := EaseIn.At(progress(elapsed, tm.Close))
		return Frame{
			Rect:    s.Target.Lerp(origin, p),
			Opacity: 1 - p,
			Scale:   1 - p,
			Phase:   s.Phase,
		}
	}
	return Frame{Rect: origin, Phase: s.Phase}
}

func (tm Timing) pop() Curve {
	if tm.Pop == nil {
		return EaseInOut
	}
	return tm.Pop
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return float64(elapsed) / float64(total)
}
