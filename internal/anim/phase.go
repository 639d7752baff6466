package anim

import "fmt"

// Phase is the visual lifecycle phase of a window.
type Phase int

const (
	// PhaseClosed is the initial phase: collapsed onto the origin rect, invisible.
	PhaseClosed Phase = iota
	// PhaseOpening animates from the origin rect toward the window's geometry.
	PhaseOpening
	// PhaseOpen means the window is fully visible and interactive.
	PhaseOpen
	// PhaseClosing animates back toward the origin rect.
	PhaseClosing
	// PhaseRemoved is terminal; the record no longer exists.
	PhaseRemoved
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Interactive reports whether pointer input reaches a window in this phase.
func (p Phase) Interactive() bool {
	return p == PhaseOpen
}

// Visible reports whether the window still occupies the desktop.
func (p Phase) Visible() bool {
	return p != PhaseRemoved
}

// CanTransition reports whether the lifecycle allows moving from p to next.
func (p Phase) CanTransition(next Phase) bool {
	switch p {
	case PhaseClosed:
		return next == PhaseOpening || next == PhaseClosing
	case PhaseOpening:
		return next == PhaseOpen || next == PhaseClosing
	case PhaseOpen:
		return next == PhaseClosing
	case PhaseClosing:
		// Reopening an item mid-close turns the animation around.
		return next == PhaseRemoved || next == PhaseOpening
	default:
		return false
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for candidate := PhaseClosed; candidate <= PhaseRemoved; candidate++ {
		if candidate.String() == string(b) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}
