package store

import (
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
)

// IDPrefix is prepended to an item id to form its window id.
const IDPrefix = "window-"

// WindowID returns the window id for a content item.
func WindowID(itemID string) string {
	return IDPrefix + itemID
}

// ModeKind discriminates the positional authority of a window.
type ModeKind int

const (
	ModeFree ModeKind = iota
	ModeMaximized
	ModeSnapped
)

func (k ModeKind) String() string {
	switch k {
	case ModeFree:
		return "free"
	case ModeMaximized:
		return "maximized"
	case ModeSnapped:
		return "snapped"
	default:
		return "unknown"
	}
}

// SnapEdge identifies which snap zone a window occupies.
type SnapEdge int

const (
	SnapNone SnapEdge = iota
	SnapLeft
	SnapRight
	SnapTop
)

func (e SnapEdge) String() string {
	switch e {
	case SnapLeft:
		return "left"
	case SnapRight:
		return "right"
	case SnapTop:
		return "top"
	default:
		return "none"
	}
}

// Mode is the layout mode of a window. Only ModeSnapped carries an edge
// and a pre-snap rect, so a window cannot be both maximized and snapped.
type Mode struct {
	Kind    ModeKind
	Edge    SnapEdge
	PreSnap geom.Rect
}

// Free returns the free-floating mode.
func Free() Mode { return Mode{Kind: ModeFree} }

// Maximized returns the maximized mode.
func Maximized() Mode { return Mode{Kind: ModeMaximized} }

// Snapped returns a snapped mode remembering where to restore to.
func Snapped(edge SnapEdge, preSnap geom.Rect) Mode {
	return Mode{Kind: ModeSnapped, Edge: edge, PreSnap: preSnap}
}

// Window is the authoritative record for one open window.
type Window struct {
	ID     string
	ItemID string
	Title  string
	Type   content.Type

	Minimized bool
	Mode      Mode

	ZIndex int

	// Rect is the current geometry. While maximized, the rendered frame
	// is the workspace rect and Rect keeps the restore geometry.
	Rect geom.Rect

	// Origin is the launching icon rect. Set once at creation.
	Origin *geom.Rect

	Phase      anim.Phase
	PhaseSince time.Time
	Layout     *anim.Transition
}

// IsMaximized reports whether the window is maximized.
func (w Window) IsMaximized() bool { return w.Mode.Kind == ModeMaximized }

// IsSnapped reports whether the window is snapped to an edge.
func (w Window) IsSnapped() bool { return w.Mode.Kind == ModeSnapped }

// PreSnapRect returns the saved rect while snapped.
func (w Window) PreSnapRect() (geom.Rect, bool) {
	if w.Mode.Kind != ModeSnapped {
		return geom.Rect{}, false
	}
	return w.Mode.PreSnap, true
}

// Closing reports whether the window is animating out.
func (w Window) Closing() bool { return w.Phase == anim.PhaseClosing }

// Focusable reports whether the window can receive focus.
func (w Window) Focusable() bool {
	return !w.Minimized && w.Phase != anim.PhaseClosing && w.Phase != anim.PhaseRemoved
}

func (w Window) clone() Window {
	if w.Origin != nil {
		o := *w.Origin
		w.Origin = &o
	}
	if w.Layout != nil {
		l := *w.Layout
		w.Layout = &l
	}
	return w
}
