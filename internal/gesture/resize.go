package gesture

import (
	"fmt"
	"strings"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Handle is one of the eight resize affordances.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

var handleNames = map[Handle]string{
	HandleN:  "n",
	HandleS:  "s",
	HandleE:  "e",
	HandleW:  "w",
	HandleNE: "ne",
	HandleNW: "nw",
	HandleSE: "se",
	HandleSW: "sw",
}

func (h Handle) String() string {
	if name, ok := handleNames[h]; ok {
		return name
	}
	return "none"
}

// ParseHandle parses a handle name such as "nw".
func ParseHandle(s string) (Handle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for h, name := range handleNames {
		if name == s {
			return h, nil
		}
	}
	return HandleNone, fmt.Errorf("unknown resize handle %q (want n, s, e, w, ne, nw, se or sw)", s)
}

// Handles returns all eight handles.
func Handles() []Handle {
	return []Handle{HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW}
}

func (h Handle) north() bool { return h == HandleN || h == HandleNE || h == HandleNW }
func (h Handle) south() bool { return h == HandleS || h == HandleSE || h == HandleSW }
func (h Handle) east() bool  { return h == HandleE || h == HandleNE || h == HandleSE }
func (h Handle) west() bool  { return h == HandleW || h == HandleNW || h == HandleSW }

// ApplyResize returns start resized by dragging handle h by delta.
//
// North and west handles move the top/left edge, so y/x change while the
// opposite edge stays put. Sizes below minSize are clamped, and on the
// clamped axis the moving edge stops at the floor instead of sliding on.
func ApplyResize(h Handle, start geom.Rect, delta geom.Point, minSize geom.Size) geom.Rect {
	r := start

	switch {
	case h.east():
		r.Width = max(start.Width+delta.X, minSize.Width)
	case h.west():
		r.Width = max(start.Width-delta.X, minSize.Width)
		r.X = start.Right() - r.Width
	}

	switch {
	case h.south():
		r.Height = max(start.Height+delta.Y, minSize.Height)
	case h.north():
		r.Height = max(start.Height-delta.Y, minSize.Height)
		r.Y = start.Bottom() - r.Height
	}

	return r
}

// ClampSize raises size to at least minSize on each axis.
func ClampSize(size, minSize geom.Size) geom.Size {
	return geom.Size{
		Width:  max(size.Width, minSize.Width),
		Height: max(size.Height, minSize.Height),
	}
}
