package geom

// Point is a position in desktop coordinates (logical pixels).
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// RectFrom builds a rect from a position and a size.
func RectFrom(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the centre point (rounded down).
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is within the rect, edges inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// WithPos returns a copy of r moved to p.
func (r Rect) WithPos(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// WithSize returns a copy of r resized to s, keeping the top-left corner.
func (r Rect) WithSize(s Size) Rect {
	r.Width, r.Height = s.Width, s.Height
	return r
}

// Lerp interpolates between r and to. t is not clamped so overshooting
// easing curves can carry a rect past its target.
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X:      lerp(r.X, to.X, t),
		Y:      lerp(r.Y, to.Y, t),
		Width:  lerp(r.Width, to.Width, t),
		Height: lerp(r.Height, to.Height, t),
	}
}

// CenterCollapsed returns a zero-sized rect at the centre of r.
func CenterCollapsed(r Rect) Rect {
	c := r.Center()
	return Rect{X: c.X, Y: c.Y}
}

func lerp(a, b int, t float64) int {
	v := float64(a) + float64(b-a)*t
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
