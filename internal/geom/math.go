package geom

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampFloat limits v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// SnapToGrid rounds v to the nearest multiple of grid. A grid <= 0 leaves v unchanged.
func SnapToGrid(v, grid int) int {
	if grid <= 0 {
		return v
	}
	if v < 0 {
		return -SnapToGrid(-v, grid)
	}
	return ((v + grid/2) / grid) * grid
}

// CascadeOffset returns the diagonal offset for the count-th window when
// cascading by step. The offset wraps back to zero once it would exceed
// limit, so windows never walk off the desktop.
func CascadeOffset(count, step, limit int) int {
	if count <= 0 || step <= 0 {
		return 0
	}
	if limit < step {
		return 0
	}
	// Offsets 0, step, ..., k*step where k*step <= limit.
	slots := limit/step + 1
	return (count % slots) * step
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
