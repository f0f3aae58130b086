package vmath

import "github.com/siana-blue/poufalouf/core"

// Collides reports whether rectangle a, travelling in dir, runs into rectangle b
//
// For a cardinal direction the leading edge of a must lie within b along the travel
// axis, or b's near edge within a, and the two rectangles must strictly overlap on the
// perpendicular axis, so sliding along a wall is not a hit. A rectangle already
// inside b on the travel axis therefore collides. A diagonal is the union of its two
// cardinals plus exact contact of the leading corner. NoDirection is a plain overlap
// test with shared borders counting.
//
// The predicate is symmetric under mirroring: Collides(a, b, d) equals
// Collides(b, a, d.Opposite()). Disabled rectangles never collide.
func Collides(a, b core.Rect, dir core.Direction) bool {
	if a.Negative() || b.Negative() {
		return false
	}

	switch dir {
	case core.East:
		return ahead(a.X, a.Right(), b.X, b.Right()) && strictOverlap(a.Y, a.Bottom(), b.Y, b.Bottom())
	case core.West:
		return ahead(b.X, b.Right(), a.X, a.Right()) && strictOverlap(a.Y, a.Bottom(), b.Y, b.Bottom())
	case core.South:
		return ahead(a.Y, a.Bottom(), b.Y, b.Bottom()) && strictOverlap(a.X, a.Right(), b.X, b.Right())
	case core.North:
		return ahead(b.Y, b.Bottom(), a.Y, a.Bottom()) && strictOverlap(a.X, a.Right(), b.X, b.Right())
	case core.NorthEast, core.SouthEast, core.SouthWest, core.NorthWest:
		v, h := dir.Components()
		return Collides(a, b, v) || Collides(a, b, h) || cornerAhead(a, b, v, h)
	}

	return Overlaps(a, b)
}

// Overlaps is the inclusive overlap test: touching borders count
func Overlaps(a, b core.Rect) bool {
	return a.IsInside(b)
}

// ahead reports whether the interval [a0,a1] moving toward +inf has reached [b0,b1]:
// a's leading edge lies within b, or b starts within a
func ahead(a0, a1, b0, b1 float64) bool {
	return (b0 <= a1 && a1 <= b1) || (a0 <= b0 && b0 <= a1)
}

// cornerAhead reports a reached on both travel axes of a diagonal, which with no strict
// overlap on either axis is a leading corner touching b
func cornerAhead(a, b core.Rect, v, h core.Direction) bool {
	var onX, onY bool
	if h == core.East {
		onX = ahead(a.X, a.Right(), b.X, b.Right())
	} else {
		onX = ahead(b.X, b.Right(), a.X, a.Right())
	}
	if v == core.South {
		onY = ahead(a.Y, a.Bottom(), b.Y, b.Bottom())
	} else {
		onY = ahead(b.Y, b.Bottom(), a.Y, a.Bottom())
	}
	return onX && onY
}

func strictOverlap(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && b0 < a1
}

// ReachesBounds reports whether r, travelling in dir, is at or beyond the edge of bounds
// A diagonal reports either component edge, NoDirection reports r already sticking out
func ReachesBounds(r, bounds core.Rect, dir core.Direction) bool {
	if r.Negative() {
		return false
	}

	switch dir {
	case core.East:
		return r.Right() >= bounds.Right()
	case core.West:
		return r.X <= bounds.X
	case core.South:
		return r.Bottom() >= bounds.Bottom()
	case core.North:
		return r.Y <= bounds.Y
	case core.NorthEast, core.SouthEast, core.SouthWest, core.NorthWest:
		v, h := dir.Components()
		return ReachesBounds(r, bounds, v) || ReachesBounds(r, bounds, h)
	}

	return r.X < bounds.X || r.Y < bounds.Y || r.Right() > bounds.Right() || r.Bottom() > bounds.Bottom()
}

// Intersects is the strict overlap test: rectangles sharing only a border do not intersect
func Intersects(a, b core.Rect) bool {
	if a.Negative() || b.Negative() {
		return false
	}
	return strictOverlap(a.X, a.Right(), b.X, b.Right()) && strictOverlap(a.Y, a.Bottom(), b.Y, b.Bottom())
}
