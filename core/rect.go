package core

// Rect is an axis-aligned rectangle in world pixels, Y grows downward
// A rectangle with a negative width or height is disabled and never collides
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the east edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the south edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Negative reports a disabled rectangle
func (r Rect) Negative() bool { return r.W < 0 || r.H < 0 }

// Center returns the rectangle midpoint
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Translate returns r shifted by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether o lies entirely within r, borders included
func (r Rect) Contains(o Rect) bool {
	if r.Negative() || o.Negative() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// IsInside reports whether any part of r lies within o, touching borders included
func (r Rect) IsInside(o Rect) bool {
	if r.Negative() || o.Negative() {
		return false
	}
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// IsCompletelyInside reports whether r lies entirely within o
func (r Rect) IsCompletelyInside(o Rect) bool {
	return o.Contains(r)
}
