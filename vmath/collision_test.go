package vmath

import (
	"testing"

	"github.com/siana-blue/poufalouf/core"
)

func rect(x, y, w, h float64) core.Rect {
	return core.Rect{X: x, Y: y, W: w, H: h}
}

func TestCollidesCardinal(t *testing.T) {
	mover := rect(0, 0, 32, 32)

	tests := []struct {
		name  string
		other core.Rect
		dir   core.Direction
		want  bool
	}{
		{"touching east", rect(32, 0, 32, 32), core.East, true},
		{"gap east", rect(33, 0, 32, 32), core.East, false},
		{"behind when moving east", rect(-32, 0, 32, 32), core.East, false},
		{"touching west", rect(-32, 0, 32, 32), core.West, true},
		{"touching south", rect(0, 32, 32, 32), core.South, true},
		{"touching north", rect(0, -32, 32, 32), core.North, true},
		{"north obstacle ignored moving south", rect(0, -32, 32, 32), core.South, false},
		{"sliding along wall", rect(32, 32, 32, 32), core.East, false},
		{"partial perpendicular overlap", rect(32, 31, 32, 32), core.East, true},
		{"overlapping on travel axis", rect(16, 0, 32, 32), core.East, true},
		{"inside obstacle moving east", rect(-8, -8, 64, 64), core.East, true},
		{"inside obstacle moving west", rect(-8, -8, 64, 64), core.West, true},
		{"leaving a trailing overlap", rect(-16, 0, 32, 32), core.East, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(mover, tt.other, tt.dir); got != tt.want {
				t.Errorf("Collides(%v, %v, %v) = %v, want %v", mover, tt.other, tt.dir, got, tt.want)
			}
		})
	}
}

func TestCollidesDiagonalIsUnionOfCardinals(t *testing.T) {
	mover := rect(0, 0, 32, 32)
	east := rect(32, 0, 32, 32)
	north := rect(0, -32, 32, 32)

	if !Collides(mover, east, core.NorthEast) {
		t.Error("northeast should hit an east neighbour")
	}
	if !Collides(mover, north, core.NorthEast) {
		t.Error("northeast should hit a north neighbour")
	}
	if Collides(mover, east, core.NorthWest) {
		t.Error("northwest should not hit an east neighbour")
	}
}

func TestCollidesDiagonalCornerContact(t *testing.T) {
	mover := rect(0, 0, 32, 32)

	if !Collides(mover, rect(32, 32, 32, 32), core.SouthEast) {
		t.Error("southeast should hit an obstacle touching its leading corner")
	}
	if !Collides(mover, rect(32, -32, 32, 32), core.NorthEast) {
		t.Error("northeast should hit an obstacle touching its leading corner")
	}
	if Collides(mover, rect(32, 32, 32, 32), core.NorthWest) {
		t.Error("northwest should not hit an obstacle at the trailing corner")
	}
	if Collides(mover, rect(33, 33, 32, 32), core.SouthEast) {
		t.Error("a gap at the corner is not a hit")
	}
}

func TestCollidesNoDirectionIsInclusiveOverlap(t *testing.T) {
	a := rect(0, 0, 10, 10)
	if !Collides(a, rect(10, 10, 5, 5), core.NoDirection) {
		t.Error("corner touch should overlap")
	}
	if Collides(a, rect(10.5, 0, 5, 5), core.NoDirection) {
		t.Error("disjoint rectangles should not overlap")
	}
	if !Collides(a, rect(2, 2, 3, 3), core.NoDirection) {
		t.Error("contained rectangle should overlap")
	}
}

func TestCollidesNegativeNeverCollides(t *testing.T) {
	a := rect(0, 0, 32, 32)
	disabled := rect(0, 0, -1, -1)
	dirs := append([]core.Direction{core.NoDirection}, core.Compass[:]...)
	for _, d := range dirs {
		if Collides(a, disabled, d) || Collides(disabled, a, d) {
			t.Errorf("disabled rectangle collided moving %v", d)
		}
	}
	if Collides(a, rect(0, 0, 32, -1), core.NoDirection) {
		t.Error("negative height should never collide")
	}
}

func TestCollidesSymmetry(t *testing.T) {
	rects := []core.Rect{
		rect(0, 0, 32, 32),
		rect(32, 0, 32, 32),
		rect(-32, 0, 32, 32),
		rect(0, 32, 32, 32),
		rect(16, 16, 32, 32),
		rect(31, -31, 8, 8),
		rect(0, 0, 0, 0),
		rect(5, 5, 4, 40),
		rect(-3, 20, 64, 2),
		rect(32, 32, 32, 32),
		rect(-8, -8, 64, 64),
	}
	dirs := append([]core.Direction{core.NoDirection}, core.Compass[:]...)
	for _, a := range rects {
		for _, b := range rects {
			for _, d := range dirs {
				forward := Collides(a, b, d)
				mirrored := Collides(b, a, d.Opposite())
				if d == core.NoDirection {
					mirrored = Collides(b, a, core.NoDirection)
				}
				if forward != mirrored {
					t.Errorf("asymmetric: Collides(%v,%v,%v)=%v but mirrored=%v", a, b, d, forward, mirrored)
				}
			}
		}
	}
}

func TestReachesBounds(t *testing.T) {
	world := rect(0, 0, 320, 320)

	tests := []struct {
		r    core.Rect
		dir  core.Direction
		want bool
	}{
		{rect(0, 100, 32, 32), core.West, true},
		{rect(1, 100, 32, 32), core.West, false},
		{rect(288, 100, 32, 32), core.East, true},
		{rect(100, 0, 32, 32), core.North, true},
		{rect(100, 288, 32, 32), core.South, true},
		{rect(100, 0, 32, 32), core.NorthEast, true},
		{rect(288, 100, 32, 32), core.SouthEast, true},
		{rect(100, 100, 32, 32), core.SouthWest, false},
		{rect(0, 0, 32, 32), core.NoDirection, false},
		{rect(-1, 0, 32, 32), core.NoDirection, true},
		{rect(0, 0, -1, -1), core.West, false},
	}
	for _, tt := range tests {
		if got := ReachesBounds(tt.r, world, tt.dir); got != tt.want {
			t.Errorf("ReachesBounds(%v, %v) = %v, want %v", tt.r, tt.dir, got, tt.want)
		}
	}
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		pos, size  float64
		start, end int
	}{
		{0, 32, 0, 1},
		{0, 33, 0, 2},
		{31, 2, 0, 2},
		{32, 32, 1, 2},
		{64, 0, 2, 3},
		{-1, 2, -1, 1},
	}
	for _, tt := range tests {
		s, e := CellSpan(tt.pos, tt.size, 32)
		if s != tt.start || e != tt.end {
			t.Errorf("CellSpan(%v, %v) = [%d,%d), want [%d,%d)", tt.pos, tt.size, s, e, tt.start, tt.end)
		}
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a, b := NewFastRand(42), NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed produced different sequences")
		}
	}
	if NewFastRand(0).Intn(10) < 0 {
		t.Error("zero seed must still produce values")
	}
}

func TestIntersectsIgnoresSharedBorders(t *testing.T) {
	a := rect(0, 0, 32, 32)
	if Intersects(a, rect(32, 0, 32, 32)) {
		t.Error("edge-adjacent rectangles should not intersect")
	}
	if !Intersects(a, rect(31, 0, 32, 32)) {
		t.Error("one pixel of overlap should intersect")
	}
}
