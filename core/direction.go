package core

import "math"

// Direction is one of the eight compass orientations, or none
type Direction uint8

const (
	NoDirection Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Compass lists the eight orientations clockwise from north
var Compass = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionNames = [...]string{"none", "north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// ParseDirection is the inverse of String
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return NoDirection, false
}

// Valid reports whether d is one of the eight compass orientations
func (d Direction) Valid() bool {
	return d >= North && d <= NorthWest
}

// Diagonal reports whether d combines a vertical and a horizontal component
func (d Direction) Diagonal() bool {
	return d == NorthEast || d == SouthEast || d == SouthWest || d == NorthWest
}

// Delta returns the unit pixel step, diagonals move one pixel on both axes
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	}
	return 0, 0
}

// Components splits d into its vertical and horizontal cardinals, NoDirection where absent
func (d Direction) Components() (vertical, horizontal Direction) {
	dx, dy := d.Delta()
	switch {
	case dy < 0:
		vertical = North
	case dy > 0:
		vertical = South
	}
	switch {
	case dx < 0:
		horizontal = West
	case dx > 0:
		horizontal = East
	}
	return vertical, horizontal
}

// Opposite returns the reverse orientation
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return NoDirection
	}
	return d.Rotate(4)
}

// Rotate turns d clockwise by steps eighths of a turn, negative steps turn counter-clockwise
func (d Direction) Rotate(steps int) Direction {
	if !d.Valid() {
		return NoDirection
	}
	i := (int(d-North) + steps) % 8
	if i < 0 {
		i += 8
	}
	return Compass[i]
}

// DirectionTo quantizes the vector (dx, dy) into the nearest compass orientation
func DirectionTo(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return NoDirection
	}
	// Angle clockwise from north in screen space
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	sector := int(math.Floor(angle/(math.Pi/4)+0.5)) % 8
	return Compass[sector]
}
