package core

import "math"

// Entity is a stable arena id, issued monotonically from 1 and never reused
type Entity uint64

const (
	// NoEntity is the absence of an entity
	NoEntity Entity = 0

	// WorldEdge is reported by collision queries that hit the world boundary instead of another entity
	WorldEdge Entity = math.MaxUint64
)

// IsEntity reports whether e names an arena slot rather than one of the sentinels
func (e Entity) IsEntity() bool {
	return e != NoEntity && e != WorldEdge
}

// Point is an integer cell coordinate
type Point struct {
	X, Y int
}
