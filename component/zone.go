package component

import (
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/vmath"
)

// ZoneType names the role of a rectangle bound to an entity
type ZoneType uint8

const (
	ZoneImage     ZoneType = iota // Visual footprint, drives cell membership and world bounds
	ZoneCollision                 // Blocks movement
	ZoneEffect                    // Triggers activation on contact
	ZoneDetection                 // Sensing range for autonomous behaviour
	ZoneTypeCount
)

var zoneTypeNames = [ZoneTypeCount]string{"image", "collision", "effect", "detection"}

func (t ZoneType) String() string {
	if t < ZoneTypeCount {
		return zoneTypeNames[t]
	}
	return "invalid"
}

// Zone is a typed rectangle relative to its entity's position
// A width and height of -1 marks a disabled zone that never collides
type Zone struct {
	Type    ZoneType
	Defined bool
	Offset  core.Rect // Relative to the entity position
	Abs     core.Rect // Absolute, recomputed whenever the entity moves
}

// Enabled reports a defined zone with a non-negative size
func (z *Zone) Enabled() bool {
	return z != nil && z.Defined && !z.Offset.Negative()
}

// Place recomputes the absolute rectangle for an entity at (x, y)
func (z *Zone) Place(x, y float64) {
	z.Abs = core.Rect{X: x + z.Offset.X, Y: y + z.Offset.Y, W: z.Offset.W, H: z.Offset.H}
}

// Disable sets the zone size to -1x-1, keeping its offset origin
func (z *Zone) Disable() {
	z.Offset.W, z.Offset.H = -1, -1
	z.Abs.W, z.Abs.H = -1, -1
}

// Restore re-enables the zone with the given relative rectangle
func (z *Zone) Restore(offset core.Rect, x, y float64) {
	z.Defined = true
	z.Offset = offset
	z.Place(x, y)
}

// CollidesWith runs the directional test of z against o
// Absent or undefined zones never collide
func (z *Zone) CollidesWith(o *Zone, dir core.Direction) bool {
	if z == nil || o == nil || !z.Defined || !o.Defined {
		return false
	}
	return vmath.Collides(z.Abs, o.Abs, dir)
}
