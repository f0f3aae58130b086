package component

import "github.com/siana-blue/poufalouf/core"

// BodyComponent is the spatial state every world object carries (pure data)
type BodyComponent struct {
	Kind string // Content kind, keys animation loading and rendering
	Name string

	// Position of the top-left corner in world pixels, size of the image footprint
	X, Y float64
	W, H int

	Orientation core.Direction

	// Planar velocity in pixels per update, negative moves against Orientation
	Speed int
	Accel int // Per-update decay of |Speed| toward zero

	// Vertical axis, orthogonal to the plane
	Height int
	VSpeed int

	Standby  bool // Autonomous behaviour suspended
	Flying   bool // Immune to liquid and void terrain
	Mobile   bool // Takes part in the activation sweep as a mover
	Finished bool // Removed at the end of the current tick

	// Update cadence: 0 updates every tick
	UpdateInterval int64 // Milliseconds
	Elapsed        int64 // Milliseconds accumulated since last update

	Zones [ZoneTypeCount]Zone
	Cells []core.Point // Grid cells currently holding this entity

	Anim Animator
}

// NewBody returns a body at (x, y) with an image zone covering its full size
func NewBody(kind string, x, y float64, w, h int) BodyComponent {
	b := BodyComponent{Kind: kind, Name: kind, X: x, Y: y, W: w, H: h}
	b.SetZone(ZoneImage, core.Rect{W: float64(w), H: float64(h)})
	return b
}

// SetZone defines zone t with a rectangle relative to the body
func (b *BodyComponent) SetZone(t ZoneType, offset core.Rect) {
	z := &b.Zones[t]
	z.Type = t
	z.Restore(offset, b.X, b.Y)
}

// FillZone defines zone t covering the full body footprint
func (b *BodyComponent) FillZone(t ZoneType) {
	b.SetZone(t, core.Rect{W: float64(b.W), H: float64(b.H)})
}

// Zone returns zone t, nil when the body never defined it
func (b *BodyComponent) Zone(t ZoneType) *Zone {
	if t >= ZoneTypeCount || !b.Zones[t].Defined {
		return nil
	}
	return &b.Zones[t]
}

// SyncZones recomputes every absolute zone from the current position
func (b *BodyComponent) SyncZones() {
	for i := range b.Zones {
		if b.Zones[i].Defined {
			b.Zones[i].Place(b.X, b.Y)
		}
	}
}

// Bounds returns the absolute image rectangle, or the raw footprint when no image zone exists
func (b *BodyComponent) Bounds() core.Rect {
	if z := b.Zone(ZoneImage); z != nil {
		return z.Abs
	}
	return core.Rect{X: b.X, Y: b.Y, W: float64(b.W), H: float64(b.H)}
}

// Decay moves Speed toward zero by Accel
func (b *BodyComponent) Decay() {
	if b.Accel <= 0 || b.Speed == 0 {
		return
	}
	if b.Speed > 0 {
		b.Speed -= b.Accel
		if b.Speed < 0 {
			b.Speed = 0
		}
		return
	}
	b.Speed += b.Accel
	if b.Speed > 0 {
		b.Speed = 0
	}
}

// Fall integrates the vertical axis, returns true on the update the body lands
func (b *BodyComponent) Fall(gravity int) bool {
	if b.Height == 0 && b.VSpeed <= 0 {
		b.VSpeed = 0
		return false
	}
	b.Height += b.VSpeed
	b.VSpeed -= gravity
	if b.Height <= 0 {
		b.Height = 0
		b.VSpeed = 0
		return true
	}
	return false
}

// Airborne reports a body above the ground plane
func (b *BodyComponent) Airborne() bool {
	return b.Height > 0
}
