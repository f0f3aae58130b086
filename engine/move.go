package engine

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/vmath"
)

// Colliding tests zone zt of id, travelling in dir, against the collision zones of every entity
// in the cells id occupies and their cardinal neighbours
//
// Self, excluded ids and finished entities are skipped. The first hit in cell-scan order is
// returned; with no hit, core.WorldEdge is returned when the image zone reaches the world
// boundary in dir. A missing or disabled image or zt zone never collides.
func (w *World) Colliding(id core.Entity, excluded []core.Entity, zt component.ZoneType, dir core.Direction) core.Entity {
	obj, ok := w.objects.Get(id)
	if !ok {
		return core.NoEntity
	}
	b := obj.Body()
	img := b.Zone(component.ZoneImage)
	z := b.Zone(zt)
	if !img.Enabled() || !z.Enabled() {
		return core.NoEntity
	}

	if other := w.firstCollision(id, w.grid.Neighborhood(b.Cells), excluded, func(o *component.Zone) bool {
		return z.CollidesWith(o, dir)
	}); other != core.NoEntity {
		return other
	}

	if vmath.ReachesBounds(img.Abs, w.grid.Bounds(), dir) {
		return core.WorldEdge
	}
	return core.NoEntity
}

// Move advances id one pixel at a time, up to steps pixels in dir
// Before every step the collision zone is tested; the first hit stops the move and is returned,
// so a mover never ends a step overlapping what it hit. Zones and cells are refreshed after
// every step. Diagonal steps move one pixel on both axes.
func (w *World) Move(id core.Entity, dir core.Direction, steps int, excluded ...core.Entity) core.Entity {
	obj, ok := w.objects.Get(id)
	if !ok || !dir.Valid() || steps <= 0 {
		return core.NoEntity
	}
	b := obj.Body()
	dx, dy := dir.Delta()

	for i := 0; i < steps; i++ {
		if hit := w.Colliding(id, excluded, component.ZoneCollision, dir); hit != core.NoEntity {
			return hit
		}
		if hit := w.stepBlocked(id, b, excluded, dx, dy); hit != core.NoEntity {
			return hit
		}
		b.X += float64(dx)
		b.Y += float64(dy)
		b.SyncZones()
		w.RefreshCells(id)
	}
	return core.NoEntity
}

// Advance moves id by its current speed along its orientation
// Negative speed moves against the orientation, used for knockback
func (w *World) Advance(id core.Entity, excluded ...core.Entity) core.Entity {
	b, ok := w.Body(id)
	if !ok || b.Speed == 0 || !b.Orientation.Valid() {
		return core.NoEntity
	}
	dir, steps := b.Orientation, b.Speed
	if steps < 0 {
		dir, steps = dir.Opposite(), -steps
	}
	return w.Move(id, dir, steps, excluded...)
}

// firstCollision scans cells for a live entity whose collision zone satisfies hit, skipping
// self and excluded ids
func (w *World) firstCollision(id core.Entity, cells []core.Point, excluded []core.Entity, hit func(o *component.Zone) bool) core.Entity {
	var seen []core.Entity
	for _, p := range cells {
		for _, other := range w.grid.At(p.X, p.Y).Occupants() {
			if other == id || containsEntity(excluded, other) || containsEntity(seen, other) {
				continue
			}
			seen = append(seen, other)

			ob, ok := w.objects.Get(other)
			if !ok || ob.Body().Finished {
				continue
			}
			if hit(ob.Body().Zone(component.ZoneCollision)) {
				return other
			}
		}
	}
	return core.NoEntity
}

// stepBlocked returns the entity the collision zone would newly penetrate after one step of
// (dx, dy); the cells under the stepped zone include diagonal neighbours the directional scan skips
func (w *World) stepBlocked(id core.Entity, b *component.BodyComponent, excluded []core.Entity, dx, dy int) core.Entity {
	z := b.Zone(component.ZoneCollision)
	if !z.Enabled() {
		return core.NoEntity
	}
	next := z.Abs.Translate(float64(dx), float64(dy))
	return w.firstCollision(id, w.grid.CellsIn(next), excluded, func(o *component.Zone) bool {
		if !o.Enabled() {
			return false
		}
		return vmath.Intersects(next, o.Abs) && !vmath.Intersects(z.Abs, o.Abs)
	})
}
