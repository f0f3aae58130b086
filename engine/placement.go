package engine

import (
	"fmt"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/parameter"
	"github.com/siana-blue/poufalouf/vmath"
)

// Free reports whether r lies inside the world and intersects no collision or effect zone of a live entity
func (w *World) Free(r core.Rect) bool {
	if !w.grid.Bounds().Contains(r) {
		return false
	}
	free := true
	w.Query(r, func(_ core.Entity, obj Object) bool {
		for _, zt := range []component.ZoneType{component.ZoneCollision, component.ZoneEffect} {
			if z := obj.Body().Zone(zt); z.Enabled() && vmath.Intersects(r, z.Abs) {
				free = false
				return false
			}
		}
		return true
	})
	return free
}

// PlaceRandom spawns obj on a random cell whose terrain is safe and whose footprint is free
// Gives up after parameter.RandomPlacementAttempts tries with ErrPlacementExhausted
func (w *World) PlaceRandom(obj Object, rng *vmath.FastRand) (core.Entity, error) {
	if obj == nil || obj.Body() == nil {
		return core.NoEntity, fmt.Errorf("%w: nil object", ErrInvalidBody)
	}
	b := obj.Body()
	cs := w.grid.CellSize

	for attempt := 0; attempt < parameter.RandomPlacementAttempts; attempt++ {
		x, y := rng.Intn(w.grid.Width), rng.Intn(w.grid.Height)
		b.X, b.Y = float64(x*cs), float64(y*cs)
		b.SyncZones()

		footprint := b.Bounds()
		if !w.safeGround(footprint) || !w.Free(footprint) {
			continue
		}
		return w.Spawn(obj)
	}
	return core.NoEntity, fmt.Errorf("%w: %s after %d attempts", ErrPlacementExhausted, b.Kind, parameter.RandomPlacementAttempts)
}

// safeGround reports that no cell under r is liquid or void
func (w *World) safeGround(r core.Rect) bool {
	cells := w.grid.CellsIn(r)
	if len(cells) == 0 {
		return false
	}
	for _, p := range cells {
		if w.grid.At(p.X, p.Y).Terrain.Deadly() {
			return false
		}
	}
	return true
}
