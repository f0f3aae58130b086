package engine

import (
	"errors"
	"fmt"

	"github.com/siana-blue/poufalouf/core"
)

// CheckInvariants verifies that grid membership mirrors every body's cell list
//
//   - each live entity is listed in exactly the cells its image zone covers
//   - each cell occupant is a live entity that lists the cell
//   - no cell lists an occupant twice
//
// Returns all violations joined, nil when consistent
func (w *World) CheckInvariants() error {
	var errs []error

	for _, id := range w.objects.Entities() {
		obj, _ := w.objects.Get(id)
		b := obj.Body()
		want := w.cellsFor(b)
		if !sameCellSet(want, b.Cells) {
			errs = append(errs, fmt.Errorf("%w: %s %d lists cells %v, image covers %v", ErrInvariant, b.Kind, id, b.Cells, want))
		}
		for _, p := range b.Cells {
			c := w.grid.At(p.X, p.Y)
			if c == nil || !c.Contains(id) {
				errs = append(errs, fmt.Errorf("%w: %s %d missing from cell %v", ErrInvariant, b.Kind, id, p))
			}
		}
	}

	for y := 0; y < w.grid.Height; y++ {
		for x := 0; x < w.grid.Width; x++ {
			p := core.Point{X: x, Y: y}
			occ := w.grid.At(x, y).Occupants()
			for i, id := range occ {
				if containsEntity(occ[:i], id) {
					errs = append(errs, fmt.Errorf("%w: entity %d twice in cell %v", ErrInvariant, id, p))
					continue
				}
				b, ok := w.Body(id)
				if !ok {
					errs = append(errs, fmt.Errorf("%w: stale entity %d in cell %v", ErrInvariant, id, p))
					continue
				}
				if !containsPoint(b.Cells, p) {
					errs = append(errs, fmt.Errorf("%w: cell %v holds %d which does not list it", ErrInvariant, p, id))
				}
			}
		}
	}

	return errors.Join(errs...)
}

func sameCellSet(a, b []core.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for _, p := range a {
		if !containsPoint(b, p) {
			return false
		}
	}
	return true
}
