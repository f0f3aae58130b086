package engine

import (
	"fmt"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/vmath"
)

// Cell is one grid square: its terrain and the entities whose image zone covers it
// Occupants keep insertion order so neighbourhood scans are deterministic
type Cell struct {
	Terrain   component.Terrain
	occupants []core.Entity
}

// Occupants returns a read-only view of the entities in the cell
func (c *Cell) Occupants() []core.Entity {
	return c.occupants
}

// Contains reports membership of e
func (c *Cell) Contains(e core.Entity) bool {
	for _, o := range c.occupants {
		if o == e {
			return true
		}
	}
	return false
}

// add inserts e once, returns false when already present
func (c *Cell) add(e core.Entity) bool {
	if c.Contains(e) {
		return false
	}
	c.occupants = append(c.occupants, e)
	return true
}

// remove deletes e preserving occupant order
func (c *Cell) remove(e core.Entity) bool {
	for i, o := range c.occupants {
		if o == e {
			c.occupants = append(c.occupants[:i], c.occupants[i+1:]...)
			return true
		}
	}
	return false
}

// Grid is a dense 2D array of cells: index = y*Width + x
type Grid struct {
	Width    int // Cells
	Height   int // Cells
	CellSize int // Pixels per cell edge
	cells    []Cell
}

// NewGrid creates a grid of width x height solid cells
func NewGrid(width, height, cellSize int) (*Grid, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d cell %d", ErrInvalidGrid, width, height, cellSize)
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		cells:    make([]Cell, width*height),
	}, nil
}

// InBounds reports whether (x, y) addresses a cell
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y), nil when out of range
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.Width+x]
}

// Bounds returns the world rectangle in pixels
func (g *Grid) Bounds() core.Rect {
	return core.Rect{W: float64(g.Width * g.CellSize), H: float64(g.Height * g.CellSize)}
}

// SetTerrain changes the ground type of one cell
func (g *Grid) SetTerrain(x, y int, t component.Terrain) error {
	c := g.At(x, y)
	if c == nil {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrOutOfBounds, x, y, g.Width, g.Height)
	}
	c.Terrain = t
	return nil
}

// Fill sets every cell in [x0,x1)x[y0,y1) to terrain t, clipping to the grid
func (g *Grid) Fill(x0, y0, x1, y1 int, t component.Terrain) {
	for y := max(y0, 0); y < min(y1, g.Height); y++ {
		for x := max(x0, 0); x < min(x1, g.Width); x++ {
			g.cells[y*g.Width+x].Terrain = t
		}
	}
}

// Neighborhood returns the given cells followed by their in-range N/S/E/W neighbours, without duplicates
func (g *Grid) Neighborhood(cells []core.Point) []core.Point {
	out := make([]core.Point, 0, len(cells)*3)
	push := func(p core.Point) {
		if !g.InBounds(p.X, p.Y) {
			return
		}
		for _, q := range out {
			if q == p {
				return
			}
		}
		out = append(out, p)
	}
	for _, p := range cells {
		push(p)
	}
	for _, p := range cells {
		push(core.Point{X: p.X, Y: p.Y - 1})
		push(core.Point{X: p.X, Y: p.Y + 1})
		push(core.Point{X: p.X + 1, Y: p.Y})
		push(core.Point{X: p.X - 1, Y: p.Y})
	}
	return out
}

// CellsIn returns the in-range cells covered by r
func (g *Grid) CellsIn(r core.Rect) []core.Point {
	if r.Negative() {
		return nil
	}
	x0, x1 := vmath.CellSpan(r.X, r.W, g.CellSize)
	y0, y1 := vmath.CellSpan(r.Y, r.H, g.CellSize)
	out := make([]core.Point, 0, (x1-x0)*(y1-y0))
	for y := max(y0, 0); y < min(y1, g.Height); y++ {
		for x := max(x0, 0); x < min(x1, g.Width); x++ {
			out = append(out, core.Point{X: x, Y: y})
		}
	}
	return out
}

// Clear removes all occupants, terrain is kept
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].occupants = g.cells[i].occupants[:0]
	}
}
