package level

import (
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/vmath"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

// LayoutConfig shapes a generated wall layout
type LayoutConfig struct {
	Width, Height int

	// Braiding: 0 (perfect maze, a tree) to 100 (no dead ends)
	// Higher values add cycles. Plaza and pillar constraints take precedence
	Braiding int

	// Openness: percentage of the remaining interior walls knocked out to make room for content
	Openness int
}

// Layout is a wall map in cell coordinates with the player start
type Layout struct {
	Grid  [][]bool // [y][x], Wall or Passage
	Start core.Point
}

// Generate carves a maze over the whole grid, opens its border and thins it out
// Grids under 3x3 have no room for a maze and come back open
func Generate(cfg LayoutConfig, rng *vmath.FastRand) Layout {
	if cfg.Width < 3 || cfg.Height < 3 {
		grid := make([][]bool, max(cfg.Height, 0))
		for y := range grid {
			grid[y] = make([]bool, max(cfg.Width, 0))
		}
		return Layout{Grid: grid}
	}

	// Round down to the nearest odd size to stay within requested bounds
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make([][]bool, cfg.Height)
	for y := range grid {
		grid[y] = make([]bool, cfg.Width)
		for x := range grid[y] {
			grid[y][x] = y < rows && x < cols
		}
	}

	start := core.Point{X: (cols / 2) | 1, Y: (rows / 2) | 1}
	if start.X >= cols-1 {
		start.X = 1
	}
	if start.Y >= rows-1 {
		start.Y = 1
	}

	recursiveBacktracker(grid, rows, cols, start, rng)
	stripBorders(grid, rows, cols)
	if cfg.Braiding > 0 {
		applySmartBraiding(grid, rows, cols, cfg.Braiding, rng)
	}
	if cfg.Openness > 0 {
		thin(grid, cfg.Openness, rng)
	}
	grid[start.Y][start.X] = Passage

	return Layout{Grid: grid, Start: start}
}

// IsWall reports a wall at (x, y), false out of range
func (l Layout) IsWall(x, y int) bool {
	if y < 0 || y >= len(l.Grid) || x < 0 || x >= len(l.Grid[y]) {
		return false
	}
	return l.Grid[y][x] == Wall
}

// Walls lists wall cells in row-major order
func (l Layout) Walls() []core.Point {
	var out []core.Point
	for y, row := range l.Grid {
		for x, c := range row {
			if c == Wall {
				out = append(out, core.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Reachable returns the passage cells connected to from, in breadth-first order, with their distance
func (l Layout) Reachable(from core.Point) ([]core.Point, map[core.Point]int) {
	if len(l.Grid) == 0 {
		return nil, nil
	}
	rows, cols := len(l.Grid), len(l.Grid[0])
	if from.X < 0 || from.X >= cols || from.Y < 0 || from.Y >= rows || l.IsWall(from.X, from.Y) {
		return nil, nil
	}

	order := []core.Point{from}
	dist := map[core.Point]int{from: 0}
	dirs := []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	for i := 0; i < len(order); i++ {
		curr := order[i]
		for _, d := range dirs {
			next := core.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
				continue
			}
			if _, seen := dist[next]; seen || l.Grid[next.Y][next.X] == Wall {
				continue
			}
			dist[next] = dist[curr] + 1
			order = append(order, next)
		}
	}
	return order, dist
}

func recursiveBacktracker(grid [][]bool, rows, cols int, start core.Point, rng *vmath.FastRand) {
	stack := []core.Point{start}
	grid[start.Y][start.X] = Passage

	dirs := []core.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]core.Point, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave a one cell border for walls
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		grid[curr.Y+d.Y/2][curr.X+d.X/2] = Passage
		next := core.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

func applySmartBraiding(grid [][]bool, rows, cols, probability int, rng *vmath.FastRand) {
	ortho := []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	// Odd nodes are rooms
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Wall {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if grid[y+d.Y][x+d.X] == Passage {
					exits++
				}
			}
			if exits != 1 || !rng.Chance(probability, 100) {
				continue
			}

			// Dead end: open a wall toward another room to create a loop
			candidates := make([]core.Point, 0, 4)
			for _, d := range ortho {
				nx, ny := x+2*d.X, y+2*d.Y
				wx, wy := x+d.X, y+d.Y
				if nx >= 0 && nx < cols && ny >= 0 && ny < rows &&
					grid[ny][nx] == Passage && grid[wy][wx] == Wall && canSafelyRemoveWall(grid, wx, wy) {
					candidates = append(candidates, core.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				grid[c.Y][c.X] = Passage
			}
		}
	}
}

// thin knocks out a share of the interior walls that can go without leaving pillars or plazas
func thin(grid [][]bool, percent int, rng *vmath.FastRand) {
	for y := 1; y < len(grid)-1; y++ {
		for x := 1; x < len(grid[y])-1; x++ {
			if grid[y][x] == Wall && rng.Chance(percent, 100) && canSafelyRemoveWall(grid, x, y) {
				grid[y][x] = Passage
			}
		}
	}
}

// canSafelyRemoveWall checks whether opening grid[y][x] keeps the topology rules:
// no 2x2 plazas and no isolated wall pillars
func canSafelyRemoveWall(grid [][]bool, x, y int) bool {
	rows, cols := len(grid), len(grid[0])

	isP := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return grid[ty][tx] == Passage
	}

	// The four 2x2 quadrants containing (x, y)
	if isP(x-1, y-1) && isP(x, y-1) && isP(x-1, y) {
		return false
	}
	if isP(x, y-1) && isP(x+1, y-1) && isP(x+1, y) {
		return false
	}
	if isP(x-1, y) && isP(x-1, y+1) && isP(x, y+1) {
		return false
	}
	if isP(x+1, y) && isP(x, y+1) && isP(x+1, y+1) {
		return false
	}

	// A neighbouring wall must keep another wall connection
	ortho := []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || grid[ny][nx] != Wall {
			continue
		}
		connections := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2.X, ny+d2.Y
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && grid[nny][nnx] == Wall {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}
	return true
}

func stripBorders(grid [][]bool, rows, cols int) {
	for x := 0; x < cols; x++ {
		grid[0][x] = Passage
		grid[rows-1][x] = Passage
	}
	for y := 0; y < rows; y++ {
		grid[y][0] = Passage
		grid[y][cols-1] = Passage
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
