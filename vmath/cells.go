package vmath

import "math"

// CellSpan maps a pixel extent onto grid cells along one axis
// start is floor(pos/cellSize), end is ceil((pos+size)/cellSize) and exclusive;
// the span always covers at least one cell so zero-size bodies still occupy one
func CellSpan(pos, size float64, cellSize int) (start, end int) {
	cs := float64(cellSize)
	start = int(math.Floor(pos / cs))
	end = int(math.Ceil((pos + size) / cs))
	if end <= start {
		end = start + 1
	}
	return start, end
}
