package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/vmath"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := LayoutConfig{Width: 21, Height: 11, Braiding: 50, Openness: 20}
	a := Generate(cfg, vmath.NewFastRand(9))
	b := Generate(cfg, vmath.NewFastRand(9))
	assert.Equal(t, a.Grid, b.Grid)
	assert.Equal(t, a.Start, b.Start)
}

func TestGenerateShape(t *testing.T) {
	l := Generate(LayoutConfig{Width: 20, Height: 12}, vmath.NewFastRand(3))
	require.Len(t, l.Grid, 12)
	require.Len(t, l.Grid[0], 20)

	assert.False(t, l.IsWall(l.Start.X, l.Start.Y), "start is open")
	for x := 0; x < 20; x++ {
		assert.False(t, l.IsWall(x, 0), "border row is open")
	}
	for y := 0; y < 12; y++ {
		assert.False(t, l.IsWall(19, y), "column past the odd maze area is open")
	}
	assert.NotEmpty(t, l.Walls())
}

// A perfect maze with open borders connects every passage
func TestGenerateConnected(t *testing.T) {
	l := Generate(LayoutConfig{Width: 25, Height: 15}, vmath.NewFastRand(17))
	order, dist := l.Reachable(l.Start)
	require.NotEmpty(t, order)
	assert.Equal(t, 0, dist[l.Start])

	passages := 0
	for _, row := range l.Grid {
		for _, c := range row {
			if c == Passage {
				passages++
			}
		}
	}
	assert.Equal(t, passages, len(order))
}

func TestThinningRemovesWalls(t *testing.T) {
	dense := Generate(LayoutConfig{Width: 31, Height: 17}, vmath.NewFastRand(5))
	sparse := Generate(LayoutConfig{Width: 31, Height: 17, Braiding: 100, Openness: 60}, vmath.NewFastRand(5))
	assert.Less(t, len(sparse.Walls()), len(dense.Walls()))
}

func TestGenerateTinyGrid(t *testing.T) {
	l := Generate(LayoutConfig{Width: 2, Height: 1}, vmath.NewFastRand(1))
	assert.Empty(t, l.Walls())
	assert.Equal(t, core.Point{}, l.Start)
}

func TestReachableFromWall(t *testing.T) {
	l := Layout{Grid: [][]bool{{Wall, Passage}, {Passage, Passage}}}
	order, _ := l.Reachable(core.Point{})
	assert.Empty(t, order)

	order, dist := l.Reachable(core.Point{X: 1})
	assert.Len(t, order, 3)
	assert.Equal(t, 2, dist[core.Point{X: 0, Y: 1}])
}
