package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/parameter"
)

// NewTestWorld creates a world of width x height solid cells of parameter.CellSize with a
// silenced logger, and the simulation driving it with invariant checks on
// This is a test helper shared by package tests that need a live world
func NewTestWorld(width, height int, opts ...Option) (*World, *Simulation) {
	grid, err := NewGrid(width, height, parameter.CellSize)
	if err != nil {
		panic(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	w := NewWorld(grid, append([]Option{WithLogger(log)}, opts...)...)
	return w, NewSimulation(w, WithInvariantChecks(true))
}
