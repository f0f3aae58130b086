package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/parameter"
)

// Wall is a static block covering one cell
type Wall struct {
	body component.BodyComponent
}

func NewWall(x, y float64) *Wall {
	b := component.NewBody(KindWall, x, y, parameter.CellSize, parameter.CellSize)
	b.FillZone(component.ZoneCollision)
	return &Wall{body: b}
}

func (w *Wall) Body() *component.BodyComponent { return &w.body }
