package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
	"github.com/siana-blue/poufalouf/vmath"
)

// Chair seats a grounded mover, holding it in place and turning it around until it jumps off
// The chair re-arms once the released entity has left its seat
type Chair struct {
	body     component.BodyComponent
	act      component.ActivationComponent
	seat     core.Rect // Effect zone offset while armed
	released core.Entity
	updates  int
}

func NewChair(x, y float64) *Chair {
	b := component.NewBody(KindChair, x, y, parameter.CellSize, parameter.CellSize)
	seat := core.Rect{X: 8, Y: 8, W: 16, H: 16}
	b.SetZone(component.ZoneEffect, seat)
	return &Chair{body: b, seat: seat}
}

func (c *Chair) Body() *component.BodyComponent { return &c.body }

func (c *Chair) Activation() *component.ActivationComponent { return &c.act }

// Occupant returns the seated entity, NoEntity when the chair is free
func (c *Chair) Occupant() core.Entity {
	if !c.act.Activated {
		return core.NoEntity
	}
	return c.act.Activator
}

func (c *Chair) OnActivate(w *engine.World, self, activator core.Entity) bool {
	obj, ok := w.Object(activator)
	if !ok {
		return false
	}
	ab := obj.Body()
	if !ab.Mobile || ab.Flying || ab.Height > 0 {
		return false
	}

	c.pin(w, activator, ab)
	if s, ok := obj.(seatable); ok {
		s.SetLocked(true)
	}
	c.body.Zones[component.ZoneEffect].Disable()
	c.updates = 0
	c.released = core.NoEntity
	setAnim(c.body.Anim, component.AnimRotating)
	return true
}

// PlayEffect keeps the occupant pinned and turns it, releasing it once airborne or gone
func (c *Chair) PlayEffect(w *engine.World, self core.Entity) error {
	occupant := c.act.Activator
	obj, ok := w.Object(occupant)
	if !ok || obj.Body().Finished {
		return w.Deactivate(self)
	}
	ab := obj.Body()
	if ab.Height > 0 {
		return w.Deactivate(self)
	}

	c.pin(w, occupant, ab)
	c.updates++
	if c.updates%parameter.ChairRotateEvery == 0 {
		if ab.Orientation.Valid() {
			ab.Orientation = ab.Orientation.Rotate(1)
		} else {
			ab.Orientation = core.North
		}
	}
	return nil
}

func (c *Chair) OnDeactivate(w *engine.World, self core.Entity) {
	c.released = c.act.Activator
	if obj, ok := w.Object(c.released); ok {
		if s, ok := obj.(seatable); ok {
			s.SetLocked(false)
		}
	}
	setAnim(c.body.Anim, component.AnimIdle)
}

// Update re-arms the seat once the released entity no longer overlaps it
func (c *Chair) Update(w *engine.World, self core.Entity) error {
	if c.act.Activated || c.released == core.NoEntity {
		return nil
	}
	seat := c.seat.Translate(c.body.X, c.body.Y)
	if rb, ok := w.Body(c.released); ok && !rb.Finished && vmath.Overlaps(rb.Bounds(), seat) {
		return nil
	}
	c.body.Zones[component.ZoneEffect].Restore(c.seat, c.body.X, c.body.Y)
	c.released = core.NoEntity
	return nil
}

// pin centres the occupant on the chair and cancels its planar speed
func (c *Chair) pin(w *engine.World, id core.Entity, ab *component.BodyComponent) {
	cx, cy := c.body.Bounds().Center()
	x := cx - float64(ab.W)/2
	y := cy - float64(ab.H)/2
	ab.Speed = 0
	if ab.X == x && ab.Y == y {
		return
	}
	ab.X, ab.Y = x, y
	ab.SyncZones()
	w.RefreshCells(id)
}
