package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// Heart heals the first healable entity that can use it, then disappears
type Heart struct {
	body   component.BodyComponent
	act    component.ActivationComponent
	Amount int
}

func NewHeart(x, y float64) *Heart {
	b := component.NewBody(KindHeart, x, y, parameter.CellSize, parameter.CellSize)
	b.SetZone(component.ZoneEffect, core.Rect{X: 6, Y: 6, W: 20, H: 20})
	return &Heart{body: b, Amount: parameter.HeartHeal}
}

func (h *Heart) Body() *component.BodyComponent { return &h.body }

func (h *Heart) Activation() *component.ActivationComponent { return &h.act }

// OnActivate declines activators that cannot be healed, so a full-health entity leaves it in place
func (h *Heart) OnActivate(w *engine.World, self, activator core.Entity) bool {
	if !w.Heal(activator, h.Amount, self) {
		return false
	}
	h.body.Zones[component.ZoneEffect].Disable()
	setAnim(h.body.Anim, component.AnimConsumed)
	return true
}

func (h *Heart) PlayEffect(w *engine.World, self core.Entity) error {
	if animDone(h.body.Anim) {
		h.body.Finished = true
	}
	return nil
}

func (h *Heart) OnDeactivate(w *engine.World, self core.Entity) {}
