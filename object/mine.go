package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// Mine explodes once under a grounded activator, damaging and knocking it back
type Mine struct {
	body      component.BodyComponent
	act       component.ActivationComponent
	Damage    int
	Knockback int
}

func NewMine(x, y float64) *Mine {
	b := component.NewBody(KindMine, x, y, parameter.CellSize, parameter.CellSize)
	b.SetZone(component.ZoneEffect, core.Rect{X: 8, Y: 8, W: 16, H: 16})
	return &Mine{body: b, Damage: parameter.MineDamage, Knockback: parameter.MineKnockback}
}

func (m *Mine) Body() *component.BodyComponent { return &m.body }

func (m *Mine) Activation() *component.ActivationComponent { return &m.act }

// Exploded reports a mine whose effect zone has been spent
func (m *Mine) Exploded() bool {
	return !m.body.Zones[component.ZoneEffect].Enabled()
}

// OnActivate fires for an activator standing on the ground and not on standby
func (m *Mine) OnActivate(w *engine.World, self, activator core.Entity) bool {
	obj, ok := w.Object(activator)
	if !ok {
		return false
	}
	ab := obj.Body()
	if ab.Height != 0 || ab.Standby {
		return false
	}

	w.Damage(activator, m.Damage, self)
	if _, ok := obj.(engine.Damageable); ok && ab.Mobile {
		mx, my := m.body.Bounds().Center()
		ax, ay := ab.Bounds().Center()
		away := core.DirectionTo(ax-mx, ay-my)
		if !away.Valid() {
			away = ab.Orientation.Opposite()
		}
		if away.Valid() {
			// Negative speed pushes the activator away while it keeps facing the mine
			ab.Orientation = away.Opposite()
			ab.Speed = -m.Knockback
		}
	}

	m.body.Zones[component.ZoneEffect].Disable()
	setAnim(m.body.Anim, component.AnimExploding)
	return true
}

func (m *Mine) PlayEffect(w *engine.World, self core.Entity) error {
	if animDone(m.body.Anim) {
		setAnim(m.body.Anim, component.AnimSpent)
		return w.Deactivate(self)
	}
	return nil
}

func (m *Mine) OnDeactivate(w *engine.World, self core.Entity) {}
