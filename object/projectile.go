package object

import (
	"fmt"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/parameter"
)

// Projectile flies along its orientation until it strikes something, then plays its impact
// and dying animations and removes itself
type Projectile struct {
	body component.BodyComponent
	act  component.ActivationComponent
	proj component.ProjectileComponent
}

// NewProjectile builds a projectile leaving origin (the shooter's image rectangle) in dir
func NewProjectile(shooter core.Entity, volley int, origin core.Rect, dir core.Direction, strength, speed int) (*Projectile, error) {
	if !shooter.IsEntity() {
		return nil, ErrNoShooter
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: got %v", ErrNoDirection, dir)
	}

	size := float64(parameter.ProjectileSize)
	cx, cy := origin.Center()
	dx, dy := dir.Delta()
	x := cx - size/2 + float64(dx)*(origin.W/2+size/2+1)
	y := cy - size/2 + float64(dy)*(origin.H/2+size/2+1)

	b := component.NewBody(KindProjectile, x, y, parameter.ProjectileSize, parameter.ProjectileSize)
	b.FillZone(component.ZoneCollision)
	b.FillZone(component.ZoneEffect)
	b.Orientation = dir
	b.Speed = speed
	b.Flying = true
	b.Mobile = true

	return &Projectile{
		body: b,
		proj: component.ProjectileComponent{
			Shooter:  shooter,
			Volley:   volley,
			Strength: strength,
			Phase:    component.ProjectileFlying,
		},
	}, nil
}

func (p *Projectile) Body() *component.BodyComponent { return &p.body }

func (p *Projectile) Activation() *component.ActivationComponent { return &p.act }

func (p *Projectile) Projectile() *component.ProjectileComponent { return &p.proj }

// Update moves the projectile, passing through its shooter and sibling projectiles
// A hit activates the projectile with the struck entity, or core.WorldEdge, as activator
func (p *Projectile) Update(w *engine.World, self core.Entity) error {
	if p.proj.Phase != component.ProjectileFlying {
		return nil
	}
	setAnim(p.body.Anim, component.AnimFlying)

	hit := w.Move(self, p.body.Orientation, p.body.Speed, w.ProjectileExclusions(p.proj.Shooter)...)
	if hit == core.NoEntity {
		return nil
	}
	_, err := w.Activate(self, hit)
	return err
}

// OnActivate is the impact: the projectile stops, stops colliding, damages a damageable target
// and activates an activable one
func (p *Projectile) OnActivate(w *engine.World, self, activator core.Entity) bool {
	if p.proj.Phase != component.ProjectileFlying {
		return false
	}
	p.proj.Phase = component.ProjectileImpacted
	p.proj.Target = activator
	p.body.Speed = 0
	p.body.Zones[component.ZoneCollision].Disable()
	p.body.Zones[component.ZoneEffect].Disable()
	setAnim(p.body.Anim, component.AnimImpact)

	w.Emit(event.EventProjectileImpact, &event.ImpactPayload{Projectile: self, Shooter: p.proj.Shooter, Target: activator})

	if activator.IsEntity() && activator != self {
		w.Damage(activator, p.proj.Strength, self)
		if obj, ok := w.Object(activator); ok {
			if _, ok := obj.(engine.Activable); ok {
				if _, err := w.Activate(activator, self); err != nil {
					w.Logger().WithError(err).WithField("entity", activator).Warn("impact activation failed")
				}
			}
		}
	}
	return true
}

// PlayEffect sequences impact, dying and removal on animation boundaries
func (p *Projectile) PlayEffect(w *engine.World, self core.Entity) error {
	switch p.proj.Phase {
	case component.ProjectileImpacted:
		if animDone(p.body.Anim) {
			p.proj.Phase = component.ProjectileDying
			setAnim(p.body.Anim, component.AnimDying)
		}
	case component.ProjectileDying:
		if a := p.body.Anim; a == nil || a.FrameIndex() >= a.FrameCount()-1 {
			p.proj.Phase = component.ProjectileRemoved
			p.body.Finished = true
		}
	}
	return nil
}

func (p *Projectile) OnDeactivate(w *engine.World, self core.Entity) {}
