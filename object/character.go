package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// Character is a controllable, damageable mover
type Character struct {
	body    component.BodyComponent
	health  component.HealthComponent
	control Controller
	locked  bool
}

// NewCharacter returns a character with its top-left corner at (x, y)
func NewCharacter(x, y float64, control Controller) *Character {
	b := component.NewBody(KindCharacter, x, y, parameter.CharacterSize, parameter.CharacterSize)
	b.FillZone(component.ZoneCollision)
	b.FillZone(component.ZoneEffect)
	b.Mobile = true
	b.Accel = parameter.CharacterAccel
	b.Orientation = core.South
	return &Character{
		body:    b,
		health:  component.HealthComponent{HP: parameter.CharacterMaxHP, Max: parameter.CharacterMaxHP},
		control: control,
	}
}

func (c *Character) Body() *component.BodyComponent { return &c.body }

func (c *Character) Health() *component.HealthComponent { return &c.health }

// SetLocked pins the character: steering is ignored, jumping is not
func (c *Character) SetLocked(locked bool) { c.locked = locked }

func (c *Character) Locked() bool { return c.locked }

func (c *Character) Update(w *engine.World, self core.Entity) error {
	c.steer(w, self, c.intent())
	return nil
}

func (c *Character) intent() Intent {
	if c.control == nil {
		return Intent{}
	}
	return c.control.Intent()
}

// steer applies an intent; knockback (negative speed) overrides steering until it decays
func (c *Character) steer(w *engine.World, self core.Entity, in Intent) {
	b := &c.body
	if in.Jump && b.Height == 0 && b.VSpeed == 0 {
		b.VSpeed = parameter.JumpSpeed
	}
	if !c.locked && b.Speed >= 0 && in.Direction.Valid() {
		b.Orientation = in.Direction
		if b.Speed < parameter.CharacterSpeed {
			b.Speed = parameter.CharacterSpeed
		}
	}
	if !c.locked {
		w.Advance(self)
	}

	switch {
	case b.Anim != nil && b.Anim.Status() == component.AnimHurt && !b.Anim.TimerReachedZero():
		// let the hurt animation finish
	case b.Height > 0:
		setAnim(b.Anim, component.AnimJumping)
	case b.Speed != 0:
		setAnim(b.Anim, component.AnimMoving)
	default:
		setAnim(b.Anim, component.AnimIdle)
	}
}

func (c *Character) TakeDamage(w *engine.World, self core.Entity, amount int) {
	setAnim(c.body.Anim, component.AnimHurt)
	if c.health.Damage(amount) {
		c.body.Finished = true
	}
}

func (c *Character) Heal(w *engine.World, self core.Entity, amount int) bool {
	return c.health.Heal(amount) > 0
}

// Archer is a character that fires projectiles along its orientation
type Archer struct {
	*Character
	shooter  component.ShooterComponent
	cooldown int
}

// NewArcher returns an armed character
func NewArcher(x, y float64, control Controller) *Archer {
	c := NewCharacter(x, y, control)
	c.body.Kind = KindArcher
	c.body.Name = KindArcher
	return &Archer{Character: c}
}

func (a *Archer) Shooter() *component.ShooterComponent { return &a.shooter }

func (a *Archer) Update(w *engine.World, self core.Entity) error {
	in := a.intent()
	a.steer(w, self, in)

	if a.cooldown > 0 {
		a.cooldown--
		return nil
	}
	if in.Fire {
		a.cooldown = parameter.FireCooldown
		return w.Shoot(self)
	}
	return nil
}

// Volley fires one projectile along the archer's orientation, east when it has none
func (a *Archer) Volley(w *engine.World, self core.Entity) ([]engine.Object, error) {
	dir := a.body.Orientation
	if !dir.Valid() {
		dir = core.East
	}
	p, err := NewProjectile(self, a.shooter.Volleys+1, a.body.Bounds(), dir, parameter.ProjectileStrength, parameter.ProjectileSpeed)
	if err != nil {
		return nil, err
	}
	return []engine.Object{p}, nil
}
