package engine

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
)

// Object is anything that lives in the world arena
// Capabilities are discovered by type assertion against the interfaces below
type Object interface {
	Body() *component.BodyComponent
}

// Behavior is autonomous per-update logic, suspended while the body is on standby
type Behavior interface {
	Update(w *World, self core.Entity) error
}

// Activable entities run the two-state activation machine
type Activable interface {
	Object
	Activation() *component.ActivationComponent
	// OnActivate decides whether the activator triggers the entity; returning false leaves it idle
	OnActivate(w *World, self, activator core.Entity) bool
	// PlayEffect runs once per update while activated
	PlayEffect(w *World, self core.Entity) error
	// OnDeactivate runs before the state returns to idle, the activator is still readable
	OnDeactivate(w *World, self core.Entity)
}

// Shooting entities produce projectiles on demand
type Shooting interface {
	Object
	Shooter() *component.ShooterComponent
	// Volley builds the projectiles of one shot, not yet spawned
	Volley(w *World, self core.Entity) ([]Object, error)
}

// Projectile entities carry their shooter and volley
type Projectile interface {
	Activable
	Projectile() *component.ProjectileComponent
}

// Damageable entities lose health
type Damageable interface {
	TakeDamage(w *World, self core.Entity, amount int)
}

// Healable entities regain health, reporting whether any was restored
type Healable interface {
	Heal(w *World, self core.Entity, amount int) bool
}

// AnimationLoader supplies the frame clock of an entity kind at spawn time
type AnimationLoader interface {
	Load(kind string) (component.Animator, error)
}

// AnimationLoaderFunc adapts a function to AnimationLoader
type AnimationLoaderFunc func(kind string) (component.Animator, error)

func (f AnimationLoaderFunc) Load(kind string) (component.Animator, error) { return f(kind) }
