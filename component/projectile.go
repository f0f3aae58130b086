package component

import "github.com/siana-blue/poufalouf/core"

// ProjectilePhase represents lifecycle state
type ProjectilePhase uint8

const (
	ProjectileFlying   ProjectilePhase = iota // Moving along its orientation
	ProjectileImpacted                        // Hit something, impact animation playing
	ProjectileDying                           // Dying animation playing
	ProjectileRemoved                         // Terminal, pending cleanup
)

var projectilePhaseNames = [...]string{"flying", "impacted", "dying", "removed"}

func (p ProjectilePhase) String() string {
	if int(p) < len(projectilePhaseNames) {
		return projectilePhaseNames[p]
	}
	return "invalid"
}

// ProjectileComponent holds projectile state (pure data)
type ProjectileComponent struct {
	Shooter  core.Entity // Entity that fired, never NoEntity
	Volley   int         // Shooter volley number this projectile belongs to
	Strength int         // Damage dealt on impact
	Phase    ProjectilePhase
	Target   core.Entity // What it struck, WorldEdge for the boundary
}
