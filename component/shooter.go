package component

import "github.com/siana-blue/poufalouf/core"

// ShooterComponent tracks the projectiles an entity has in flight (pure data)
type ShooterComponent struct {
	Projectiles []core.Entity // In flight, spawn order
	ShotCount   int           // Lifetime projectiles queued, never decreases
	Volleys     int           // Lifetime shoot calls
}

// Forget drops a projectile from the in-flight list, preserving order
func (s *ShooterComponent) Forget(p core.Entity) bool {
	for i, e := range s.Projectiles {
		if e == p {
			s.Projectiles = append(s.Projectiles[:i], s.Projectiles[i+1:]...)
			return true
		}
	}
	return false
}

// Owns reports whether p is one of the shooter's in-flight projectiles
func (s *ShooterComponent) Owns(p core.Entity) bool {
	for _, e := range s.Projectiles {
		if e == p {
			return true
		}
	}
	return false
}
