package component

import "github.com/siana-blue/poufalouf/core"

// ActivationComponent holds the two-state activation machine of an activable entity (pure data)
// Activator names self while idle
type ActivationComponent struct {
	Activated bool
	Activator core.Entity
}

// Reset returns the machine to idle with self as activator
func (a *ActivationComponent) Reset(self core.Entity) {
	a.Activated = false
	a.Activator = self
}
