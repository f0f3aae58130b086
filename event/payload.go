package event

import "github.com/siana-blue/poufalouf/core"

// EntityPayload identifies an entity and its content kind
type EntityPayload struct {
	Entity core.Entity
	Kind   string
}

// RemovalReason explains why an entity left the arena
type RemovalReason uint8

const (
	RemovalFinished RemovalReason = iota // Marked finished by its own behaviour
	RemovalTerrain                       // Fell into liquid or void
	RemovalExternal                      // Removed by a caller outside the tick
)

var removalReasonNames = [...]string{"finished", "terrain", "external"}

func (r RemovalReason) String() string {
	if int(r) < len(removalReasonNames) {
		return removalReasonNames[r]
	}
	return "unknown"
}

// RemovedPayload carries a removed entity and the reason
type RemovedPayload struct {
	Entity core.Entity
	Kind   string
	Reason RemovalReason
}

// ActivationPayload carries an activation state change
type ActivationPayload struct {
	Entity    core.Entity
	Kind      string
	Activator core.Entity
}

// FiredPayload carries one volley
type FiredPayload struct {
	Shooter core.Entity
	Kind    string
	Count   int
	Volley  int
}

// ImpactPayload carries a projectile strike, Target is core.WorldEdge at the boundary
type ImpactPayload struct {
	Projectile core.Entity
	Shooter    core.Entity
	Target     core.Entity
}

// AmountPayload carries damage or healing
type AmountPayload struct {
	Target core.Entity
	Source core.Entity
	Kind   string
	Amount int
}

// SkippedPayload carries a failed entity update
type SkippedPayload struct {
	Entity core.Entity
	Kind   string
	Err    string
}
