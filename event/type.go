package event

// EventType represents the type of world event
type EventType int

const (
	// EventSpawned announces a new entity in the arena
	// Trigger: World.Spawn
	// Consumer: Analytics, debug | Payload: *EntityPayload
	EventSpawned EventType = iota

	// EventRemoved announces an entity leaving the arena
	// Trigger: end-of-tick cleanup, World.Remove outside a tick
	// Consumer: Analytics, audio | Payload: *RemovedPayload
	EventRemoved

	// EventActivated fires on the idle to activated transition only
	// Trigger: World.Activate when the entity hook accepts
	// Consumer: Audio, analytics | Payload: *ActivationPayload
	EventActivated

	// EventDeactivated fires when an activated entity returns to idle
	// Trigger: World.Deactivate
	// Consumer: Analytics | Payload: *ActivationPayload
	EventDeactivated

	// EventProjectileFired fires once per volley
	// Trigger: World.Shoot
	// Consumer: Audio, analytics | Payload: *FiredPayload
	EventProjectileFired

	// EventProjectileImpact fires when a flying projectile strikes
	// Trigger: Projectile activation
	// Consumer: Audio, analytics | Payload: *ImpactPayload
	EventProjectileImpact

	// EventDamage reports damage applied to a damageable entity
	// Trigger: World.Damage
	// Consumer: Audio, analytics | Payload: *AmountPayload
	EventDamage

	// EventHeal reports health restored
	// Trigger: World.Heal
	// Consumer: Audio, analytics | Payload: *AmountPayload
	EventHeal

	// EventEntitySkipped reports an entity whose update failed and was skipped for the tick
	// Trigger: Simulation step recovery
	// Consumer: Analytics | Payload: *SkippedPayload
	EventEntitySkipped

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"spawned", "removed", "activated", "deactivated", "fired", "impact", "damage", "heal", "skipped",
}

func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "unknown"
}

// AllTypes lists every event type, for handlers that observe the whole stream
func AllTypes() []EventType {
	types := make([]EventType, eventTypeCount)
	for i := range types {
		types[i] = EventType(i)
	}
	return types
}

// GameEvent is a typed notification with its payload and the tick it was raised on
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    int64
}
