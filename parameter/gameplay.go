package parameter

// Characters
const (
	CharacterSize   = 24
	CharacterMaxHP  = 40
	CharacterSpeed  = 3
	CharacterAccel  = 1
	JumpSpeed       = 6
	Gravity         = 1
	FireCooldown    = 6 // Updates between archer volleys
	LethalDamage    = 1 << 20
	KeyHoldWindowMs = 180 // Terminals report no key release; a held direction expires after this
)

// Mines
const (
	MineDamage    = 8
	MineKnockback = 6
	MineFrames    = 4 // Exploding animation frames
)

// Hearts
const (
	HeartHeal   = 15
	HeartFrames = 3 // Consumed animation frames
)

// Chairs
const (
	ChairRotateEvery = 4 // Updates between quarter turns of a seated entity
)

// Projectiles
const (
	ProjectileSize         = 8
	ProjectileStrength     = 5
	ProjectileSpeed        = 6
	ProjectileImpactFrames = 3
	ProjectileDyingFrames  = 2
)

// Turrets
const (
	TurretFireEvery = 25  // Updates between volleys while a target is in range
	TurretRange     = 160 // Detection reach beyond the turret footprint, pixels
)

// Animation
const (
	TicksPerFrame = 2
)
