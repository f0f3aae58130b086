// Package object holds the entity kinds that populate a world: characters, walls, mines,
// hearts, chairs, turrets and projectiles
package object

import (
	"errors"
	"fmt"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// Content kinds
const (
	KindCharacter  = "character"
	KindArcher     = "archer"
	KindWall       = "wall"
	KindMine       = "mine"
	KindHeart      = "heart"
	KindChair      = "chair"
	KindTurret     = "turret"
	KindProjectile = "projectile"
)

var (
	ErrNoShooter   = errors.New("projectile requires a shooter")
	ErrNoDirection = errors.New("projectile requires a compass direction")
	ErrUnknownKind = errors.New("unknown content kind")
)

// frameTable lists the frame count of every animated status per kind, unlisted statuses have one frame
var frameTable = map[string]map[component.AnimationStatus]int{
	KindCharacter:  {component.AnimMoving: 4, component.AnimHurt: 2},
	KindArcher:     {component.AnimMoving: 4, component.AnimHurt: 2},
	KindWall:       {},
	KindMine:       {component.AnimExploding: parameter.MineFrames},
	KindHeart:      {component.AnimConsumed: parameter.HeartFrames},
	KindChair:      {component.AnimRotating: 8},
	KindTurret:     {component.AnimActivated: 2},
	KindProjectile: {component.AnimImpact: parameter.ProjectileImpactFrames, component.AnimDying: parameter.ProjectileDyingFrames},
}

// Animations returns the loader that equips every known kind with its frame clock at spawn
func Animations() engine.AnimationLoader {
	return engine.AnimationLoaderFunc(func(kind string) (component.Animator, error) {
		frames, ok := frameTable[kind]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		return component.NewAnimation(parameter.TicksPerFrame, frames), nil
	})
}

// animDone reports the end of the current animation; entities without a clock finish at once
func animDone(a component.Animator) bool {
	return a == nil || a.TimerReachedZero()
}

func setAnim(a component.Animator, s component.AnimationStatus) {
	if a != nil {
		a.SetStatus(s)
	}
}

// seatable entities can be pinned in place while keeping their vertical freedom
type seatable interface {
	SetLocked(bool)
}
