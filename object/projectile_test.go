package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// fire spawns an archer facing dir at (x, y) and shoots once outside a tick
func fire(t *testing.T, w *engine.World, x, y float64, dir core.Direction) (core.Entity, *Projectile) {
	t.Helper()
	archer := NewArcher(x, y, nil)
	archer.Body().Orientation = dir
	aid, err := w.Spawn(archer)
	require.NoError(t, err)
	require.NoError(t, w.Shoot(aid))

	inFlight := w.Projectiles(aid)
	require.Len(t, inFlight, 1)
	obj, ok := w.Object(inFlight[0])
	require.True(t, ok)
	return aid, obj.(*Projectile)
}

func TestProjectileStopsAtWallEdge(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	aid, p := fire(t, w, 0, 100, core.East)
	require.Equal(t, float64(25), p.Body().X)

	// Three pixels between the projectile and the wall, four pixels of travel
	wid, err := w.Spawn(NewWall(36, 100))
	require.NoError(t, err)
	p.Body().Speed = 4

	sim.OnTick(0)

	assert.Equal(t, float64(28), p.Body().X)
	assert.Equal(t, float64(36), p.Body().Bounds().Right())
	assert.True(t, p.Activation().Activated)
	assert.Equal(t, wid, p.Projectile().Target)
	assert.Equal(t, component.ProjectileDying, p.Projectile().Phase)
	assert.False(t, p.Body().Zones[component.ZoneCollision].Enabled())

	sim.OnTick(40)
	assert.Empty(t, w.Projectiles(aid), "finished projectile leaves its shooter's list")
	assert.Equal(t, 1, w.ShotCount(aid))
	assert.Equal(t, 2, w.Len())
}

func TestProjectileFiredAgainstAdjacentWallImpactsIt(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	turret := NewTurret(64, 100)
	turret.Body().Orientation = core.East
	tid, err := w.Spawn(turret)
	require.NoError(t, err)
	wid, err := w.Spawn(NewWall(96, 100))
	require.NoError(t, err)

	require.NoError(t, w.Shoot(tid))
	inFlight := w.Projectiles(tid)
	require.Len(t, inFlight, 1)
	obj, _ := w.Object(inFlight[0])
	p := obj.(*Projectile)
	startX := p.Body().X
	require.Greater(t, startX, float64(96), "the shot starts inside the wall")

	sim.OnTick(0)

	assert.Equal(t, startX, p.Body().X, "the projectile must not cross the wall")
	assert.True(t, p.Activation().Activated)
	assert.Equal(t, wid, p.Projectile().Target)
}

func TestProjectileDamagesCharacter(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	fire(t, w, 0, 100, core.East)
	target := NewCharacter(60, 100, nil)
	_, err := w.Spawn(target)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		sim.OnTick(int64(i * 40))
	}
	assert.Equal(t, parameter.CharacterMaxHP-parameter.ProjectileStrength, target.Health().HP)
}

func TestProjectileHitsWorldEdge(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	_, p := fire(t, w, 100, 10, core.North)

	sim.OnTick(0)
	assert.Equal(t, core.WorldEdge, p.Projectile().Target)
	assert.GreaterOrEqual(t, p.Body().Y, float64(0))
}

func TestProjectileWithAnimationsTakesTime(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10, engine.WithAnimationLoader(Animations()))
	aid, p := fire(t, w, 0, 100, core.East)
	w.Spawn(NewWall(36, 100))

	sim.OnTick(0)
	require.Equal(t, component.ProjectileImpacted, p.Projectile().Phase)
	assert.Equal(t, component.AnimImpact, p.Body().Anim.Status())

	ticks := 1
	for ; ticks < 40 && len(w.Projectiles(aid)) > 0; ticks++ {
		sim.OnTick(int64(ticks * 40))
	}
	assert.Empty(t, w.Projectiles(aid))
	assert.Greater(t, ticks, parameter.ProjectileImpactFrames, "impact animation plays before removal")
}

func TestNewProjectileRejectsInvalidInput(t *testing.T) {
	origin := core.Rect{W: 24, H: 24}

	_, err := NewProjectile(core.NoEntity, 1, origin, core.East, 1, 1)
	assert.ErrorIs(t, err, ErrNoShooter)

	_, err = NewProjectile(core.Entity(3), 1, origin, core.NoDirection, 1, 1)
	assert.ErrorIs(t, err, ErrNoDirection)

	p, err := NewProjectile(core.Entity(3), 2, origin, core.South, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, float64(8), p.Body().X)
	assert.Equal(t, float64(25), p.Body().Y)
	assert.Equal(t, 2, p.Projectile().Volley)
	assert.True(t, p.Body().Flying)
}
