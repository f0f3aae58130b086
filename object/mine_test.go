package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

func TestMineDamagesOnceAndDisablesItself(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	mine := NewMine(64, 64)
	mid, err := w.Spawn(mine)
	require.NoError(t, err)
	hero := NewCharacter(68, 68, nil)
	_, err = w.Spawn(hero)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sim.OnTick(int64(i * 40))
	}

	assert.Equal(t, parameter.CharacterMaxHP-parameter.MineDamage, hero.Health().HP, "exactly one hit of 8")
	eff := mine.Body().Zones[component.ZoneEffect]
	assert.Equal(t, float64(-1), eff.Offset.W)
	assert.Equal(t, float64(-1), eff.Abs.W)
	assert.True(t, mine.Exploded())
	assert.False(t, w.IsActivated(mid), "mine deactivates once the explosion played")
}

func TestMineKnocksBackActivator(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	w.Spawn(NewMine(64, 64))
	hero := NewCharacter(76, 68, nil) // East of the mine centre
	_, err := w.Spawn(hero)
	require.NoError(t, err)

	sim.OnTick(0)
	assert.Negative(t, hero.Body().Speed)

	startX := hero.Body().X
	sim.OnTick(40)
	assert.Greater(t, hero.Body().X, startX, "knockback pushes away from the mine")
}

func TestMineIgnoresAirborneAndStandby(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	mid, _ := w.Spawn(NewMine(64, 64))

	hero := NewCharacter(68, 68, nil)
	hero.Body().Height = 10
	hero.Body().VSpeed = 10
	w.Spawn(hero)

	sleeper := NewCharacter(70, 70, nil)
	sleeper.Body().Standby = true
	w.Spawn(sleeper)

	sim.OnTick(0)
	assert.False(t, w.IsActivated(mid))
	assert.Equal(t, parameter.CharacterMaxHP, hero.Health().HP)
	assert.Equal(t, parameter.CharacterMaxHP, sleeper.Health().HP)
}

func TestMineWithAnimationsPlaysExplosion(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10, engine.WithAnimationLoader(Animations()))
	mine := NewMine(64, 64)
	mid, _ := w.Spawn(mine)
	w.Spawn(NewCharacter(68, 68, nil))

	sim.OnTick(0)
	require.True(t, w.IsActivated(mid))
	assert.Equal(t, component.AnimExploding, mine.Body().Anim.Status())

	for i := 1; i < 20 && w.IsActivated(mid); i++ {
		sim.OnTick(int64(i * 40))
	}
	assert.False(t, w.IsActivated(mid))
	assert.Equal(t, component.AnimSpent, mine.Body().Anim.Status())
}
