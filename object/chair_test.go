package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
)

func TestChairSeatsRotatesAndReleases(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	chair := NewChair(64, 64)
	_, err := w.Spawn(chair)
	require.NoError(t, err)

	steps := []Intent{{}, {Direction: core.East}, {}, {}, {}, {Jump: true}}
	for i := 0; i < 12; i++ {
		steps = append(steps, Intent{Direction: core.East})
	}
	hero := NewCharacter(66, 70, &Script{Steps: steps})
	hid, err := w.Spawn(hero)
	require.NoError(t, err)

	tick := 0
	run := func(n int) {
		for i := 0; i < n; i++ {
			sim.OnTick(int64(tick * 40))
			tick++
		}
	}

	run(1)
	require.Equal(t, hid, chair.Occupant())
	assert.True(t, hero.Locked())
	assert.Equal(t, float64(68), hero.Body().X, "occupant is centred on the chair")
	assert.Equal(t, float64(68), hero.Body().Y)
	assert.False(t, chair.Body().Zones[component.ZoneEffect].Enabled())

	run(4)
	assert.Equal(t, float64(68), hero.Body().X, "steering is ignored while seated")
	assert.Equal(t, core.SouthWest, hero.Body().Orientation)

	run(2)
	assert.Equal(t, core.NoEntity, chair.Occupant(), "jumping releases the occupant")
	assert.False(t, hero.Locked())
	assert.False(t, chair.Body().Zones[component.ZoneEffect].Enabled(), "seat stays disarmed while occupied")

	run(15)
	assert.Greater(t, hero.Body().X, float64(88))
	assert.True(t, chair.Body().Zones[component.ZoneEffect].Enabled(), "seat re-arms once vacated")
	assert.Equal(t, core.NoEntity, chair.Occupant())
}

func TestChairRefusesAirborne(t *testing.T) {
	w, sim := engine.NewTestWorld(10, 10)
	chair := NewChair(64, 64)
	w.Spawn(chair)
	hero := NewCharacter(68, 68, nil)
	hero.Body().Height = 20
	w.Spawn(hero)

	sim.OnTick(0)
	assert.Equal(t, core.NoEntity, chair.Occupant())
	assert.True(t, chair.Body().Zones[component.ZoneEffect].Enabled())
}
