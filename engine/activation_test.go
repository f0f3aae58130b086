package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/event"
)

func TestActivateIsEdgeTriggered(t *testing.T) {
	w, sim := NewTestWorld(10, 10)
	wid, _ := w.Spawn(newWalker(100, 100, 32))
	p := newPad(110, 110, 16)
	pid, _ := w.Spawn(p)

	for i := 0; i < 4; i++ {
		sim.OnTick(int64(i * 40))
	}

	assert.Equal(t, 1, p.hooks, "continued overlap must not re-invoke the hook")
	assert.True(t, w.IsActivated(pid))
	assert.Equal(t, wid, w.Activator(pid))
	assert.Equal(t, 3, p.effects, "effect plays on every update after activation")
}

func TestActivateDeclinedStaysIdle(t *testing.T) {
	w, sim := NewTestWorld(10, 10)
	w.Spawn(newWalker(100, 100, 32))
	p := newPad(110, 110, 16)
	p.accept = false
	pid, _ := w.Spawn(p)

	sim.OnTick(0)
	sim.OnTick(40)

	assert.Equal(t, 2, p.hooks)
	assert.False(t, w.IsActivated(pid))
	assert.Equal(t, pid, w.Activator(pid), "idle activator is self")
	assert.Zero(t, p.effects)
}

func TestActivateDirect(t *testing.T) {
	w, _ := NewTestWorld(10, 10)
	p := newPad(0, 0, 16)
	pid, _ := w.Spawn(p)
	bid, _ := w.Spawn(newBlock(100, 100, 32, 32))

	ok, err := w.Activate(pid, core.WorldEdge)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.WorldEdge, w.Activator(pid))

	ok, err = w.Activate(pid, bid)
	require.NoError(t, err)
	assert.False(t, ok, "already activated")
	assert.Equal(t, 1, p.hooks)

	_, err = w.Activate(bid, pid)
	assert.ErrorIs(t, err, ErrNotActivable)
	_, err = w.Activate(999, pid)
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestDeactivateResetsActivator(t *testing.T) {
	w, _ := NewTestWorld(10, 10)
	p := newPad(0, 0, 16)
	pid, _ := w.Spawn(p)
	w.Activate(pid, core.WorldEdge)
	w.Events().Consume()

	require.NoError(t, w.Deactivate(pid))
	assert.False(t, w.IsActivated(pid))
	assert.Equal(t, pid, w.Activator(pid))
	assert.Equal(t, 1, p.deactivations)

	require.NoError(t, w.Deactivate(pid))
	assert.Equal(t, 1, p.deactivations, "deactivating an idle entity is a no-op")

	evs := w.Events().Consume()
	require.Len(t, evs, 1)
	assert.Equal(t, event.EventDeactivated, evs[0].Type)
}

func TestSweepIgnoresStaticMovers(t *testing.T) {
	w, sim := NewTestWorld(10, 10)
	wk := newWalker(100, 100, 32)
	wk.body.Mobile = false
	w.Spawn(wk)
	p := newPad(110, 110, 16)
	w.Spawn(p)

	sim.OnTick(0)
	assert.Zero(t, p.hooks)
}

func TestSweepIgnoresDisabledEffectZone(t *testing.T) {
	w, sim := NewTestWorld(10, 10)
	w.Spawn(newWalker(100, 100, 32))
	p := newPad(110, 110, 16)
	p.body.Zones[component.ZoneEffect].Disable()
	w.Spawn(p)

	sim.OnTick(0)
	assert.Zero(t, p.hooks, "negative zones never collide")
}

func TestSameShooterImmunity(t *testing.T) {
	w, sim := NewTestWorld(10, 10)
	g := newGun(0, 0)
	gid, _ := w.Spawn(g)
	other, _ := w.Spawn(newGun(200, 200))

	// Two stationary bolts of the same shooter overlapping each other and the shooter
	b1 := newBolt(gid, 20, 10, 0)
	b2 := newBolt(gid, 24, 10, 0)
	id1, _ := w.Spawn(b1)
	id2, _ := w.Spawn(b2)

	sim.OnTick(0)
	assert.False(t, w.IsActivated(id1))
	assert.False(t, w.IsActivated(id2))

	// A bolt from another shooter is fair game
	b3 := newBolt(other, 26, 10, 0)
	id3, _ := w.Spawn(b3)
	sim.OnTick(40)
	assert.True(t, w.IsActivated(id1) || w.IsActivated(id3))
}

func TestActivationCannotRecurse(t *testing.T) {
	w, _ := NewTestWorld(10, 10)
	g1, _ := w.Spawn(newGun(0, 0))
	g2, _ := w.Spawn(newGun(200, 0))
	a := &echo{bolt: newBolt(g1, 100, 100, 0)}
	b := &echo{bolt: newBolt(g2, 104, 100, 0)}
	aid, _ := w.Spawn(a)
	bid, _ := w.Spawn(b)

	ok, err := w.Activate(aid, bid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, w.IsActivated(bid))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

// echo activates its activator back, like a projectile striking another projectile
type echo struct {
	*bolt
	calls int
}

func (e *echo) OnActivate(w *World, self, activator core.Entity) bool {
	e.calls++
	w.Activate(activator, self)
	return true
}
