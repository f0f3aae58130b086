package engine

import (
	"errors"
	"fmt"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/event"
)

// Shoot asks id for a volley and queues its projectiles
// Outside a tick they spawn immediately; during a tick they spawn at the end of the shooter's
// own step so the current sweep never sees half-built projectiles
func (w *World) Shoot(id core.Entity) error {
	obj, ok := w.objects.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	s, ok := obj.(Shooting)
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotShooting, obj.Body().Kind, id)
	}

	volley, err := s.Volley(w, id)
	if err != nil {
		return fmt.Errorf("volley from %s %d: %w", obj.Body().Kind, id, err)
	}
	if len(volley) == 0 {
		return nil
	}

	st := s.Shooter()
	st.Volleys++
	st.ShotCount += len(volley)
	w.pending[id] = append(w.pending[id], volley...)
	w.emit(event.EventProjectileFired, &event.FiredPayload{Shooter: id, Kind: obj.Body().Kind, Count: len(volley), Volley: st.Volleys})

	if !w.ticking {
		return w.flushPending(id)
	}
	return nil
}

// flushPending spawns the queued projectiles of shooter and records them as in flight
func (w *World) flushPending(shooter core.Entity) error {
	queued := w.pending[shooter]
	if len(queued) == 0 {
		return nil
	}
	delete(w.pending, shooter)

	obj, ok := w.objects.Get(shooter)
	if !ok {
		return fmt.Errorf("%w: shooter %d", ErrUnknownEntity, shooter)
	}
	s, ok := obj.(Shooting)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotShooting, shooter)
	}

	var errs []error
	for _, p := range queued {
		pid, err := w.Spawn(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Shooter().Projectiles = append(s.Shooter().Projectiles, pid)
	}
	return errors.Join(errs...)
}

// Projectiles returns a read-only view of the in-flight projectiles of shooter
func (w *World) Projectiles(shooter core.Entity) []core.Entity {
	obj, ok := w.objects.Get(shooter)
	if !ok {
		return nil
	}
	s, ok := obj.(Shooting)
	if !ok {
		return nil
	}
	return s.Shooter().Projectiles
}

// ShotCount returns the lifetime projectile count of shooter
func (w *World) ShotCount(shooter core.Entity) int {
	obj, ok := w.objects.Get(shooter)
	if !ok {
		return 0
	}
	s, ok := obj.(Shooting)
	if !ok {
		return 0
	}
	return s.Shooter().ShotCount
}

// ProjectileExclusions returns the shooter and its in-flight projectiles, the ids a projectile
// of that shooter passes through
func (w *World) ProjectileExclusions(shooter core.Entity) []core.Entity {
	inFlight := w.Projectiles(shooter)
	out := make([]core.Entity, 0, len(inFlight)+1)
	out = append(out, shooter)
	return append(out, inFlight...)
}

// sameShooter reports a projectile pair that must not interact: a projectile and its own
// shooter, or two projectiles fired by the same shooter
func (w *World) sameShooter(a Object, aid core.Entity, b Object, bid core.Entity) bool {
	pa, aIsProj := a.(Projectile)
	pb, bIsProj := b.(Projectile)
	switch {
	case aIsProj && bIsProj:
		return pa.Projectile().Shooter == pb.Projectile().Shooter
	case aIsProj:
		return pa.Projectile().Shooter == bid
	case bIsProj:
		return pb.Projectile().Shooter == aid
	}
	return false
}
