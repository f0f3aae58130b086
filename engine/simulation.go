package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/parameter"
	"github.com/siana-blue/poufalouf/status"
)

// Simulation drives a World one tick at a time
//
// Tick order:
//  1. every entity present at tick start steps, in spawn order, when its update interval elapsed
//  2. the activation sweep pairs movers with activable entities
//  3. finished entities are removed
//  4. queued events are dispatched to registered handlers
//  5. after-tick observers run
type Simulation struct {
	world  *World
	router *event.Router[*World]
	log    logrus.FieldLogger

	lastNow int64
	started bool

	checkInvariants bool
	afterTick       []func(*World)

	// Entities finished by terrain this tick, for the removal reason
	lost map[core.Entity]struct{}
	// Entities whose update failed this tick, left out of the activation sweep
	skipped map[core.Entity]struct{}

	statusReg       *status.Registry
	statTicks       *atomic.Int64
	statEntities    *atomic.Int64
	statActivations *atomic.Int64
	statSkipped     *atomic.Int64
	statRemoved     *atomic.Int64
	statProjectiles *atomic.Int64
	statEvents      *atomic.Int64
	statViolations  *atomic.Int64
	statTickMillis  *status.AtomicFloat
	statTickPeak    *status.AtomicFloat
}

// SimOption configures a Simulation
type SimOption func(*Simulation)

// WithInvariantChecks verifies grid membership after every tick and logs violations
func WithInvariantChecks(enabled bool) SimOption {
	return func(s *Simulation) { s.checkInvariants = enabled }
}

// WithStatus publishes metrics into reg instead of a private registry
func WithStatus(reg *status.Registry) SimOption {
	return func(s *Simulation) { s.statusReg = reg }
}

// NewSimulation wraps w; events queued by w are routed to handlers registered here
func NewSimulation(w *World, opts ...SimOption) *Simulation {
	s := &Simulation{
		world:   w,
		router:  event.NewRouter[*World](w.Events()),
		log:     w.Logger(),
		lost:    make(map[core.Entity]struct{}),
		skipped: make(map[core.Entity]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.statusReg == nil {
		s.statusReg = status.NewRegistry()
	}
	s.statTicks = s.statusReg.Ints.Get(status.MetricTicks)
	s.statEntities = s.statusReg.Ints.Get(status.MetricEntities)
	s.statActivations = s.statusReg.Ints.Get(status.MetricActivations)
	s.statSkipped = s.statusReg.Ints.Get(status.MetricSkipped)
	s.statRemoved = s.statusReg.Ints.Get(status.MetricRemoved)
	s.statProjectiles = s.statusReg.Ints.Get(status.MetricProjectiles)
	s.statEvents = s.statusReg.Ints.Get(status.MetricEvents)
	s.statViolations = s.statusReg.Ints.Get(status.MetricViolations)
	s.statTickMillis = s.statusReg.Floats.Get(status.MetricTickMillis)
	s.statTickPeak = s.statusReg.Floats.Get(status.MetricTickPeak)
	return s
}

// World returns the simulated world
func (s *Simulation) World() *World { return s.world }

// Status returns the metrics registry
func (s *Simulation) Status() *status.Registry { return s.statusReg }

// RegisterEventHandler adds an event handler to the router, must be called before the first tick
func (s *Simulation) RegisterEventHandler(h event.Handler[*World]) {
	s.router.Register(h)
}

// OnAfterTick adds an observer run at the end of every tick, after event dispatch
func (s *Simulation) OnAfterTick(fn func(*World)) {
	s.afterTick = append(s.afterTick, fn)
}

// OnTick advances the world to nowMillis
// Elapsed time since the previous call feeds each entity's update interval; the first call
// counts as zero elapsed
func (s *Simulation) OnTick(nowMillis int64) {
	start := time.Now()
	w := s.world

	var elapsed int64
	if s.started && nowMillis > s.lastNow {
		elapsed = nowMillis - s.lastNow
	}
	s.lastNow = nowMillis
	s.started = true

	w.tick++
	w.ticking = true
	activationsBefore := w.activations
	clear(s.skipped)

	for _, id := range w.objects.Snapshot() {
		s.step(id, elapsed)
	}
	s.sweep()

	w.ticking = false
	removed := s.removeFinished()
	delivery := s.router.Dispatch(w)

	if s.checkInvariants {
		if err := w.CheckInvariants(); err != nil {
			s.statViolations.Add(1)
			s.log.WithError(err).WithField("tick", w.tick).Error("grid invariants violated")
		}
	}

	for _, fn := range s.afterTick {
		fn(w)
	}

	s.statTicks.Add(1)
	s.statEntities.Store(int64(w.Len()))
	s.statActivations.Add(w.activations - activationsBefore)
	s.statRemoved.Add(int64(removed))
	s.statEvents.Add(int64(delivery.Events))
	s.statProjectiles.Store(int64(s.countProjectiles()))
	ms := float64(time.Since(start).Microseconds()) / 1000
	s.statTickMillis.Set(ms)
	s.statTickPeak.Peak(ms)
}

// step runs one entity's update, isolating failures to that entity
func (s *Simulation) step(id core.Entity, elapsed int64) {
	obj, ok := s.world.Object(id)
	if !ok {
		return
	}
	b := obj.Body()
	if b.Finished {
		return
	}

	b.Elapsed += elapsed
	if b.Elapsed < b.UpdateInterval {
		return
	}
	b.Elapsed = 0

	defer func() {
		if r := recover(); r != nil {
			s.skip(id, b, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := s.update(id, obj); err != nil {
		s.skip(id, b, err)
	}
}

// update is the per-entity pipeline: cells, animation, behaviour, effect, zones, velocity,
// terrain, pending projectiles
func (s *Simulation) update(id core.Entity, obj Object) error {
	w := s.world
	b := obj.Body()

	w.RefreshCells(id)
	if b.Anim != nil {
		b.Anim.Advance()
	}

	if !b.Standby {
		if beh, ok := obj.(Behavior); ok {
			if err := beh.Update(w, id); err != nil {
				return fmt.Errorf("update: %w", err)
			}
		}
		if a, ok := obj.(Activable); ok && a.Activation().Activated && !b.Finished {
			if err := a.PlayEffect(w, id); err != nil {
				return fmt.Errorf("effect: %w", err)
			}
		}
	}

	b.SyncZones()
	b.Decay()
	b.Fall(parameter.Gravity)
	s.checkTerrain(id, obj)

	if err := w.flushPending(id); err != nil {
		return fmt.Errorf("spawn projectiles: %w", err)
	}
	return nil
}

// checkTerrain finishes a grounded, non-flying mover standing only on liquid or void
func (s *Simulation) checkTerrain(id core.Entity, obj Object) {
	b := obj.Body()
	if b.Finished || !b.Mobile || b.Flying || b.Height > 0 || len(b.Cells) == 0 {
		return
	}
	for _, p := range b.Cells {
		if !s.world.grid.At(p.X, p.Y).Terrain.Deadly() {
			return
		}
	}
	s.world.Damage(id, parameter.LethalDamage, core.NoEntity)
	b.Finished = true
	s.lost[id] = struct{}{}
	s.log.WithFields(logrus.Fields{"entity": id, "kind": b.Kind, "tick": s.world.tick}).Debug("lost to terrain")
}

// sweep activates every idle activable whose effect zone a mobile mover's effect zone touches
// Projectiles test along their orientation, other movers test plain overlap
func (s *Simulation) sweep() {
	w := s.world
	for _, mid := range w.objects.Snapshot() {
		mover, ok := w.objects.Get(mid)
		if !ok {
			continue
		}
		mb := mover.Body()
		if mb.Finished || !mb.Mobile || s.wasSkipped(mid) {
			continue
		}
		mz := mb.Zone(component.ZoneEffect)
		if !mz.Enabled() {
			continue
		}
		if a, ok := mover.(Activable); ok && a.Activation().Activated {
			continue
		}
		dir := core.NoDirection
		if _, ok := mover.(Projectile); ok {
			dir = mb.Orientation
		}

		var seen []core.Entity
		for _, p := range w.grid.Neighborhood(mb.Cells) {
			for _, cid := range w.grid.At(p.X, p.Y).Occupants() {
				if cid == mid || containsEntity(seen, cid) {
					continue
				}
				seen = append(seen, cid)
				s.tryActivate(mid, mover, mz, dir, cid)
			}
			// A mover whose own activation fired during the scan stops sweeping
			if a, ok := mover.(Activable); ok && a.Activation().Activated {
				break
			}
		}
	}
}

func (s *Simulation) tryActivate(mid core.Entity, mover Object, mz *component.Zone, dir core.Direction, cid core.Entity) {
	w := s.world
	cand, ok := w.objects.Get(cid)
	if !ok || s.wasSkipped(cid) {
		return
	}
	a, ok := cand.(Activable)
	if !ok || a.Activation().Activated || cand.Body().Finished {
		return
	}
	if w.sameShooter(mover, mid, cand, cid) {
		return
	}
	if !mz.CollidesWith(cand.Body().Zone(component.ZoneEffect), dir) {
		return
	}
	if _, err := w.Activate(cid, mid); err != nil {
		s.log.WithError(err).WithField("entity", cid).Warn("activation failed")
	}
}

// removeFinished detaches every finished entity, in spawn order
func (s *Simulation) removeFinished() int {
	w := s.world
	n := 0
	for _, id := range w.objects.Snapshot() {
		obj, _ := w.objects.Get(id)
		if !obj.Body().Finished {
			continue
		}
		reason := event.RemovalFinished
		if _, ok := s.lost[id]; ok {
			reason = event.RemovalTerrain
			delete(s.lost, id)
		}
		w.detach(id, obj, reason)
		n++
	}
	return n
}

func (s *Simulation) skip(id core.Entity, b *component.BodyComponent, err error) {
	s.skipped[id] = struct{}{}
	s.statSkipped.Add(1)
	s.log.WithError(err).WithFields(logrus.Fields{"entity": id, "kind": b.Kind, "tick": s.world.tick}).Error("entity update skipped")
	s.world.emit(event.EventEntitySkipped, &event.SkippedPayload{Entity: id, Kind: b.Kind, Err: err.Error()})
}

func (s *Simulation) wasSkipped(id core.Entity) bool {
	_, ok := s.skipped[id]
	return ok
}

func (s *Simulation) countProjectiles() int {
	n := 0
	for _, id := range s.world.objects.Entities() {
		obj, _ := s.world.objects.Get(id)
		if _, ok := obj.(Projectile); ok {
			n++
		}
	}
	return n
}
