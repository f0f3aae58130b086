package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/event"
	"github.com/siana-blue/poufalouf/vmath"
)

// World owns the entity arena, the spatial grid and the event stream
// All mutation happens on the simulation goroutine
type World struct {
	grid    *Grid
	objects *Store[Object]
	nextID  core.Entity

	// Projectiles produced by Shoot during a tick, spawned at the end of the shooter's step
	pending map[core.Entity][]Object

	events *event.EventQueue
	log    logrus.FieldLogger
	loader AnimationLoader

	tick    int64
	ticking bool

	activations int64
}

// Option configures a World
type Option func(*World)

// WithLogger routes world diagnostics to l
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *World) { w.log = l }
}

// WithAnimationLoader installs the loader consulted when an entity without a clock is spawned
func WithAnimationLoader(l AnimationLoader) Option {
	return func(w *World) { w.loader = l }
}

// WithEventQueue replaces the default event queue
func WithEventQueue(q *event.EventQueue) Option {
	return func(w *World) { w.events = q }
}

// NewWorld creates an empty world over grid
func NewWorld(grid *Grid, opts ...Option) *World {
	w := &World{
		grid:    grid,
		objects: NewStore[Object](),
		nextID:  1,
		pending: make(map[core.Entity][]Object),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.events == nil {
		w.events = event.NewEventQueue(0)
	}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}
	return w
}

// Grid returns the spatial grid
func (w *World) Grid() *Grid { return w.grid }

// Events returns the queue drained by the simulation at the end of each tick
func (w *World) Events() *event.EventQueue { return w.events }

// Logger returns the world logger
func (w *World) Logger() logrus.FieldLogger { return w.log }

// Tick returns the number of ticks started so far
func (w *World) Tick() int64 { return w.tick }

// Ticking reports whether a tick is in progress
func (w *World) Ticking() bool { return w.ticking }

// Object returns the live object for id
func (w *World) Object(id core.Entity) (Object, bool) {
	return w.objects.Get(id)
}

// Body returns the body of a live object
func (w *World) Body(id core.Entity) (*component.BodyComponent, bool) {
	obj, ok := w.objects.Get(id)
	if !ok {
		return nil, false
	}
	return obj.Body(), true
}

// Entities returns a read-only view of live ids in spawn order
func (w *World) Entities() []core.Entity {
	return w.objects.Entities()
}

// Len returns the live entity count
func (w *World) Len() int {
	return w.objects.Len()
}

// Spawn adds obj to the arena, computes its cells and returns its new id
func (w *World) Spawn(obj Object) (core.Entity, error) {
	if obj == nil {
		return core.NoEntity, fmt.Errorf("%w: nil object", ErrInvalidBody)
	}
	b := obj.Body()
	if b == nil {
		return core.NoEntity, fmt.Errorf("%w: object without body", ErrInvalidBody)
	}
	if b.W < 0 || b.H < 0 {
		return core.NoEntity, fmt.Errorf("%w: %s has negative size %dx%d", ErrInvalidBody, b.Kind, b.W, b.H)
	}
	if p, ok := obj.(Projectile); ok {
		shooter := p.Projectile().Shooter
		if !w.objects.Has(shooter) {
			return core.NoEntity, fmt.Errorf("%w: projectile shooter %d", ErrUnknownEntity, shooter)
		}
	}
	if b.Anim == nil && w.loader != nil {
		anim, err := w.loader.Load(b.Kind)
		if err != nil {
			return core.NoEntity, fmt.Errorf("load animation for %s: %w", b.Kind, err)
		}
		b.Anim = anim
	}

	id := w.nextID
	w.nextID++

	if a, ok := obj.(Activable); ok {
		a.Activation().Reset(id)
	}
	b.Cells = nil
	w.objects.Set(id, obj)
	b.SyncZones()
	w.RefreshCells(id)

	w.emit(event.EventSpawned, &event.EntityPayload{Entity: id, Kind: b.Kind})
	return id, nil
}

// SpawnAt places obj with its top-left corner on cell (x, y) and spawns it
func (w *World) SpawnAt(obj Object, x, y int) (core.Entity, error) {
	if !w.grid.InBounds(x, y) {
		return core.NoEntity, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfBounds, x, y)
	}
	if obj == nil || obj.Body() == nil {
		return core.NoEntity, fmt.Errorf("%w: nil object", ErrInvalidBody)
	}
	b := obj.Body()
	b.X = float64(x * w.grid.CellSize)
	b.Y = float64(y * w.grid.CellSize)
	return w.Spawn(obj)
}

// Remove takes id out of the arena
// During a tick the entity is only marked finished and leaves with the end-of-tick cleanup
func (w *World) Remove(id core.Entity) error {
	obj, ok := w.objects.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	if w.ticking {
		obj.Body().Finished = true
		return nil
	}
	w.detach(id, obj, event.RemovalExternal)
	return nil
}

// detach clears grid membership, shooter bookkeeping and the arena slot
func (w *World) detach(id core.Entity, obj Object, reason event.RemovalReason) {
	b := obj.Body()
	for _, p := range b.Cells {
		if c := w.grid.At(p.X, p.Y); c != nil {
			c.remove(id)
		}
	}
	b.Cells = nil

	if p, ok := obj.(Projectile); ok {
		if shooter, ok := w.objects.Get(p.Projectile().Shooter); ok {
			if s, ok := shooter.(Shooting); ok {
				s.Shooter().Forget(id)
			}
		}
	}
	delete(w.pending, id)

	w.objects.Remove(id)
	w.emit(event.EventRemoved, &event.RemovedPayload{Entity: id, Kind: b.Kind, Reason: reason})
}

// RefreshCells recomputes the cells covered by id's image zone and updates grid membership
// Idempotent: a second call without movement changes nothing
func (w *World) RefreshCells(id core.Entity) {
	obj, ok := w.objects.Get(id)
	if !ok {
		return
	}
	b := obj.Body()
	next := w.cellsFor(b)

	for _, p := range b.Cells {
		if !containsPoint(next, p) {
			if c := w.grid.At(p.X, p.Y); c != nil {
				c.remove(id)
			}
		}
	}
	for _, p := range next {
		w.grid.At(p.X, p.Y).add(id)
	}

	if !samePoints(b.Cells, next) {
		b.Cells = next
	}
}

// cellsFor lists the in-range cells covered by the image zone
// A body without an enabled image zone occupies no cell
func (w *World) cellsFor(b *component.BodyComponent) []core.Point {
	img := b.Zone(component.ZoneImage)
	if !img.Enabled() {
		return nil
	}
	cs := w.grid.CellSize
	x0, x1 := vmath.CellSpan(img.Abs.X, img.Abs.W, cs)
	y0, y1 := vmath.CellSpan(img.Abs.Y, img.Abs.H, cs)

	cells := make([]core.Point, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if w.grid.InBounds(x, y) {
				cells = append(cells, core.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Query calls fn for every live, unfinished entity occupying a cell covered by r, once each
// Returning false stops the scan
func (w *World) Query(r core.Rect, fn func(id core.Entity, obj Object) bool) {
	var seen []core.Entity
	for _, p := range w.grid.CellsIn(r) {
		for _, id := range w.grid.At(p.X, p.Y).Occupants() {
			if containsEntity(seen, id) {
				continue
			}
			seen = append(seen, id)
			obj, ok := w.objects.Get(id)
			if !ok || obj.Body().Finished {
				continue
			}
			if !fn(id, obj) {
				return
			}
		}
	}
}

// Damage applies amount to target when it is damageable
func (w *World) Damage(target core.Entity, amount int, source core.Entity) bool {
	obj, ok := w.objects.Get(target)
	if !ok {
		return false
	}
	d, ok := obj.(Damageable)
	if !ok {
		return false
	}
	d.TakeDamage(w, target, amount)
	w.emit(event.EventDamage, &event.AmountPayload{Target: target, Source: source, Kind: obj.Body().Kind, Amount: amount})
	return true
}

// Heal restores up to amount on a healable target, false when nothing was restored
func (w *World) Heal(target core.Entity, amount int, source core.Entity) bool {
	obj, ok := w.objects.Get(target)
	if !ok {
		return false
	}
	h, ok := obj.(Healable)
	if !ok || !h.Heal(w, target, amount) {
		return false
	}
	w.emit(event.EventHeal, &event.AmountPayload{Target: target, Source: source, Kind: obj.Body().Kind, Amount: amount})
	return true
}

// Emit queues an event stamped with the current tick
func (w *World) Emit(t event.EventType, payload any) {
	w.emit(t, payload)
}

func (w *World) emit(t event.EventType, payload any) {
	w.events.Push(event.GameEvent{Type: t, Payload: payload, Tick: w.tick})
}

func containsPoint(ps []core.Point, p core.Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

func samePoints(a, b []core.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsEntity(es []core.Entity, e core.Entity) bool {
	for _, o := range es {
		if o == e {
			return true
		}
	}
	return false
}
