package object

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/parameter"
)

// Turret is a static shooter that fires at damageable entities inside its detection zone
type Turret struct {
	body      component.BodyComponent
	shooter   component.ShooterComponent
	FireEvery int
	cooldown  int
}

func NewTurret(x, y float64) *Turret {
	b := component.NewBody(KindTurret, x, y, parameter.CellSize, parameter.CellSize)
	b.FillZone(component.ZoneCollision)
	r := float64(parameter.TurretRange)
	b.SetZone(component.ZoneDetection, core.Rect{X: -r, Y: -r, W: float64(parameter.CellSize) + 2*r, H: float64(parameter.CellSize) + 2*r})
	b.Orientation = core.South
	return &Turret{body: b, FireEvery: parameter.TurretFireEvery}
}

func (t *Turret) Body() *component.BodyComponent { return &t.body }

func (t *Turret) Shooter() *component.ShooterComponent { return &t.shooter }

func (t *Turret) Update(w *engine.World, self core.Entity) error {
	if t.cooldown > 0 {
		t.cooldown--
		return nil
	}
	target := t.acquire(w, self)
	if target == core.NoEntity {
		setAnim(t.body.Anim, component.AnimIdle)
		return nil
	}

	tb, _ := w.Body(target)
	tx, ty := tb.Bounds().Center()
	cx, cy := t.body.Bounds().Center()
	if aim := core.DirectionTo(tx-cx, ty-cy); aim.Valid() {
		t.body.Orientation = aim
	}
	t.cooldown = t.FireEvery
	setAnim(t.body.Anim, component.AnimActivated)
	return w.Shoot(self)
}

// acquire returns the first damageable entity whose image zone touches the detection zone
func (t *Turret) acquire(w *engine.World, self core.Entity) core.Entity {
	det := t.body.Zone(component.ZoneDetection)
	if !det.Enabled() {
		return core.NoEntity
	}
	found := core.NoEntity
	w.Query(det.Abs, func(id core.Entity, obj engine.Object) bool {
		if id == self {
			return true
		}
		if _, ok := obj.(engine.Damageable); !ok {
			return true
		}
		if det.CollidesWith(obj.Body().Zone(component.ZoneImage), core.NoDirection) {
			found = id
			return false
		}
		return true
	})
	return found
}

func (t *Turret) Volley(w *engine.World, self core.Entity) ([]engine.Object, error) {
	p, err := NewProjectile(self, t.shooter.Volleys+1, t.body.Bounds(), t.body.Orientation, parameter.ProjectileStrength, parameter.ProjectileSpeed)
	if err != nil {
		return nil, err
	}
	return []engine.Object{p}, nil
}
