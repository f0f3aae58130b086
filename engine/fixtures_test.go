package engine

import (
	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
)

// block is a static obstacle
type block struct {
	body component.BodyComponent
}

func newBlock(x, y float64, w, h int) *block {
	b := component.NewBody("block", x, y, w, h)
	b.FillZone(component.ZoneCollision)
	return &block{body: b}
}

func (b *block) Body() *component.BodyComponent { return &b.body }

// walker is a mobile, damageable entity with a scripted update
type walker struct {
	body    component.BodyComponent
	updates int
	damage  []int
	fail    error
	panics  bool
}

func newWalker(x, y float64, size int) *walker {
	b := component.NewBody("walker", x, y, size, size)
	b.FillZone(component.ZoneCollision)
	b.FillZone(component.ZoneEffect)
	b.Mobile = true
	return &walker{body: b}
}

func (w *walker) Body() *component.BodyComponent { return &w.body }

func (w *walker) Update(world *World, self core.Entity) error {
	w.updates++
	if w.panics {
		panic("walker exploded")
	}
	return w.fail
}

func (w *walker) TakeDamage(world *World, self core.Entity, amount int) {
	w.damage = append(w.damage, amount)
}

// pad is an activable entity recording its hooks
type pad struct {
	body          component.BodyComponent
	act           component.ActivationComponent
	accept        bool
	hooks         int
	effects       int
	deactivations int
}

func newPad(x, y float64, size int) *pad {
	b := component.NewBody("pad", x, y, size, size)
	b.FillZone(component.ZoneEffect)
	return &pad{body: b, accept: true}
}

func (p *pad) Body() *component.BodyComponent { return &p.body }
func (p *pad) Activation() *component.ActivationComponent { return &p.act }

func (p *pad) OnActivate(w *World, self, activator core.Entity) bool {
	p.hooks++
	return p.accept
}

func (p *pad) PlayEffect(w *World, self core.Entity) error {
	p.effects++
	return nil
}

func (p *pad) OnDeactivate(w *World, self core.Entity) {
	p.deactivations++
}

// gun shoots `per` bolts eastward per volley, and fires from its update when armed
type gun struct {
	body    component.BodyComponent
	shooter component.ShooterComponent
	per     int
	armed   bool
}

func newGun(x, y float64) *gun {
	b := component.NewBody("gun", x, y, 32, 32)
	b.FillZone(component.ZoneCollision)
	return &gun{body: b, per: 1}
}

func (g *gun) Body() *component.BodyComponent { return &g.body }
func (g *gun) Shooter() *component.ShooterComponent { return &g.shooter }

func (g *gun) Update(w *World, self core.Entity) error {
	if g.armed {
		g.armed = false
		return w.Shoot(self)
	}
	return nil
}

func (g *gun) Volley(w *World, self core.Entity) ([]Object, error) {
	out := make([]Object, 0, g.per)
	for i := 0; i < g.per; i++ {
		out = append(out, newBolt(self, g.body.X+40, g.body.Y+12, 0))
	}
	return out, nil
}

// bolt is a minimal projectile
type bolt struct {
	body component.BodyComponent
	act  component.ActivationComponent
	proj component.ProjectileComponent
	hits []core.Entity
}

func newBolt(shooter core.Entity, x, y float64, speed int) *bolt {
	b := component.NewBody("bolt", x, y, 8, 8)
	b.FillZone(component.ZoneCollision)
	b.FillZone(component.ZoneEffect)
	b.Mobile = true
	b.Flying = true
	b.Orientation = core.East
	b.Speed = speed
	return &bolt{body: b, proj: component.ProjectileComponent{Shooter: shooter}}
}

func (b *bolt) Body() *component.BodyComponent { return &b.body }
func (b *bolt) Activation() *component.ActivationComponent { return &b.act }
func (b *bolt) Projectile() *component.ProjectileComponent { return &b.proj }
func (b *bolt) PlayEffect(w *World, self core.Entity) error { return nil }
func (b *bolt) OnDeactivate(w *World, self core.Entity) {}

func (b *bolt) OnActivate(w *World, self, activator core.Entity) bool {
	b.hits = append(b.hits, activator)
	b.body.Speed = 0
	return true
}

func (b *bolt) Update(w *World, self core.Entity) error {
	if b.act.Activated {
		return nil
	}
	if hit := w.Move(self, b.body.Orientation, b.body.Speed, w.ProjectileExclusions(b.proj.Shooter)...); hit != core.NoEntity {
		_, err := w.Activate(self, hit)
		return err
	}
	return nil
}
