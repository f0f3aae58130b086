// Package debug publishes read-only views of a running world to spectators over HTTP and websocket
package debug

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/status"
)

// EntityView is the serializable state of one entity
type EntityView struct {
	ID          uint64       `msgpack:"id" json:"id"`
	Kind        string       `msgpack:"kind" json:"kind"`
	X           float64      `msgpack:"x" json:"x"`
	Y           float64      `msgpack:"y" json:"y"`
	W           int          `msgpack:"w" json:"w"`
	H           int          `msgpack:"h" json:"h"`
	Orientation string       `msgpack:"dir" json:"orientation"`
	Speed       int          `msgpack:"speed" json:"speed"`
	Height      int          `msgpack:"z" json:"height"`
	HP          int          `msgpack:"hp,omitempty" json:"hp,omitempty"`
	MaxHP       int          `msgpack:"max_hp,omitempty" json:"max_hp,omitempty"`
	Activated   bool         `msgpack:"on,omitempty" json:"activated,omitempty"`
	Activator   uint64       `msgpack:"by,omitempty" json:"activator,omitempty"`
	Shooter     uint64       `msgpack:"shooter,omitempty" json:"shooter,omitempty"`
	Cells       []core.Point `msgpack:"cells" json:"cells"`
}

// Snapshot is a copy of the world taken between ticks
type Snapshot struct {
	Tick     int64          `msgpack:"tick" json:"tick"`
	Width    int            `msgpack:"width" json:"width"`
	Height   int            `msgpack:"height" json:"height"`
	CellSize int            `msgpack:"cell" json:"cell_size"`
	Terrain  []uint8        `msgpack:"terrain" json:"terrain"` // Row-major
	Entities []EntityView   `msgpack:"entities" json:"entities"`
	Metrics  map[string]any `msgpack:"metrics" json:"metrics"`
}

// Capture copies the world state; reg may be nil
// Must run on the goroutine that ticks the world
func Capture(w *engine.World, reg *status.Registry) *Snapshot {
	g := w.Grid()
	s := &Snapshot{
		Tick:     w.Tick(),
		Width:    g.Width,
		Height:   g.Height,
		CellSize: g.CellSize,
		Terrain:  make([]uint8, 0, g.Width*g.Height),
		Entities: make([]EntityView, 0, w.Len()),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			s.Terrain = append(s.Terrain, uint8(g.At(x, y).Terrain))
		}
	}

	for _, id := range w.Entities() {
		obj, ok := w.Object(id)
		if !ok {
			continue
		}
		s.Entities = append(s.Entities, viewOf(id, obj))
	}

	if reg != nil {
		s.Metrics = reg.Snapshot()
	}
	return s
}

func viewOf(id core.Entity, obj engine.Object) EntityView {
	b := obj.Body()
	v := EntityView{
		ID:          uint64(id),
		Kind:        b.Kind,
		X:           b.X,
		Y:           b.Y,
		W:           b.W,
		H:           b.H,
		Orientation: b.Orientation.String(),
		Speed:       b.Speed,
		Height:      b.Height,
		Cells:       append([]core.Point(nil), b.Cells...),
	}
	if h, ok := obj.(interface {
		Health() *component.HealthComponent
	}); ok {
		v.HP, v.MaxHP = h.Health().HP, h.Health().Max
	}
	if a, ok := obj.(engine.Activable); ok && a.Activation().Activated {
		v.Activated = true
		v.Activator = uint64(a.Activation().Activator)
	}
	if p, ok := obj.(engine.Projectile); ok {
		v.Shooter = uint64(p.Projectile().Shooter)
	}
	return v
}

// Entity returns the view of id, false when absent
func (s *Snapshot) Entity(id uint64) (EntityView, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityView{}, false
}

// Encode serializes the snapshot for the websocket stream
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a websocket frame
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
