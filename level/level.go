// Package level lays out a playable world: maze walls, pools, the player and random content
package level

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/config"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/object"
	"github.com/siana-blue/poufalouf/parameter"
	"github.com/siana-blue/poufalouf/vmath"
)

const (
	defaultBraiding = 60
	defaultOpenness = 35
	poolClearance   = 4 // Minimum path distance between the start and a pool
	poolMaxCells    = 4
)

// Level describes what Build placed
type Level struct {
	Seed   uint64
	Layout Layout
	Player core.Entity
	Walls  int
	Pools  []core.Point   // Pool seed cells
	Placed map[string]int // Content spawned per kind
	Missed map[string]int // Content dropped after exhausting placement attempts
}

// Build fills an empty world from cfg and spawns an archer driven by player at the start cell
func Build(w *engine.World, cfg config.Level, player object.Controller, log logrus.FieldLogger) (*Level, error) {
	if w.Len() != 0 {
		return nil, errors.New("level: world is not empty")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := vmath.NewFastRand(seed)
	g := w.Grid()

	lv := &Level{
		Seed:   seed,
		Layout: Generate(LayoutConfig{Width: g.Width, Height: g.Height, Braiding: defaultBraiding, Openness: defaultOpenness}, rng),
		Placed: make(map[string]int),
		Missed: make(map[string]int),
	}

	lv.digPools(g, cfg.Pools, rng)
	if err := g.SetTerrain(lv.Layout.Start.X, lv.Layout.Start.Y, component.TerrainSpecialSolid); err != nil {
		return nil, fmt.Errorf("level: start pad: %w", err)
	}

	for _, p := range lv.Layout.Walls() {
		if _, err := w.SpawnAt(object.NewWall(0, 0), p.X, p.Y); err != nil {
			return nil, fmt.Errorf("level: wall at (%d,%d): %w", p.X, p.Y, err)
		}
		lv.Walls++
	}

	inset := float64(g.CellSize-parameter.CharacterSize) / 2
	archer := object.NewArcher(float64(lv.Layout.Start.X*g.CellSize)+inset, float64(lv.Layout.Start.Y*g.CellSize)+inset, player)
	id, err := w.Spawn(archer)
	if err != nil {
		return nil, fmt.Errorf("level: player: %w", err)
	}
	lv.Player = id

	content := []struct {
		kind  string
		count int
		build func() engine.Object
	}{
		{object.KindTurret, cfg.Turrets, func() engine.Object { return object.NewTurret(0, 0) }},
		{object.KindChair, cfg.Chairs, func() engine.Object { return object.NewChair(0, 0) }},
		{object.KindHeart, cfg.Hearts, func() engine.Object { return object.NewHeart(0, 0) }},
		{object.KindMine, cfg.Mines, func() engine.Object { return object.NewMine(0, 0) }},
	}
	for _, c := range content {
		for i := 0; i < c.count; i++ {
			if _, err := lv.place(w, c.build(), rng); err != nil {
				if !errors.Is(err, engine.ErrPlacementExhausted) {
					return nil, fmt.Errorf("level: %s: %w", c.kind, err)
				}
				lv.Missed[c.kind]++
				log.WithError(err).WithField("kind", c.kind).Warn("content dropped")
				continue
			}
			lv.Placed[c.kind]++
		}
	}

	log.WithFields(logrus.Fields{
		"seed":     seed,
		"walls":    lv.Walls,
		"pools":    len(lv.Pools),
		"entities": w.Len(),
	}).Info("level built")
	return lv, nil
}

// place spawns obj at a random free spot away from the start cell
func (lv *Level) place(w *engine.World, obj engine.Object, rng *vmath.FastRand) (core.Entity, error) {
	cs := float64(w.Grid().CellSize)
	keepOut := core.Rect{
		X: float64(lv.Layout.Start.X-1) * cs,
		Y: float64(lv.Layout.Start.Y-1) * cs,
		W: 3 * cs,
		H: 3 * cs,
	}
	for attempt := 0; attempt < parameter.RandomPlacementAttempts; attempt++ {
		id, err := w.PlaceRandom(obj, rng)
		if err != nil {
			return id, err
		}
		if !vmath.Intersects(obj.Body().Bounds(), keepOut) {
			return id, nil
		}
		if err := w.Remove(id); err != nil {
			return core.NoEntity, err
		}
	}
	return core.NoEntity, fmt.Errorf("%w: %s kept landing on the start", engine.ErrPlacementExhausted, obj.Body().Kind)
}

// digPools floods small clusters of reachable passage cells far enough from the start
// Pools alternate between liquid and void
func (lv *Level) digPools(g *engine.Grid, count int, rng *vmath.FastRand) {
	order, dist := lv.Layout.Reachable(lv.Layout.Start)
	var sites []core.Point
	for _, p := range order {
		if dist[p] >= poolClearance {
			sites = append(sites, p)
		}
	}
	rng.Shuffle(len(sites), func(i, j int) { sites[i], sites[j] = sites[j], sites[i] })

	used := make(map[core.Point]bool)
	for _, seed := range sites {
		if len(lv.Pools) >= count {
			break
		}
		if used[seed] {
			continue
		}

		terrain := component.TerrainLiquid
		if len(lv.Pools)%2 == 1 {
			terrain = component.TerrainVoid
		}
		cluster := []core.Point{seed}
		for _, d := range []core.Point{{X: 1}, {Y: 1}, {X: 1, Y: 1}} {
			if len(cluster) >= poolMaxCells {
				break
			}
			p := core.Point{X: seed.X + d.X, Y: seed.Y + d.Y}
			if dp, ok := dist[p]; ok && dp >= poolClearance && !used[p] && rng.Chance(2, 3) {
				cluster = append(cluster, p)
			}
		}
		for _, p := range cluster {
			used[p] = true
			g.Fill(p.X, p.Y, p.X+1, p.Y+1, terrain)
		}
		lv.Pools = append(lv.Pools, seed)
	}
}
