package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/siana-blue/poufalouf/component"
	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/engine"
	"github.com/siana-blue/poufalouf/object"
)

// CellColumns is the number of screen columns per grid cell, terminal glyphs being twice as tall as wide
const CellColumns = 2

// HUD is the status line content
type HUD struct {
	Player core.Entity
	Paused bool
	Seed   uint64
}

// Terminal draws a world onto a tcell screen, one grid cell per CellColumns x 1 characters,
// with a status line below the grid
type Terminal struct {
	screen  tcell.Screen
	originX int
	originY int
}

// NewTerminal creates a renderer drawing at the top-left corner of screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Screen returns the underlying tcell screen
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Draw renders the whole frame and shows it
// Must run on the goroutine that ticks the world
func (t *Terminal) Draw(w *engine.World, hud HUD) {
	t.screen.Clear()
	g := w.Grid()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.At(x, y)
			style := tcell.StyleDefault.Background(terrainBackground(cell.Terrain))

			main, fill := ' ', ' '
			if id, ok := topmost(w, cell.Occupants()); ok {
				obj, _ := w.Object(id)
				gl := glyphFor(obj, id == hud.Player)
				main, fill = gl.main, gl.fill
				style = style.Foreground(gl.color)
			}
			sx, sy := t.originX+x*CellColumns, t.originY+y
			t.screen.SetContent(sx, sy, main, nil, style)
			t.screen.SetContent(sx+1, sy, fill, nil, style)
		}
	}

	t.drawStatusBar(w, hud, t.originY+g.Height, g.Width*CellColumns)
	t.screen.Show()
}

// drawStatusBar writes the player state and run counters
func (t *Terminal) drawStatusBar(w *engine.World, hud HUD, row, width int) {
	bg := RgbStatusBg
	if hud.Paused {
		bg = RgbPausedBg
	}
	style := tcell.StyleDefault.Foreground(RgbStatusBar).Background(bg)

	text := fmt.Sprintf(" tick %d  entities %d", w.Tick(), w.Len())
	if obj, ok := w.Object(hud.Player); ok {
		if d, ok := obj.(interface {
			Health() *component.HealthComponent
		}); ok {
			h := d.Health()
			text = fmt.Sprintf(" HP %d/%d  shots %d ", h.HP, h.Max, w.ShotCount(hud.Player)) + "|" + text
		}
	} else if hud.Player != core.NoEntity {
		text = " GAME OVER |" + text
	}
	if hud.Seed != 0 {
		text += fmt.Sprintf("  seed %d", hud.Seed)
	}
	if hud.Paused {
		text += "  [PAUSED]"
	}

	col := t.originX
	for _, ch := range text {
		if col-t.originX >= width {
			break
		}
		t.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col-t.originX < width; col++ {
		t.screen.SetContent(col, row, ' ', nil, style)
	}
}

type glyph struct {
	main, fill rune
	color      tcell.Color
	priority   int
}

// topmost picks the occupant drawn on a cell: highest priority, latest spawned on ties
func topmost(w *engine.World, occupants []core.Entity) (core.Entity, bool) {
	best, bestPrio := core.NoEntity, -1
	for _, id := range occupants {
		obj, ok := w.Object(id)
		if !ok || obj.Body().Finished {
			continue
		}
		if p := glyphFor(obj, false).priority; p >= bestPrio {
			best, bestPrio = id, p
		}
	}
	return best, best != core.NoEntity
}

func glyphFor(obj engine.Object, player bool) glyph {
	b := obj.Body()
	switch o := obj.(type) {
	case *object.Projectile:
		if o.Projectile().Phase != component.ProjectileFlying {
			return glyph{'*', ' ', RgbImpact, 6}
		}
		return glyph{projectileRune(b.Orientation), ' ', RgbProjectile, 6}
	case *object.Archer, *object.Character:
		color := RgbCharacter
		if player {
			color = RgbPlayer
			if b.Anim != nil && b.Anim.Status() == component.AnimHurt {
				color = RgbPlayerHurt
			}
		}
		if b.Airborne() {
			return glyph{'@', '\'', color, 5}
		}
		return glyph{'@', ' ', color, 5}
	case *object.Turret:
		return glyph{'T', projectileRune(b.Orientation), RgbTurret, 4}
	case *object.Chair:
		if o.Occupant() != core.NoEntity {
			return glyph{'h', ' ', RgbChair, 2}
		}
		return glyph{'h', ' ', RgbChair, 3}
	case *object.Heart:
		return glyph{'♥', ' ', RgbHeart, 3}
	case *object.Mine:
		if o.Exploded() {
			return glyph{'.', ' ', RgbMineSpent, 1}
		}
		return glyph{'o', ' ', RgbMine, 3}
	case *object.Wall:
		return glyph{'█', '█', RgbWall, 1}
	}
	return glyph{'?', ' ', RgbStatusBar, 0}
}

func projectileRune(d core.Direction) rune {
	switch d {
	case core.North, core.South:
		return '|'
	case core.East, core.West:
		return '-'
	case core.NorthEast, core.SouthWest:
		return '/'
	case core.NorthWest, core.SouthEast:
		return '\\'
	}
	return '·'
}
