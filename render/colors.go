package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/siana-blue/poufalouf/component"
)

// Terrain backgrounds
var (
	RgbBackground   = tcell.NewRGBColor(26, 27, 38)  // Solid ground
	RgbSpecialSolid = tcell.NewRGBColor(48, 44, 70)  // Start pad
	RgbLiquid       = tcell.NewRGBColor(20, 60, 140) // Water
	RgbVoid         = tcell.NewRGBColor(0, 0, 0)     // Pit
)

// Entity foregrounds
var (
	RgbWall       = tcell.NewRGBColor(120, 120, 135)
	RgbPlayer     = tcell.NewRGBColor(255, 165, 0)
	RgbPlayerHurt = tcell.NewRGBColor(255, 80, 80)
	RgbCharacter  = tcell.NewRGBColor(140, 190, 255)
	RgbMine       = tcell.NewRGBColor(255, 80, 80)
	RgbMineSpent  = tcell.NewRGBColor(90, 60, 60)
	RgbHeart      = tcell.NewRGBColor(255, 105, 180)
	RgbChair      = tcell.NewRGBColor(160, 110, 60)
	RgbTurret     = tcell.NewRGBColor(0, 200, 200)
	RgbProjectile = tcell.NewRGBColor(255, 255, 0)
	RgbImpact     = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBg   = tcell.NewRGBColor(40, 40, 60)
	RgbPausedBg   = tcell.NewRGBColor(128, 0, 128)
)

// terrainBackground maps a ground type to its cell background
func terrainBackground(t component.Terrain) tcell.Color {
	switch t {
	case component.TerrainSpecialSolid:
		return RgbSpecialSolid
	case component.TerrainLiquid:
		return RgbLiquid
	case component.TerrainVoid:
		return RgbVoid
	}
	return RgbBackground
}
