package component

// Terrain is the ground type of a grid cell
type Terrain uint8

const (
	TerrainSolid        Terrain = iota
	TerrainSpecialSolid         // Walkable, rendered differently
	TerrainLiquid
	TerrainVoid
)

var terrainNames = [...]string{"solid", "special", "liquid", "void"}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "invalid"
}

// Deadly reports terrain that finishes a grounded, non-flying mover
func (t Terrain) Deadly() bool {
	return t == TerrainLiquid || t == TerrainVoid
}
