package maps

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Arena generation parameters.
const (
	pillarThreshold = 0.62
	noiseScale      = 0.18
	clearRadius     = 3
	wallTile        = 1
	pillarTile      = 2
)

// arenaItems are scattered on free cells of generated arenas.
var arenaItems = []string{"health", "health", "ammo", "ammo", "armor"}

// GenerateArena builds a walled survival arena. Pillars are placed where
// Perlin noise peaks; a disc around the centre, where the player spawns, is
// kept clear. Positions are in world units of tileSize. The same seed always
// yields the same arena.
func GenerateArena(cols, rows int, tileSize float64, seed int64) *Map {
	if tileSize <= 0 {
		tileSize = 64
	}
	if cols < 8 {
		cols = 8
	}
	if rows < 8 {
		rows = 8
	}

	noise := perlin.NewPerlin(2, 2, 3, seed)
	cx, cy := cols/2, rows/2

	tiles := make([][]int, rows)
	for y := range tiles {
		tiles[y] = make([]int, cols)
		for x := range tiles[y] {
			switch {
			case x == 0 || y == 0 || x == cols-1 || y == rows-1:
				tiles[y][x] = wallTile
			case near(x, y, cx, cy, clearRadius):
				// spawn area
			case (noise.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale)+1)/2 > pillarThreshold:
				tiles[y][x] = pillarTile
			}
		}
	}

	m := &Map{
		Name:  "arena",
		Tiles: tiles,
		PlayerStart: Point{
			X: float64(cx)*tileSize + tileSize/4,
			Y: float64(cy)*tileSize + tileSize/4,
		},
	}

	rng := rand.New(rand.NewSource(seed))
	var free [][2]int
	for y, row := range tiles {
		for x, t := range row {
			if t == 0 && !near(x, y, cx, cy, clearRadius) {
				free = append(free, [2]int{x, y})
			}
		}
	}
	for _, typ := range arenaItems {
		if len(free) == 0 {
			break
		}
		i := rng.Intn(len(free))
		cell := free[i]
		free = append(free[:i], free[i+1:]...)
		m.Items = append(m.Items, ItemSpawn{
			X:    float64(cell[0])*tileSize + tileSize/3,
			Y:    float64(cell[1])*tileSize + tileSize/3,
			Type: typ,
		})
	}

	return m
}

func near(x, y, cx, cy, r int) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
