// Package collision answers "is this box blocked?" against the static tile
// grid and resolves entity movement one axis at a time, notifying both
// parties of every entity overlap.
package collision

import "math"

// Grid is an immutable wall/free map indexed [row][col].
type Grid struct {
	walls    [][]bool
	cols     int
	tileSize float64
}

// BuildGrid derives the collision grid from map data.
//
// A non-empty explicit layer wins (non-zero cell = wall). Otherwise tiles are
// used, where any tile id > 0 is a wall. Without either the grid is empty and
// every box collides. Ragged rows are padded with walls.
func BuildGrid(tiles, layer [][]int, tileSize float64) *Grid {
	if tileSize <= 0 {
		tileSize = 64
	}

	src := tiles
	if len(layer) > 0 {
		src = layer
	}

	cols := 0
	for _, row := range src {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return &Grid{tileSize: tileSize}
	}

	walls := make([][]bool, len(src))
	for y, row := range src {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			if x >= len(row) {
				walls[y][x] = true
				continue
			}
			walls[y][x] = row[x] > 0 || (len(layer) > 0 && row[x] != 0)
		}
	}

	return &Grid{walls: walls, cols: cols, tileSize: tileSize}
}

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int {
	return len(g.walls)
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int {
	return g.cols
}

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool {
	return g.Rows() == 0 || g.cols == 0
}

// TileSize returns the world size of one tile edge.
func (g *Grid) TileSize() float64 {
	return g.tileSize
}

// InBounds reports whether the cell exists.
func (g *Grid) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && ty < g.Rows() && tx < g.cols
}

// IsWall reports whether the cell blocks movement. Cells outside the grid
// are walls.
func (g *Grid) IsWall(tx, ty int) bool {
	if !g.InBounds(tx, ty) {
		return true
	}
	return g.walls[ty][tx]
}

// TileAt converts a world position to the containing cell.
func (g *Grid) TileAt(x, y float64) (int, int) {
	return int(math.Floor(x / g.tileSize)), int(math.Floor(y / g.tileSize))
}

// Blocked reports whether the box (x, y, w, h) touches a wall cell or any
// cell outside the grid. Corners are mapped with floor division, so a box
// whose far edge lies exactly on a tile boundary also covers the next tile.
func (g *Grid) Blocked(x, y, w, h float64) bool {
	if g.Empty() {
		return true
	}

	tx1, ty1 := g.TileAt(x, y)
	tx2, ty2 := g.TileAt(x+w, y+h)

	// Out of bounds on any axis is a collision.
	if !g.InBounds(tx1, ty1) || !g.InBounds(tx2, ty2) {
		return true
	}

	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			if g.walls[ty][tx] {
				return true
			}
		}
	}
	return false
}

// FreeCells returns the coordinates of all non-wall cells in row-major order.
func (g *Grid) FreeCells() [][2]int {
	var cells [][2]int
	for y, row := range g.walls {
		for x, wall := range row {
			if !wall {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}
