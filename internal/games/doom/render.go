package doom

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-doom/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '@'
	DeadPlayerChar = 'X'
	BulletChar     = '*'
	CorpseChar     = '%'
	FloorChar      = ' '
)

// Glyphs for wall tiles by tile id. Ids past the table use the last glyph.
var WallGlyphs = []rune{'█', '▓', '▒', '░'}

// Enemy glyphs by type name; unknown types use their initial.
var enemyGlyphs = map[string]rune{
	"basic": 'z',
	"fast":  'i',
	"heavy": 'D',
}

var itemGlyphs = map[string]rune{
	"health": '+',
	"ammo":   '=',
	"armor":  ']',
	"weapon": '¬',
}

// Minimum screen size for the game view.
const (
	minScreenW = 30
	minScreenH = 10
	hudRows    = 1
)

// Camera maps world coordinates to screen cells. One tile is drawn as two
// cells across and one cell down, which keeps tiles roughly square in a
// terminal.
type Camera struct {
	OriginX, OriginY float64 // world position of the top-left map cell
	CellW, CellH     float64 // world units per cell
	Top              int     // first screen row of the map view
}

// NewCamera centres a camera on (cx, cy) for a w×h screen.
func NewCamera(cx, cy, tileSize float64, w, h int) Camera {
	c := Camera{CellW: tileSize / 2, CellH: tileSize, Top: hudRows}
	viewH := h - hudRows
	c.OriginX = cx - float64(w)/2*c.CellW
	c.OriginY = cy - float64(viewH)/2*c.CellH
	return c
}

// WorldToScreen returns the screen cell containing the world point.
func (c Camera) WorldToScreen(x, y float64) (int, int) {
	if c.CellW <= 0 || c.CellH <= 0 {
		return 0, 0
	}
	col := int(math.Floor((x - c.OriginX) / c.CellW))
	row := int(math.Floor((y-c.OriginY)/c.CellH)) + c.Top
	return col, row
}

// ScreenToWorld returns the world position at the centre of a screen cell.
func (c Camera) ScreenToWorld(col, row int) (float64, float64) {
	x := c.OriginX + (float64(col)+0.5)*c.CellW
	y := c.OriginY + (float64(row-c.Top)+0.5)*c.CellH
	return x, y
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	p := g.scene.Player()
	pc := p.Center()
	g.camera = NewCamera(pc.X, pc.Y, g.scene.collision.Grid().TileSize(), dst.Width(), dst.Height())

	g.renderTiles(dst)
	g.renderSprites(dst)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderTiles(dst *core.Screen) {
	grid := g.scene.collision.Grid()
	ts := grid.TileSize()
	for row := g.camera.Top; row < dst.Height(); row++ {
		for col := 0; col < dst.Width(); col++ {
			wx, wy := g.camera.ScreenToWorld(col, row)
			tx, ty := int(math.Floor(wx/ts)), int(math.Floor(wy/ts))
			if !grid.InBounds(tx, ty) {
				continue
			}
			if grid.IsWall(tx, ty) {
				dst.SetColored(col, row, wallGlyph(g.scene.tileAt(tx, ty)), core.ColorGray)
			}
		}
	}
}

func wallGlyph(id int) rune {
	i := id - 1
	if i < 0 {
		i = 0
	}
	if i >= len(WallGlyphs) {
		i = len(WallGlyphs) - 1
	}
	return WallGlyphs[i]
}

// renderSprites draws the scene's draw calls back to front.
func (g *Game) renderSprites(dst *core.Screen) {
	playerCol, playerRow := -1, -1
	for _, dc := range g.scene.DrawList() {
		col, row := g.camera.WorldToScreen(dc.X, dc.Y)
		if row < g.camera.Top {
			continue
		}

		switch {
		case strings.HasPrefix(dc.Texture, "weapon_"):
			if col == playerCol && row == playerRow {
				col, row = aimStep(col, row, dc.Rotation)
			}
			if row < g.camera.Top {
				continue
			}
			dst.SetColored(col, row, aimGlyph(dc.Rotation), core.ColorYellow)
		case strings.HasPrefix(dc.Texture, "player_"):
			playerCol, playerRow = col, row
			if g.scene.Player().Dead() {
				dst.SetColored(col, row, DeadPlayerChar, core.ColorRed)
			} else {
				dst.SetColored(col, row, PlayerChar, core.ColorBrightGreen)
			}
		default:
			r, c := spriteGlyph(dc.Texture)
			dst.SetColored(col, row, r, c)
		}
	}
}

// spriteGlyph maps a texture key to a glyph and colour.
func spriteGlyph(texture string) (rune, core.Color) {
	switch {
	case texture == "bullet":
		return BulletChar, core.ColorBrightYellow
	case strings.HasPrefix(texture, "item_"):
		typ := strings.TrimPrefix(texture, "item_")
		if r, ok := itemGlyphs[typ]; ok {
			return r, core.ColorBrightCyan
		}
		return '?', core.ColorCyan
	case strings.HasPrefix(texture, "enemy_"):
		// enemy_<type>_<state>_<frame>
		parts := strings.Split(texture, "_")
		if len(parts) < 3 {
			return 'e', core.ColorRed
		}
		typ, state := parts[1], parts[2]
		switch state {
		case "dead":
			return CorpseChar, core.ColorGray
		case "hurt":
			return enemyGlyph(typ), core.ColorBrightWhite
		case "attack":
			return enemyGlyph(typ), core.ColorBrightRed
		case "chase":
			return enemyGlyph(typ), core.ColorOrange
		}
		return enemyGlyph(typ), core.ColorRed
	}
	return '?', core.ColorDefault
}

func enemyGlyph(typ string) rune {
	if r, ok := enemyGlyphs[typ]; ok {
		return r
	}
	if typ == "" {
		return 'e'
	}
	return []rune(strings.ToUpper(typ))[0]
}

// aimDir converts a draw-call rotation (degrees, screen convention) back to
// a world angle.
func aimDir(rotation float64) float64 {
	return -rotation * math.Pi / 180
}

func aimStep(col, row int, rotation float64) (int, int) {
	d := aimDir(rotation)
	return col + int(math.Round(math.Cos(d)*1.4)), row + int(math.Round(math.Sin(d)*0.7))
}

func aimGlyph(rotation float64) rune {
	deg := math.Mod(aimDir(rotation)*180/math.Pi+360, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '-'
	case deg < 67.5:
		return '\\'
	case deg < 112.5:
		return '|'
	default:
		return '/'
	}
}

// renderHUD draws health, armor, weapon, kills and the level or wave.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.scene.Player()

	left := fmt.Sprintf("HP %d  AR %d", int(math.Ceil(p.Health)), int(math.Ceil(p.Armor)))
	if w := p.CurrentWeapon(); w != nil {
		left += fmt.Sprintf("  %s %d/%d", w.Type, w.Ammo, w.MaxAmmo)
	}
	dst.DrawText(1, 0, left)

	dst.DrawTextCentered(0, fmt.Sprintf("Kills: %d  Score: %d", g.kills+g.scene.Kills(), g.score))

	var right string
	if g.waves != nil {
		right = fmt.Sprintf("Wave %d", g.waves.Wave)
	} else {
		right = fmt.Sprintf("%s %d/%d", g.sceneID(), g.levelIndex+1, len(g.levels))
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		g.drawCenteredBox(dst, "YOU DIED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case StateWin:
		g.drawCenteredBox(dst, "EPISODE CLEARED", fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score))
	case StatePlaying:
		if g.waves != nil && g.waves.InBreak && g.waves.Wave > 0 {
			dst.DrawTextCentered(dst.Height()-1, fmt.Sprintf("Wave %d cleared - next in %ds", g.waves.Wave, int(math.Ceil(g.waves.BreakLeft))))
		}
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
