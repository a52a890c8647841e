package doom

import (
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/ai"
	"github.com/vovakirdan/tui-doom/internal/collision"
	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/entity"
	"github.com/vovakirdan/tui-doom/internal/maps"
	"github.com/vovakirdan/tui-doom/internal/physics"
)

// Scene owns every entity of one level and the systems that update them.
// Entities refer to each other by EntityID; the scene resolves the handles.
type Scene struct {
	Name string

	tiles [][]int
	cfg   config.DoomConfig
	rng   *rand.Rand

	collision *collision.System
	ai        *ai.System
	physics   *physics.Integrator

	player      *entity.Player
	enemies     []*entity.Enemy
	items       []*entity.Item
	projectiles []*entity.Projectile

	enemyByID map[core.EntityID]*entity.Enemy
	itemByID  map[core.EntityID]*entity.Item
	killed    map[core.EntityID]bool

	nextID core.EntityID
	kills  int
	ticks  uint64
}

// NewScene loads a level. A nil or empty map falls back to the default
// level. Every spawned entity is registered with collision exactly once.
func NewScene(m *maps.Map, cfg config.DoomConfig, rng *rand.Rand) *Scene {
	if m == nil {
		logger.Warn("no map given, loading default", "map", maps.DefaultLevel)
		m = maps.Default()
	}
	if cols, rows := m.Size(); cols == 0 || rows == 0 {
		logger.Warn("map has no tiles, loading default", "map", m.Name, "fallback", maps.DefaultLevel)
		m = maps.Default()
	}

	grid := collision.BuildGrid(m.Tiles, m.CollisionLayer, cfg.World.TileSize)
	sys := collision.New(grid)

	s := &Scene{
		Name:      m.Name,
		tiles:     m.Tiles,
		cfg:       cfg,
		rng:       rng,
		collision: sys,
		ai: ai.New(ai.Config{
			SightRange:      cfg.Enemies.SightRange,
			PatrolTolerance: cfg.Enemies.PatrolTolerance,
		}, rng),
		physics:   physics.New(cfg.Physics, sys),
		enemyByID: make(map[core.EntityID]*entity.Enemy),
		itemByID:  make(map[core.EntityID]*entity.Item),
		killed:    make(map[core.EntityID]bool),
	}

	s.player = entity.NewPlayer(s.newID(), m.PlayerStart.X, m.PlayerStart.Y, cfg, rng)
	s.player.SetLookup(s)
	s.player.Attach(sys)

	for _, sp := range m.Enemies {
		s.SpawnEnemy(sp.X, sp.Y, sp.Type)
	}
	for _, sp := range m.Items {
		s.SpawnItem(sp)
	}

	logger.Info("scene loaded",
		"map", s.Name,
		"cols", grid.Cols(),
		"rows", grid.Rows(),
		"enemies", len(s.enemies),
		"items", len(s.items),
	)
	return s
}

// tileAt returns the map tile id at a wall cell, for picking its glyph.
// Cells walled only by the collision layer or by padding report 1.
func (s *Scene) tileAt(tx, ty int) int {
	if ty >= 0 && ty < len(s.tiles) && tx >= 0 && tx < len(s.tiles[ty]) && s.tiles[ty][tx] > 0 {
		return s.tiles[ty][tx]
	}
	return 1
}

func (s *Scene) newID() core.EntityID {
	s.nextID++
	return s.nextID
}

// SpawnEnemy adds an enemy with its top-left corner at (x, y). Aliases such
// as "imp" resolve to their base row; unknown types fall back to the
// configured default.
func (s *Scene) SpawnEnemy(x, y float64, typ string) *entity.Enemy {
	if _, ok := entity.ResolveEnemyType(s.cfg.Enemies.Types, typ); !ok {
		logger.Warn("unknown enemy type", "type", typ, "fallback", s.cfg.Enemies.DefaultType)
	}
	e := entity.NewEnemy(s.newID(), x, y, typ, s.cfg.Enemies, s.rng)
	e.Attach(s.collision)
	s.enemies = append(s.enemies, e)
	s.enemyByID[e.ID()] = e
	return e
}

// SpawnItem adds a pickup. Unknown item types spawn but have no effect.
func (s *Scene) SpawnItem(sp maps.ItemSpawn) *entity.Item {
	switch sp.Type {
	case entity.ItemHealth, entity.ItemAmmo, entity.ItemArmor, entity.ItemWeapon:
	default:
		logger.Warn("unknown item type", "type", sp.Type)
	}
	it := entity.NewItem(s.newID(), sp.X, sp.Y, sp.Type, s.cfg.Items)
	if sp.Weapon != "" {
		it.Weapon = sp.Weapon
	}
	it.Attach(s.collision)
	s.items = append(s.items, it)
	s.itemByID[it.ID()] = it
	return it
}

func (s *Scene) spawnProjectile(shot entity.Shot) {
	pr := entity.NewProjectile(s.newID(), shot, s.cfg.Enemies.Knockback, s)
	pr.Attach(s.collision)
	s.projectiles = append(s.projectiles, pr)
}

// Tick advances the scene by dt seconds: player input, AI, entity updates,
// physics with collision callbacks, then pruning.
func (s *Scene) Tick(in core.Input, dt float64) {
	if dt <= 0 {
		return
	}
	s.ticks++

	if !s.player.Dead() {
		for _, shot := range s.player.HandleInput(in, dt) {
			s.spawnProjectile(shot)
		}
	}

	s.ai.Update(s.player, s.enemies, dt)

	s.player.Update(dt)
	for _, e := range s.enemies {
		e.Update(dt)
	}
	for _, it := range s.items {
		if it.Active {
			it.Update(dt)
		}
	}

	for _, pr := range s.projectiles {
		if pr.Expired() {
			continue
		}
		before := pr.Center()
		res := s.physics.Step(pr, dt)
		pr.Advance(pr.Center().DistanceTo(before), res.Blocked())
	}
	for _, e := range s.enemies {
		if e.Dead() || e.Kin.Resting() {
			continue
		}
		s.physics.Step(e, dt)
	}

	s.countKills()
	s.prune()
}

func (s *Scene) countKills() {
	for _, e := range s.enemies {
		if e.Dead() && !s.killed[e.ID()] {
			s.killed[e.ID()] = true
			s.kills++
		}
	}
}

// prune drops removed enemies, spent projectiles and collected items.
func (s *Scene) prune() {
	enemies := s.enemies[:0]
	for _, e := range s.enemies {
		if e.ShouldRemove {
			delete(s.enemyByID, e.ID())
			delete(s.killed, e.ID())
			continue
		}
		enemies = append(enemies, e)
	}
	clear(s.enemies[len(enemies):])
	s.enemies = enemies

	projectiles := s.projectiles[:0]
	for _, pr := range s.projectiles {
		if !pr.Expired() {
			projectiles = append(projectiles, pr)
		}
	}
	clear(s.projectiles[len(projectiles):])
	s.projectiles = projectiles

	items := s.items[:0]
	for _, it := range s.items {
		if !it.Active {
			delete(s.itemByID, it.ID())
			continue
		}
		items = append(items, it)
	}
	clear(s.items[len(items):])
	s.items = items
}

// Enemy implements entity.Lookup.
func (s *Scene) Enemy(id core.EntityID) *entity.Enemy {
	return s.enemyByID[id]
}

// Item implements entity.Lookup.
func (s *Scene) Item(id core.EntityID) *entity.Item {
	return s.itemByID[id]
}

// Player returns the player.
func (s *Scene) Player() *entity.Player { return s.player }

// Enemies returns the live enemies, including dying ones not yet removed.
func (s *Scene) Enemies() []*entity.Enemy { return s.enemies }

// Items returns the uncollected items.
func (s *Scene) Items() []*entity.Item { return s.items }

// Projectiles returns the projectiles in flight.
func (s *Scene) Projectiles() []*entity.Projectile { return s.projectiles }

// Collision exposes the collision system.
func (s *Scene) Collision() *collision.System { return s.collision }

// Kills returns the number of enemies killed in this scene.
func (s *Scene) Kills() int { return s.kills }

// Ticks returns the number of ticks simulated.
func (s *Scene) Ticks() uint64 { return s.ticks }

// Alive returns the number of enemies that are not dead.
func (s *Scene) Alive() int {
	n := 0
	for _, e := range s.enemies {
		if !e.Dead() {
			n++
		}
	}
	return n
}

// Cleared reports whether every enemy has been removed.
func (s *Scene) Cleared() bool {
	return len(s.enemies) == 0
}

// DrawList returns the draw calls for the current frame, back to front:
// items, enemies, projectiles, the player and the held weapon.
func (s *Scene) DrawList() []core.DrawCall {
	calls := make([]core.DrawCall, 0, len(s.items)+len(s.enemies)+len(s.projectiles)+2)
	for _, it := range s.items {
		if it.Active {
			calls = append(calls, it.Sprite())
		}
	}
	for _, e := range s.enemies {
		calls = append(calls, e.Sprite())
	}
	for _, pr := range s.projectiles {
		calls = append(calls, pr.Sprite())
	}
	calls = append(calls, s.player.Sprite())
	if w := s.player.CurrentWeapon(); w != nil && !s.player.Dead() {
		calls = append(calls, w.Sprite(s.player.Center(), s.player.Direction))
	}
	return calls
}
