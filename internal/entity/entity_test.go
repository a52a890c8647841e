package entity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-doom/internal/collision"
	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
)

// countingWorld wraps a real collision system and counts registrations.
type countingWorld struct {
	*collision.System
	registered   int
	unregistered int
}

func (w *countingWorld) Register(b collision.Body) {
	w.registered++
	w.System.Register(b)
}

func (w *countingWorld) Unregister(b collision.Body) {
	w.unregistered++
	w.System.Unregister(b)
}

// arena is a map-backed Lookup.
type arena struct {
	items   map[core.EntityID]*Item
	enemies map[core.EntityID]*Enemy
}

func newArena() *arena {
	return &arena{items: map[core.EntityID]*Item{}, enemies: map[core.EntityID]*Enemy{}}
}

func (a *arena) Item(id core.EntityID) *Item   { return a.items[id] }
func (a *arena) Enemy(id core.EntityID) *Enemy { return a.enemies[id] }

// openRoom returns a 20x20 room of 64-unit tiles with a wall border.
func openRoom() *countingWorld {
	tiles := make([][]int, 20)
	for y := range tiles {
		tiles[y] = make([]int, 20)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == 19 || y == 19 {
				tiles[y][x] = 1
			}
		}
	}
	return &countingWorld{System: collision.New(collision.BuildGrid(tiles, nil, 64))}
}

func testConfig() config.DoomConfig {
	return config.DefaultDoomConfig()
}

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	return NewPlayer(1, 200, 200, testConfig(), rand.New(rand.NewSource(1)))
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestLookupFallsBack(t *testing.T) {
	cfg := testConfig()

	name, stats := LookupEnemy(cfg.Enemies.Types, "cyberdemon", "basic")
	assert.Equal(t, "basic", name)
	assert.Equal(t, cfg.Enemies.Types["basic"], stats)

	name, stats = LookupEnemy(map[string]config.EnemyStats{"basic": baseEnemy}, "imp", "basic")
	assert.Equal(t, "basic", name, "alias without its base row falls back")
	assert.Equal(t, baseEnemy, stats)

	name, stats = LookupEnemy(nil, "anything", "basic")
	assert.Equal(t, "basic", name)
	assert.Equal(t, baseEnemy, stats)

	wname, wstats := LookupWeapon(cfg.Weapons.Types, "bfg", "pistol")
	assert.Equal(t, "pistol", wname)
	assert.Equal(t, cfg.Weapons.Types["pistol"], wstats)
}

func TestEnemyAliasesShareBaseStats(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		alias string
		base  string
	}{
		{"zombie", "basic"},
		{"imp", "fast"},
		{"demon", "heavy"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			name, stats := LookupEnemy(cfg.Enemies.Types, tt.alias, "basic")
			assert.Equal(t, tt.base, name)
			assert.Equal(t, cfg.Enemies.Types[tt.base], stats)

			e := NewEnemy(1, 0, 0, tt.alias, cfg.Enemies, nil)
			assert.Equal(t, tt.base, e.Type)
			assert.Equal(t, cfg.Enemies.Types[tt.base].Health, e.Health)
		})
	}
}

func TestWeaponFireGating(t *testing.T) {
	cfg := testConfig()
	w := NewWeapon("pistol", cfg.Weapons, 1, nil)

	w.Ammo = 0
	shots, ok := w.Fire(Muzzle{})
	assert.False(t, ok)
	assert.Nil(t, shots)
	assert.Equal(t, 0.0, w.Cooldown, "failed fire leaves cooldown alone")

	w.Ammo = 1
	shots, ok = w.Fire(Muzzle{X: 100, Y: 100, Kind: core.KindPlayer})
	require.True(t, ok)
	require.Len(t, shots, 1)
	assert.Equal(t, 0, w.Ammo)
	assert.Equal(t, w.Stats.FireRate, w.Cooldown)
	assert.Equal(t, 120.0, shots[0].X, "shot spawns ahead of the owner")
	assert.Equal(t, 100.0, shots[0].Y)
	assert.Equal(t, core.KindPlayer, shots[0].OwnerKind)
	assert.Equal(t, core.EntityID(1), shots[0].Owner)

	w.Ammo = 5
	_, ok = w.Fire(Muzzle{})
	assert.False(t, ok, "cooldown blocks firing")
	assert.Equal(t, 5, w.Ammo)
}

func TestWeaponCooldownFloorsAtZero(t *testing.T) {
	w := NewWeapon("pistol", testConfig().Weapons, 1, nil)
	w.Cooldown = 0.5

	w.Update(0.25)
	assert.Equal(t, 0.25, w.Cooldown)
	w.Update(1)
	assert.Equal(t, 0.0, w.Cooldown)
	assert.True(t, w.Ready())
}

func TestShotgunPellets(t *testing.T) {
	cfg := testConfig()
	w := NewWeapon("shotgun", cfg.Weapons, 1, rand.New(rand.NewSource(7)))
	ammo := w.Ammo

	shots, ok := w.Fire(Muzzle{Direction: 0})
	require.True(t, ok)
	assert.Len(t, shots, cfg.Weapons.Types["shotgun"].Pellets)
	assert.Equal(t, ammo-1, w.Ammo, "one round per trigger pull")

	limit := cfg.Weapons.Types["shotgun"].SpreadDeg * math.Pi / 180
	spread := false
	for _, s := range shots {
		assert.LessOrEqual(t, math.Abs(s.Angle), limit+1e-9)
		if s.Angle != 0 {
			spread = true
		}
	}
	assert.True(t, spread, "pellets should spread")
}

func TestWeaponAmmoClamp(t *testing.T) {
	w := NewWeapon("pistol", testConfig().Weapons, 1, nil)
	w.Ammo = w.MaxAmmo - 3

	assert.Equal(t, 3, w.AddAmmo(50))
	assert.Equal(t, w.MaxAmmo, w.Ammo)
	assert.Equal(t, 0, w.Reload())
	assert.Equal(t, 0, w.AddAmmo(-5))

	w.Ammo = 0
	w.Refill()
	assert.Equal(t, w.MaxAmmo, w.Ammo)
}

func TestPlayerDiagonalIsNotFaster(t *testing.T) {
	p := newTestPlayer(t)
	p.Speed = 100

	p.HandleInput(frame(core.ActionMoveRight, core.ActionMoveDown), 0.5)
	moved := math.Hypot(p.X-200, p.Y-200)
	assert.InDelta(t, 50.0, moved, 1e-9)
	assert.Equal(t, AnimRun, p.Anim)

	p.HandleInput(frame(), 0.5)
	assert.Equal(t, AnimIdle, p.Anim)
}

func TestPlayerSprint(t *testing.T) {
	p := newTestPlayer(t)
	p.Speed = 100

	p.HandleInput(frame(core.ActionMoveRight, core.ActionSprint), 0.5)
	assert.InDelta(t, 200+50*testConfig().Player.SprintMultiplier, p.X, 1e-9)
}

func TestPlayerMovesThroughWorld(t *testing.T) {
	w := openRoom()
	p := newTestPlayer(t)
	p.X, p.Y = 70, 200
	p.Attach(w)
	assert.Equal(t, 1, w.registered)

	// The left wall stops horizontal motion, vertical still applies.
	p.HandleInput(frame(core.ActionMoveLeft), 0.5)
	assert.Equal(t, 70.0, p.X)

	p.HandleInput(frame(core.ActionMoveDown), 0.25)
	assert.Equal(t, 200+p.Speed*0.25, p.Y)
}

func TestPlayerFacesPointer(t *testing.T) {
	p := newTestPlayer(t)
	c := p.Center()

	f := frame()
	f.SetPointer(c.X, c.Y+10)
	p.HandleInput(f, 0.25)
	assert.InDelta(t, math.Pi/2, p.Direction, 1e-9)

	// Without a pointer the facing is kept.
	p.HandleInput(frame(), 0.25)
	assert.InDelta(t, math.Pi/2, p.Direction, 1e-9)
}

func TestPlayerHoldFire(t *testing.T) {
	p := newTestPlayer(t)
	w := p.CurrentWeapon()
	require.NotNil(t, w)
	start := w.Ammo

	shots := p.HandleInput(frame(core.ActionFire), 0.25)
	assert.Len(t, shots, 1)
	assert.Equal(t, start-1, w.Ammo)

	// Still on cooldown next tick.
	p.Update(0.25)
	shots = p.HandleInput(frame(core.ActionFire), 0.25)
	assert.Empty(t, shots)

	// Holding the trigger keeps firing once cooldowns clear.
	p.Update(0.25)
	shots = p.HandleInput(frame(core.ActionFire), 0.25)
	assert.Len(t, shots, 1)
	assert.Equal(t, start-2, w.Ammo)
}

func TestPlayerWeaponSwitchOnPress(t *testing.T) {
	p := newTestPlayer(t)
	require.Equal(t, "pistol", p.CurrentWeapon().Type)

	p.HandleInput(frame(core.ActionNextWeapon), 0.25)
	assert.Equal(t, "shotgun", p.CurrentWeapon().Type)

	// Holding does not keep cycling.
	p.HandleInput(frame(core.ActionNextWeapon), 0.25)
	assert.Equal(t, "shotgun", p.CurrentWeapon().Type)

	p.HandleInput(frame(), 0.25)
	p.HandleInput(frame(core.ActionNextWeapon), 0.25)
	assert.Equal(t, "pistol", p.CurrentWeapon().Type)

	p.HandleInput(frame(), 0.25)
	p.HandleInput(frame(core.ActionWeapon2), 0.25)
	assert.Equal(t, "shotgun", p.CurrentWeapon().Type)
}

func TestPlayerReloadRateLimited(t *testing.T) {
	p := newTestPlayer(t)
	w := p.CurrentWeapon()
	w.Ammo = 0

	p.HandleInput(frame(core.ActionReload), 0.25)
	assert.Equal(t, w.Stats.ReloadAmount, w.Ammo)

	p.HandleInput(frame(core.ActionReload), 0.25)
	assert.Equal(t, w.Stats.ReloadAmount, w.Ammo, "reload_time not elapsed")

	p.Update(p.cfg.ReloadTime)
	p.HandleInput(frame(core.ActionReload), 0.25)
	assert.Equal(t, 2*w.Stats.ReloadAmount, w.Ammo)
}

func TestPlayerDamageAndArmor(t *testing.T) {
	p := newTestPlayer(t)
	p.Armor = 10

	p.TakeDamage(30)
	assert.Equal(t, 0.0, p.Armor)
	assert.Equal(t, 80.0, p.Health)

	p.TakeDamage(-5)
	assert.Equal(t, 80.0, p.Health)

	p.Heal(500)
	assert.Equal(t, p.MaxHealth, p.Health)

	p.AddArmor(500)
	assert.Equal(t, p.MaxArmor, p.Armor)
}

func TestPlayerDeathStopsColliding(t *testing.T) {
	w := openRoom()
	p := newTestPlayer(t)
	p.Attach(w)

	p.TakeDamage(1000)
	assert.True(t, p.Dead())
	assert.Equal(t, 0.0, p.Health)
	assert.False(t, w.Registered(p.ID()))

	p.Die()
	p.TakeDamage(10)
	assert.Equal(t, 1, w.unregistered)
	assert.Equal(t, 0.0, p.Health)

	assert.Nil(t, p.HandleInput(frame(core.ActionFire, core.ActionMoveUp), 0.25))
}

func TestPlayerGiveWeapon(t *testing.T) {
	p := newTestPlayer(t)
	require.Equal(t, 2, p.Weapons.Len())

	pistol := p.CurrentWeapon()
	pistol.Ammo = 0
	assert.True(t, p.GiveWeapon("pistol"))
	assert.Equal(t, 2, p.Weapons.Len())
	assert.Equal(t, pistol.Stats.Ammo, pistol.Ammo)

	assert.True(t, p.GiveWeapon("rifle"))
	assert.Equal(t, 3, p.Weapons.Len())

	// Unknown types resolve to the default weapon.
	assert.True(t, p.GiveWeapon("railgun"))
	assert.Equal(t, 3, p.Weapons.Len())
}

func TestEnemyStatsFromType(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(3))

	e := NewEnemy(10, 0, 0, "heavy", cfg.Enemies, rng)
	assert.Equal(t, cfg.Enemies.Types["heavy"], e.Stats)
	assert.Equal(t, e.Stats.Health, e.Health)
	assert.Equal(t, e.Health, e.MaxHealth)
	assert.Equal(t, StateIdle, e.State)

	unknown := NewEnemy(11, 0, 0, "mystery", cfg.Enemies, rng)
	assert.Equal(t, "basic", unknown.Type)
	assert.Equal(t, cfg.Enemies.Types["basic"], unknown.Stats)
}

func TestEnemyPatrolRoute(t *testing.T) {
	cfg := testConfig().Enemies
	for seed := int64(0); seed < 20; seed++ {
		e := NewEnemy(1, 500, 500, "basic", cfg, rand.New(rand.NewSource(seed)))

		require.GreaterOrEqual(t, len(e.Patrol), cfg.PatrolPointsMin)
		require.LessOrEqual(t, len(e.Patrol), cfg.PatrolPointsMax)

		r := e.Patrol[0].DistanceTo(core.V(500, 500))
		assert.GreaterOrEqual(t, r, cfg.PatrolRadiusMin)
		assert.LessOrEqual(t, r, cfg.PatrolRadiusMax)
		for _, pt := range e.Patrol {
			assert.InDelta(t, r, pt.DistanceTo(core.V(500, 500)), 1e-9, "points share one radius")
		}

		assert.GreaterOrEqual(t, e.IdleDuration, cfg.IdleMin)
		assert.LessOrEqual(t, e.IdleDuration, cfg.IdleMax)

		again := NewEnemy(1, 500, 500, "basic", cfg, rand.New(rand.NewSource(seed)))
		assert.Equal(t, e.Patrol, again.Patrol, "route is deterministic for a seed")
	}
}

func TestEnemyDamageAndDeath(t *testing.T) {
	cfg := testConfig()
	w := openRoom()
	e := NewEnemy(5, 300, 300, "basic", cfg.Enemies, nil)
	e.Attach(w)

	e.TakeDamage(10)
	assert.Equal(t, StateHurt, e.State)
	assert.Equal(t, cfg.Enemies.HurtDuration, e.HurtTime)
	assert.Equal(t, e.MaxHealth-10, e.Health)

	e.TakeDamage(1000)
	assert.True(t, e.Dead())
	assert.Equal(t, 0.0, e.Health)
	assert.Equal(t, cfg.Enemies.DeathDuration, e.DeathTime)
	assert.False(t, w.Registered(e.ID()))
	assert.False(t, e.ShouldRemove, "removal waits for the death timer")

	e.TakeDamage(10)
	e.Die()
	assert.Equal(t, 1, w.unregistered)
	assert.Equal(t, StateDead, e.State)
}

func TestEnemyEnterStates(t *testing.T) {
	cfg := testConfig().Enemies
	e := NewEnemy(5, 300, 300, "basic", cfg, nil)

	e.EnterAttack()
	assert.Equal(t, StateAttack, e.State)
	assert.Equal(t, e.Stats.AttackRate, e.AttackCooldown)

	e.AttackCooldown = 0.1
	e.EnterAttack()
	assert.Equal(t, 0.1, e.AttackCooldown, "re-entering keeps the running cooldown")

	e.IdleTime = 2
	e.EnterIdle(rand.New(rand.NewSource(1)))
	assert.Equal(t, StateIdle, e.State)
	assert.Equal(t, 0.0, e.IdleTime)

	assert.True(t, StateHurt.Locked())
	assert.True(t, StateAttack.Locked())
	assert.False(t, StateChase.Locked())
	assert.Equal(t, "patrol", StatePatrol.String())
}

func TestItemPickupIsIdempotent(t *testing.T) {
	cfg := testConfig()
	w := openRoom()
	p := newTestPlayer(t)
	p.Health = 50

	it := NewItem(20, 300, 300, ItemHealth, cfg.Items)
	it.Attach(w)

	assert.True(t, it.Pickup(p))
	assert.False(t, it.Pickup(p))
	assert.Equal(t, 50+cfg.Items.HealthAmount, p.Health)
	assert.False(t, it.Active)
	assert.Equal(t, 1, w.unregistered)
	assert.False(t, w.Registered(it.ID()))
}

func TestItemEffects(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		typ   string
		check func(t *testing.T, p *Player)
	}{
		{ItemAmmo, func(t *testing.T, p *Player) {
			assert.Equal(t, cfg.Items.AmmoAmount, p.CurrentWeapon().Ammo)
		}},
		{ItemArmor, func(t *testing.T, p *Player) {
			assert.Equal(t, cfg.Items.ArmorAmount, p.Armor)
		}},
		{ItemWeapon, func(t *testing.T, p *Player) {
			_, ok := p.Weapons.Find(cfg.Items.WeaponType)
			assert.True(t, ok)
		}},
		{"mystery", func(t *testing.T, p *Player) {
			assert.Equal(t, 0, p.CurrentWeapon().Ammo)
			assert.Equal(t, 0.0, p.Armor)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.typ, func(t *testing.T) {
			p := newTestPlayer(t)
			p.CurrentWeapon().Ammo = 0
			it := NewItem(20, 0, 0, tc.typ, cfg.Items)

			assert.True(t, it.Pickup(p))
			assert.False(t, it.Active)
			tc.check(t, p)
		})
	}
}

func TestPlayerCollectsItemByWalking(t *testing.T) {
	cfg := testConfig()
	w := openRoom()
	a := newArena()

	p := newTestPlayer(t)
	p.Health = 40
	p.Attach(w)
	p.SetLookup(a)

	it := NewItem(30, 240, 205, ItemHealth, cfg.Items)
	it.Attach(w)
	a.items[it.ID()] = it

	p.HandleInput(frame(core.ActionMoveRight), 0.0625)

	assert.False(t, it.Active)
	assert.Equal(t, 40+cfg.Items.HealthAmount, p.Health)
	assert.False(t, w.Registered(it.ID()))

	// Walking over the spot again does nothing.
	p.HandleInput(frame(core.ActionMoveLeft), 0.0625)
	p.HandleInput(frame(core.ActionMoveRight), 0.0625)
	assert.Equal(t, 40+cfg.Items.HealthAmount, p.Health)
}

func TestItemAnimation(t *testing.T) {
	it := NewItem(1, 0, 0, ItemArmor, testConfig().Items)
	it.Update(0.5)
	assert.Equal(t, 45.0, it.Rotation)
	assert.Equal(t, "item_armor", it.Sprite().Texture)

	it.Active = false
	it.Update(0.5)
	assert.Equal(t, 45.0, it.Rotation, "inactive items are frozen")
}

func TestProjectileHitsEnemyOnce(t *testing.T) {
	cfg := testConfig()
	w := openRoom()
	a := newArena()

	e := NewEnemy(40, 300, 300, "basic", cfg.Enemies, nil)
	e.Attach(w)
	a.enemies[e.ID()] = e

	shot := Shot{X: 310, Y: 310, Angle: 0, Speed: 100, Damage: 10, Range: 500, Owner: 1, OwnerKind: core.KindPlayer}
	pr := NewProjectile(50, shot, cfg.Enemies.Knockback, a)
	pr.Attach(w)

	pr.OnCollision(core.KindEnemy, e.ID())
	pr.OnCollision(core.KindEnemy, e.ID())

	assert.Equal(t, e.MaxHealth-10, e.Health)
	assert.Equal(t, StateHurt, e.State)
	assert.Greater(t, e.Kin.VX, 0.0, "knockback along the heading")
	assert.True(t, pr.Expired())
	assert.False(t, w.Registered(pr.ID()))
}

func TestProjectileIgnoresNonTargets(t *testing.T) {
	a := newArena()
	shot := Shot{Speed: 100, Damage: 10, Range: 500, OwnerKind: core.KindPlayer}
	pr := NewProjectile(50, shot, 0, a)

	pr.OnCollision(core.KindPlayer, 1)
	pr.OnCollision(core.KindItem, 2)
	pr.OnCollision(core.KindEnemy, 99)
	assert.False(t, pr.Expired())
}

func TestProjectileRange(t *testing.T) {
	pr := NewProjectile(50, Shot{Speed: 100, Range: 100}, 0, nil)

	pr.Advance(60, false)
	assert.False(t, pr.Expired())
	pr.Advance(40, false)
	assert.True(t, pr.Expired())

	wall := NewProjectile(51, Shot{Speed: 100, Range: 100}, 0, nil)
	wall.Advance(1, true)
	assert.True(t, wall.Expired())
	assert.True(t, wall.Kin.Resting())
}

func TestSprites(t *testing.T) {
	cfg := testConfig()
	p := newTestPlayer(t)
	assert.Equal(t, "player_idle_0", p.Sprite().Texture)

	e := NewEnemy(2, 0, 0, "imp", cfg.Enemies, nil)
	e.State = StateChase
	sp := e.Sprite()
	assert.Equal(t, "enemy_fast_chase_0", sp.Texture)
	assert.Equal(t, e.W/2, sp.X)

	w := p.CurrentWeapon()
	assert.Equal(t, "weapon_pistol", w.Sprite(core.V(0, 0), 0).Texture)
}
