package entity

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
)

// muzzleOffset is how far ahead of the owner shots are spawned.
const muzzleOffset = 20.0

// Muzzle describes where and in which direction a weapon is fired from.
type Muzzle struct {
	X, Y      float64
	Direction float64 // radians
	Kind      core.Kind
}

// Shot is a projectile request produced by Weapon.Fire. The scene turns
// shots into Projectile entities.
type Shot struct {
	X, Y      float64
	Angle     float64
	Speed     float64
	Damage    float64
	Range     float64
	Owner     core.EntityID
	OwnerKind core.Kind
	Weapon    string
}

// Weapon is a ranged weapon with type-fixed stats and its own ammo and
// cooldown.
type Weapon struct {
	Type     string
	Stats    config.WeaponStats
	Ammo     int
	MaxAmmo  int
	Cooldown float64
	// Owner is a weak handle to the holder.
	Owner core.EntityID

	rng *rand.Rand
}

// NewWeapon creates a weapon of the given type. Unknown types use the
// table's default type.
func NewWeapon(typ string, cfg config.WeaponsConfig, owner core.EntityID, rng *rand.Rand) *Weapon {
	name, stats := LookupWeapon(cfg.Types, typ, cfg.DefaultType)
	w := &Weapon{
		Type:    name,
		Stats:   stats,
		MaxAmmo: stats.MaxAmmo,
		Owner:   owner,
		rng:     rng,
	}
	w.Ammo = core.Clamp(stats.Ammo, 0, w.MaxAmmo)
	return w
}

// Name implements inventory.Named.
func (w *Weapon) Name() string {
	return w.Type
}

// Ready reports whether the weapon can fire right now.
func (w *Weapon) Ready() bool {
	return w.Ammo > 0 && w.Cooldown <= 0
}

// Fire spends one round and returns the projectiles to spawn. It fails
// without touching any state when out of ammo or still cooling down.
func (w *Weapon) Fire(m Muzzle) ([]Shot, bool) {
	if !w.Ready() {
		return nil, false
	}

	pellets := w.Stats.Pellets
	if pellets < 1 {
		pellets = 1
	}

	shots := make([]Shot, 0, pellets)
	for i := 0; i < pellets; i++ {
		angle := m.Direction
		if pellets > 1 {
			angle += w.spread()
		}
		shots = append(shots, Shot{
			X:         m.X + math.Cos(angle)*muzzleOffset,
			Y:         m.Y + math.Sin(angle)*muzzleOffset,
			Angle:     angle,
			Speed:     w.Stats.ProjectileSpeed,
			Damage:    w.Stats.Damage,
			Range:     w.Stats.Range,
			Owner:     w.Owner,
			OwnerKind: m.Kind,
			Weapon:    w.Type,
		})
	}

	w.Ammo--
	w.Cooldown = w.Stats.FireRate
	return shots, true
}

// spread returns a random pellet offset in radians within ±SpreadDeg.
func (w *Weapon) spread() float64 {
	if w.rng == nil || w.Stats.SpreadDeg <= 0 {
		return 0
	}
	deg := (w.rng.Float64()*2 - 1) * w.Stats.SpreadDeg
	return deg * math.Pi / 180
}

// Update counts the cooldown down, stopping at zero.
func (w *Weapon) Update(dt float64) {
	if w.Cooldown > 0 {
		w.Cooldown = math.Max(0, w.Cooldown-dt)
	}
}

// AddAmmo adds rounds up to MaxAmmo and returns how many were added.
func (w *Weapon) AddAmmo(n int) int {
	if n <= 0 {
		return 0
	}
	before := w.Ammo
	w.Ammo = core.Clamp(w.Ammo+n, 0, w.MaxAmmo)
	return w.Ammo - before
}

// Reload tops the magazine up by the weapon's reload amount.
func (w *Weapon) Reload() int {
	return w.AddAmmo(w.Stats.ReloadAmount)
}

// Refill sets ammo to the maximum.
func (w *Weapon) Refill() {
	w.Ammo = w.MaxAmmo
}

// Sprite returns the draw call for the weapon held at pos facing dir.
func (w *Weapon) Sprite(pos core.Vec2, dir float64) core.DrawCall {
	return core.DrawCall{
		Texture:  "weapon_" + w.Type,
		X:        pos.X + math.Cos(dir)*15,
		Y:        pos.Y + math.Sin(dir)*15,
		Rotation: -dir * 180 / math.Pi,
		Scale:    1,
	}
}
