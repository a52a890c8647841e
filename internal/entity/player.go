package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/inventory"
)

// AnimState is the player animation set.
type AnimState string

const (
	AnimIdle AnimState = "idle"
	AnimRun  AnimState = "run"
)

// Player is the player-controlled entity.
type Player struct {
	body

	Direction      float64 // radians
	Speed          float64
	Health         float64
	MaxHealth      float64
	Armor          float64
	MaxArmor       float64
	AttackCooldown float64
	AttackRate     float64
	ReloadCooldown float64
	Anim           AnimState
	AnimFrame      float64
	Weapons        *inventory.Inventory[*Weapon]

	cfg        config.PlayerConfig
	weaponsCfg config.WeaponsConfig
	lookup     Lookup
	rng        *rand.Rand
	dead       bool
	switchHeld bool
}

// NewPlayer creates a player at (x, y) holding the configured start weapons.
func NewPlayer(id core.EntityID, x, y float64, cfg config.DoomConfig, rng *rand.Rand) *Player {
	pc := cfg.Player
	p := &Player{
		body:       body{id: id, X: x, Y: y, W: pc.Width, H: pc.Height},
		Speed:      pc.Speed,
		Health:     pc.MaxHealth,
		MaxHealth:  pc.MaxHealth,
		Armor:      core.ClampF(pc.StartArmor, 0, pc.MaxArmor),
		MaxArmor:   pc.MaxArmor,
		AttackRate: pc.AttackRate,
		Anim:       AnimIdle,
		Weapons:    inventory.New[*Weapon](pc.InventorySlots),
		cfg:        pc,
		weaponsCfg: cfg.Weapons,
		rng:        rng,
	}
	for _, typ := range pc.StartWeapons {
		p.GiveWeapon(typ)
	}
	return p
}

// Kind implements collision.Body.
func (p *Player) Kind() core.Kind { return core.KindPlayer }

// Attach registers the player with the collision world and keeps it as the
// movement resolver.
func (p *Player) Attach(w World) {
	p.world = w
	w.Register(p)
}

// SetLookup sets the handle resolver used by collision callbacks.
func (p *Player) SetLookup(l Lookup) {
	p.lookup = l
}

// Dead reports whether the player has died.
func (p *Player) Dead() bool {
	return p.dead
}

// CurrentWeapon returns the equipped weapon, or nil.
func (p *Player) CurrentWeapon() *Weapon {
	w, ok := p.Weapons.Current()
	if !ok {
		return nil
	}
	return w
}

// HandleInput applies one tick of input: movement, facing, weapon selection,
// reload and fire. It returns the shots fired this tick.
func (p *Player) HandleInput(in core.Input, dt float64) []Shot {
	if p.dead {
		return nil
	}

	var move core.Vec2
	if in.Held(core.ActionMoveUp) {
		move.Y--
	}
	if in.Held(core.ActionMoveDown) {
		move.Y++
	}
	if in.Held(core.ActionMoveLeft) {
		move.X--
	}
	if in.Held(core.ActionMoveRight) {
		move.X++
	}

	if move.X != 0 || move.Y != 0 {
		move = move.Normalized()
		p.Anim = AnimRun
	} else {
		p.Anim = AnimIdle
	}

	step := p.Speed * dt
	if in.Held(core.ActionSprint) && p.cfg.SprintMultiplier > 0 {
		step *= p.cfg.SprintMultiplier
	}
	// Resolve even when standing still so pickups underfoot are collected.
	p.move(p, move.X*step, move.Y*step)

	if px, py, ok := in.Pointer(); ok {
		c := p.Center()
		if px != c.X || py != c.Y {
			p.Direction = math.Atan2(py-c.Y, px-c.X)
		}
	}

	p.handleWeaponSwitch(in)

	if in.Held(core.ActionReload) {
		p.Reload()
	}

	if in.Held(core.ActionFire) {
		return p.Attack()
	}
	return nil
}

// handleWeaponSwitch cycles or selects weapons on the press edge only.
func (p *Player) handleWeaponSwitch(in core.Input) {
	var apply func()
	switch {
	case in.Held(core.ActionNextWeapon):
		apply = p.Weapons.Next
	case in.Held(core.ActionPrevWeapon):
		apply = p.Weapons.Prev
	default:
		for i, a := range core.WeaponSlotActions {
			if in.Held(a) {
				slot := i
				apply = func() { p.Weapons.Select(slot) }
				break
			}
		}
	}

	if apply == nil {
		p.switchHeld = false
		return
	}
	if !p.switchHeld {
		apply()
	}
	p.switchHeld = true
}

// Attack fires the current weapon if the player's own cooldown allows.
func (p *Player) Attack() []Shot {
	if p.dead || p.AttackCooldown > 0 {
		return nil
	}
	w := p.CurrentWeapon()
	if w == nil {
		return nil
	}
	c := p.Center()
	shots, ok := w.Fire(Muzzle{X: c.X, Y: c.Y, Direction: p.Direction, Kind: core.KindPlayer})
	if !ok {
		return nil
	}
	p.AttackCooldown = p.AttackRate
	return shots
}

// Reload tops up the current weapon, at most once per reload_time.
func (p *Player) Reload() bool {
	if p.ReloadCooldown > 0 {
		return false
	}
	w := p.CurrentWeapon()
	if w == nil || w.Reload() == 0 {
		return false
	}
	p.ReloadCooldown = p.cfg.ReloadTime
	return true
}

// Update advances timers and animation.
func (p *Player) Update(dt float64) {
	if p.AttackCooldown > 0 {
		p.AttackCooldown = math.Max(0, p.AttackCooldown-dt)
	}
	if p.ReloadCooldown > 0 {
		p.ReloadCooldown = math.Max(0, p.ReloadCooldown-dt)
	}
	for _, w := range p.Weapons.Items() {
		w.Update(dt)
	}

	// 4 frames at 10 fps
	p.AnimFrame = math.Mod(p.AnimFrame+dt*10, 4)
}

// TakeDamage applies damage. Armor soaks up a third of it while it lasts.
func (p *Player) TakeDamage(amount float64) {
	if p.dead || amount <= 0 {
		return
	}
	absorbed := math.Min(amount/3, p.Armor)
	p.Armor -= absorbed
	p.Health = core.ClampF(p.Health-(amount-absorbed), 0, p.MaxHealth)
	if p.Health <= 0 {
		p.Die()
	}
}

// Heal restores health up to MaxHealth.
func (p *Player) Heal(amount float64) {
	if p.dead {
		return
	}
	p.Health = core.ClampF(p.Health+amount, 0, p.MaxHealth)
}

// AddArmor adds armor up to MaxArmor.
func (p *Player) AddArmor(amount float64) {
	p.Armor = core.ClampF(p.Armor+amount, 0, p.MaxArmor)
}

// Die marks the player dead and stops it colliding. Only the first call has
// an effect.
func (p *Player) Die() {
	if p.dead {
		return
	}
	p.dead = true
	p.Health = 0
	p.Anim = AnimIdle
	p.detach(p)
}

// GiveWeapon adds a weapon of the given type. An already owned type gets a
// fresh load of ammo instead. It returns false when the inventory is full.
func (p *Player) GiveWeapon(typ string) bool {
	name, _ := LookupWeapon(p.weaponsCfg.Types, typ, p.weaponsCfg.DefaultType)
	if i, ok := p.Weapons.Find(name); ok {
		w, _ := p.Weapons.Get(i)
		w.AddAmmo(w.Stats.Ammo)
		return true
	}
	return p.Weapons.Add(NewWeapon(name, p.weaponsCfg, p.id, p.rng))
}

// OnCollision implements collision.Body.
func (p *Player) OnCollision(other core.Kind, id core.EntityID) {
	if other != core.KindItem || p.lookup == nil {
		return
	}
	if it := p.lookup.Item(id); it != nil {
		it.Pickup(p)
	}
}

// Sprite returns the player's draw call.
func (p *Player) Sprite() core.DrawCall {
	c := p.Center()
	return core.DrawCall{
		Texture:  fmt.Sprintf("player_%s_%d", p.Anim, int(p.AnimFrame)),
		X:        c.X,
		Y:        c.Y,
		Rotation: -p.Direction * 180 / math.Pi,
		Scale:    1,
	}
}
