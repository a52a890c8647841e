package entity

import (
	"math"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
)

// Item types.
const (
	ItemHealth = "health"
	ItemAmmo   = "ammo"
	ItemWeapon = "weapon"
	ItemArmor  = "armor"
)

// Item is a pickup. It deactivates on first pickup and never reactivates.
type Item struct {
	body

	Type   string
	Weapon string // granted by weapon pickups
	Active bool

	Rotation  float64 // degrees
	BobOffset float64

	bobTime float64
	cfg     config.ItemsConfig
}

// NewItem creates an active pickup at (x, y).
func NewItem(id core.EntityID, x, y float64, typ string, cfg config.ItemsConfig) *Item {
	return &Item{
		body:   body{id: id, X: x, Y: y, W: cfg.Width, H: cfg.Height},
		Type:   typ,
		Weapon: cfg.WeaponType,
		Active: true,
		cfg:    cfg,
	}
}

// Kind implements collision.Body.
func (it *Item) Kind() core.Kind { return core.KindItem }

// Attach registers the item with the collision world.
func (it *Item) Attach(w World) {
	it.world = w
	w.Register(it)
}

// Pickup applies the item to p, then deactivates and unregisters it. It
// returns false if the item was already taken.
func (it *Item) Pickup(p *Player) bool {
	if !it.Active || p == nil || p.Dead() {
		return false
	}

	switch it.Type {
	case ItemHealth:
		p.Heal(it.cfg.HealthAmount)
	case ItemAmmo:
		if w := p.CurrentWeapon(); w != nil {
			w.AddAmmo(it.cfg.AmmoAmount)
		}
	case ItemWeapon:
		p.GiveWeapon(it.Weapon)
	case ItemArmor:
		p.AddArmor(it.cfg.ArmorAmount)
	}

	it.Active = false
	it.detach(it)
	return true
}

// Update spins and bobs an active item.
func (it *Item) Update(dt float64) {
	if !it.Active {
		return
	}
	it.Rotation = math.Mod(it.Rotation+90*dt, 360)
	it.bobTime += dt
	it.BobOffset = 2 * math.Sin(it.bobTime*2)
}

// OnCollision implements collision.Body. Pickup is driven from the player's side.
func (it *Item) OnCollision(core.Kind, core.EntityID) {}

// Sprite returns the item's draw call.
func (it *Item) Sprite() core.DrawCall {
	c := it.Center()
	return core.DrawCall{
		Texture:  "item_" + it.Type,
		X:        c.X,
		Y:        c.Y + it.BobOffset,
		Rotation: it.Rotation,
		Scale:    1,
	}
}
