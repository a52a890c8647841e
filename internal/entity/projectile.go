package entity

import (
	"math"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/physics"
)

const projectileSize = 4.0

// Projectile is a bullet in flight. It moves through the physics integrator
// and expires on its first hit, on a wall or when out of range.
type Projectile struct {
	body

	Owner     core.EntityID
	OwnerKind core.Kind
	Weapon    string
	Angle     float64
	Damage    float64
	Range     float64
	Travelled float64
	Knockback float64
	Kin       *physics.Kinematic

	lookup  Lookup
	expired bool
}

// NewProjectile turns a shot into a projectile centred on the shot origin.
func NewProjectile(id core.EntityID, s Shot, knockback float64, lookup Lookup) *Projectile {
	dir := core.FromAngle(s.Angle)
	return &Projectile{
		body: body{
			id: id,
			X:  s.X - projectileSize/2,
			Y:  s.Y - projectileSize/2,
			W:  projectileSize,
			H:  projectileSize,
		},
		Owner:     s.Owner,
		OwnerKind: s.OwnerKind,
		Weapon:    s.Weapon,
		Angle:     s.Angle,
		Damage:    s.Damage,
		Range:     s.Range,
		Knockback: knockback,
		Kin:       &physics.Kinematic{VX: dir.X * s.Speed, VY: dir.Y * s.Speed, MaxSpeed: s.Speed},
		lookup:    lookup,
	}
}

// Kind implements collision.Body.
func (pr *Projectile) Kind() core.Kind { return core.KindProjectile }

// Kinematics implements physics.Mobile.
func (pr *Projectile) Kinematics() *physics.Kinematic { return pr.Kin }

// Attach registers the projectile with the collision world.
func (pr *Projectile) Attach(w World) {
	pr.world = w
	w.Register(pr)
}

// Expired reports whether the projectile is spent.
func (pr *Projectile) Expired() bool {
	return pr.expired
}

// Expire spends the projectile and unregisters it.
func (pr *Projectile) Expire() {
	if pr.expired {
		return
	}
	pr.expired = true
	pr.Kin.Stop()
	pr.detach(pr)
}

// Advance records distance flown during one physics step. blocked is true
// when a wall stopped the projectile.
func (pr *Projectile) Advance(distance float64, blocked bool) {
	if pr.expired {
		return
	}
	pr.Travelled += distance
	if blocked || pr.Travelled >= pr.Range {
		pr.Expire()
	}
}

// OnCollision damages the first hostile it touches.
func (pr *Projectile) OnCollision(other core.Kind, id core.EntityID) {
	if pr.expired || other != core.KindEnemy || pr.OwnerKind == core.KindEnemy || pr.lookup == nil {
		return
	}
	e := pr.lookup.Enemy(id)
	if e == nil || e.Dead() {
		return
	}
	e.TakeDamage(pr.Damage)
	if !e.Dead() && pr.Knockback > 0 {
		physics.Impulse(e.Kin, math.Cos(pr.Angle)*pr.Knockback, math.Sin(pr.Angle)*pr.Knockback)
	}
	pr.Expire()
}

// Sprite returns the projectile's draw call.
func (pr *Projectile) Sprite() core.DrawCall {
	c := pr.Center()
	return core.DrawCall{
		Texture:  "bullet",
		X:        c.X,
		Y:        c.Y,
		Rotation: -pr.Angle * 180 / math.Pi,
		Scale:    1,
	}
}
