// Package entity holds the simulated objects of a scene: the player, enemies,
// pickups, weapons and projectiles.
//
// Entities never own each other. Cross-references are EntityID handles
// resolved through a Lookup supplied by the scene that owns the arena, and the
// collision system is reached through the narrow World interface.
package entity

import (
	"github.com/vovakirdan/tui-doom/internal/collision"
	"github.com/vovakirdan/tui-doom/internal/core"
)

// Registrar adds and removes bodies from the live collision set.
type Registrar interface {
	Register(b collision.Body)
	Unregister(b collision.Body)
}

// Mover resolves a displacement against walls and reports overlaps.
type Mover interface {
	ResolveMovement(b collision.Body, dx, dy float64) (float64, float64)
}

// World is the part of the collision system an entity talks to.
type World interface {
	Registrar
	Mover
}

// Lookup resolves handles to entities owned by the scene. Implementations
// return nil for unknown or removed handles.
type Lookup interface {
	Item(id core.EntityID) *Item
	Enemy(id core.EntityID) *Enemy
}

// body holds the fields every entity shares.
type body struct {
	id         core.EntityID
	X, Y, W, H float64
	world      World
}

func (b *body) ID() core.EntityID { return b.id }

// Bounds returns the AABB.
func (b *body) Bounds() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// SetPosition moves the top-left corner.
func (b *body) SetPosition(x, y float64) {
	b.X, b.Y = x, y
}

// Center returns the AABB centre.
func (b *body) Center() core.Vec2 {
	return core.Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// detach unregisters from the world once. Later calls are no-ops.
func (b *body) detach(self collision.Body) {
	if b.world != nil {
		b.world.Unregister(self)
		b.world = nil
	}
}

// move displaces through the world when attached, directly otherwise.
func (b *body) move(self collision.Body, dx, dy float64) {
	if b.world != nil {
		b.world.ResolveMovement(self, dx, dy)
		return
	}
	b.X += dx
	b.Y += dy
}
