package collision

import (
	"github.com/vovakirdan/tui-doom/internal/core"
)

// Body is anything the collision system can move and notify.
type Body interface {
	ID() core.EntityID
	Kind() core.Kind
	Bounds() core.Box
	SetPosition(x, y float64)
	// OnCollision is called once per overlapping pair per resolved move.
	OnCollision(other core.Kind, id core.EntityID)
}

// System owns the tile grid and the set of registered bodies.
// Registration order is preserved and drives callback order.
type System struct {
	grid   *Grid
	bodies []Body
	index  map[core.EntityID]int
}

// New creates a collision system over the given grid. A nil grid is
// treated as empty, so every tile check collides.
func New(grid *Grid) *System {
	if grid == nil {
		grid = &Grid{tileSize: 64}
	}
	return &System{
		grid:  grid,
		index: make(map[core.EntityID]int),
	}
}

// Grid returns the static tile grid.
func (s *System) Grid() *Grid {
	return s.grid
}

// Register adds a body. Registering a member again is a no-op.
func (s *System) Register(b Body) {
	if _, ok := s.index[b.ID()]; ok {
		return
	}
	s.index[b.ID()] = len(s.bodies)
	s.bodies = append(s.bodies, b)
}

// Unregister removes a body. Unregistering a non-member is a no-op.
func (s *System) Unregister(b Body) {
	i, ok := s.index[b.ID()]
	if !ok {
		return
	}
	copy(s.bodies[i:], s.bodies[i+1:])
	s.bodies[len(s.bodies)-1] = nil
	s.bodies = s.bodies[:len(s.bodies)-1]
	delete(s.index, b.ID())
	for j := i; j < len(s.bodies); j++ {
		s.index[s.bodies[j].ID()] = j
	}
}

// Registered reports whether a body with the given handle is registered.
func (s *System) Registered(id core.EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of registered bodies.
func (s *System) Len() int {
	return len(s.bodies)
}

// TileCollision reports whether the box (x, y, w, h) hits a wall or leaves the map.
func (s *System) TileCollision(x, y, w, h float64) bool {
	return s.grid.Blocked(x, y, w, h)
}

// EntityCollision reports whether two bodies overlap. Touching edges do not count.
func (s *System) EntityCollision(a, b Body) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// ResolveMovement moves b by (dx, dy) against the tile grid, one axis at a
// time: X first from the current position, then Y from the possibly updated
// X. A blocked axis keeps its old coordinate. Afterwards every other
// registered body overlapping b is notified, b first and then the other.
//
// b does not have to be registered; unregistered movers still collide with
// walls and notify registered bodies they overlap.
func (s *System) ResolveMovement(b Body, dx, dy float64) (float64, float64) {
	box := b.Bounds()
	x, y := box.X, box.Y

	if nx := x + dx; !s.grid.Blocked(nx, y, box.W, box.H) {
		x = nx
	}
	if ny := y + dy; !s.grid.Blocked(x, ny, box.W, box.H) {
		y = ny
	}
	b.SetPosition(x, y)

	s.dispatch(b)

	return x, y
}

// dispatch notifies every overlapping pair involving b. Callbacks may
// unregister bodies, so iteration runs over a snapshot and skips bodies
// removed earlier in the same scan.
func (s *System) dispatch(b Body) {
	if len(s.bodies) == 0 {
		return
	}
	snapshot := make([]Body, len(s.bodies))
	copy(snapshot, s.bodies)

	self := b.ID()
	for _, other := range snapshot {
		if other.ID() == self || !s.Registered(other.ID()) {
			continue
		}
		if !s.EntityCollision(b, other) {
			continue
		}
		b.OnCollision(other.Kind(), other.ID())
		other.OnCollision(b.Kind(), self)
	}
}

// Overlapping returns the handles of registered bodies overlapping b,
// in registration order.
func (s *System) Overlapping(b Body) []core.EntityID {
	var ids []core.EntityID
	for _, other := range s.bodies {
		if other.ID() != b.ID() && s.EntityCollision(b, other) {
			ids = append(ids, other.ID())
		}
	}
	return ids
}
