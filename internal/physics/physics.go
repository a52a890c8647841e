// Package physics integrates velocity for entities that carry a Kinematic
// component and moves them through the collision system.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-doom/internal/collision"
	"github.com/vovakirdan/tui-doom/internal/config"
)

// Kinematic is the optional velocity component. Entities without one are
// moved directly by their own logic and never touched by the integrator.
type Kinematic struct {
	VX, VY float64
	// MaxSpeed caps |v|. Zero means the integrator's configured cap.
	MaxSpeed float64
	// Damping enables friction. Projectiles fly undamped.
	Damping bool
}

// Speed returns the velocity magnitude.
func (k *Kinematic) Speed() float64 {
	return math.Hypot(k.VX, k.VY)
}

// Stop zeroes the velocity.
func (k *Kinematic) Stop() {
	k.VX, k.VY = 0, 0
}

// Resting reports whether the body has no velocity left.
func (k *Kinematic) Resting() bool {
	return k.VX == 0 && k.VY == 0
}

// Mobile is a collision body with a velocity component.
type Mobile interface {
	collision.Body
	// Kinematics returns the component, or nil if the entity has none.
	Kinematics() *Kinematic
}

// Result reports what happened during one integration step.
type Result struct {
	Moved    bool
	BlockedX bool
	BlockedY bool
}

// Blocked reports whether either axis hit a wall.
func (r Result) Blocked() bool {
	return r.BlockedX || r.BlockedY
}

// Integrator applies gravity, friction and speed caps, then resolves the
// displacement against the collision system.
type Integrator struct {
	cfg       config.PhysicsConfig
	collision *collision.System
}

// New creates an integrator.
func New(cfg config.PhysicsConfig, sys *collision.System) *Integrator {
	return &Integrator{cfg: cfg, collision: sys}
}

// Step advances one mobile entity by dt seconds.
func (in *Integrator) Step(m Mobile, dt float64) Result {
	k := m.Kinematics()
	if k == nil || dt <= 0 {
		return Result{}
	}

	if in.cfg.GravityEnabled {
		k.VY += in.cfg.Gravity * dt
	}

	if k.Damping {
		f := math.Max(0, 1-in.cfg.Friction*dt)
		k.VX *= f
		k.VY *= f
	}

	if math.Abs(k.VX) < in.cfg.StopThreshold {
		k.VX = 0
	}
	if math.Abs(k.VY) < in.cfg.StopThreshold {
		k.VY = 0
	}

	limit := k.MaxSpeed
	if limit <= 0 {
		limit = in.cfg.MaxSpeed
	}
	if speed := k.Speed(); limit > 0 && speed > limit {
		scale := limit / speed
		k.VX *= scale
		k.VY *= scale
	}

	if k.Resting() {
		return Result{}
	}

	dx, dy := k.VX*dt, k.VY*dt
	before := m.Bounds()

	var x, y float64
	if in.collision != nil {
		x, y = in.collision.ResolveMovement(m, dx, dy)
	} else {
		x, y = before.X+dx, before.Y+dy
		m.SetPosition(x, y)
	}

	res := Result{
		BlockedX: dx != 0 && x == before.X,
		BlockedY: dy != 0 && y == before.Y,
	}
	res.Moved = x != before.X || y != before.Y

	if res.BlockedX {
		k.VX = 0
	}
	if res.BlockedY {
		k.VY = 0
	}
	return res
}

// Impulse adds an instantaneous velocity change.
func Impulse(k *Kinematic, ix, iy float64) {
	if k == nil {
		return
	}
	k.VX += ix
	k.VY += iy
}
