package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/physics"
)

// EnemyState is a node of the enemy behaviour state machine.
type EnemyState int

const (
	StateIdle EnemyState = iota
	StatePatrol
	StateChase
	StateAttack
	StateHurt
	StateDead
)

var stateNames = [...]string{"idle", "patrol", "chase", "attack", "hurt", "dead"}

func (s EnemyState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Locked reports whether the state ignores visibility changes. Only the
// state's own timer or condition releases it.
func (s EnemyState) Locked() bool {
	return s == StateAttack || s == StateHurt
}

// Enemy is an AI-driven hostile.
type Enemy struct {
	body

	Type      string
	Stats     config.EnemyStats
	Speed     float64
	Direction float64 // radians
	Health    float64
	MaxHealth float64
	State     EnemyState

	Patrol      []core.Vec2
	PatrolIndex int

	IdleTime       float64
	IdleDuration   float64
	AttackCooldown float64
	HurtTime       float64
	DeathTime      float64

	LastSeen    core.Vec2
	HasLastSeen bool

	// ShouldRemove is set once the death timer runs out and is never cleared.
	ShouldRemove bool
	AnimFrame    float64

	// Kin carries knockback velocity.
	Kin *physics.Kinematic

	cfg config.EnemiesConfig
}

// NewEnemy creates an enemy of the given type at (x, y). Unknown types use
// the configured default type. The patrol route and first idle duration are
// drawn from rng.
func NewEnemy(id core.EntityID, x, y float64, typ string, cfg config.EnemiesConfig, rng *rand.Rand) *Enemy {
	name, stats := LookupEnemy(cfg.Types, typ, cfg.DefaultType)
	e := &Enemy{
		body:      body{id: id, X: x, Y: y, W: cfg.Width, H: cfg.Height},
		Type:      name,
		Stats:     stats,
		Speed:     stats.Speed,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		State:     StateIdle,
		Kin:       &physics.Kinematic{Damping: true},
		cfg:       cfg,
	}
	e.Patrol = patrolRoute(core.V(x, y), cfg, rng)
	e.IdleDuration = idleDuration(cfg, rng)
	return e
}

// patrolRoute places a random number of points evenly spaced in angle on a
// circle of random radius around the spawn.
func patrolRoute(spawn core.Vec2, cfg config.EnemiesConfig, rng *rand.Rand) []core.Vec2 {
	if cfg.PatrolPointsMax <= 0 {
		return nil
	}
	radius := uniform(rng, cfg.PatrolRadiusMin, cfg.PatrolRadiusMax)
	count := cfg.PatrolPointsMin
	if span := cfg.PatrolPointsMax - cfg.PatrolPointsMin; span > 0 && rng != nil {
		count += rng.Intn(span + 1)
	}
	if count <= 0 {
		return nil
	}

	points := make([]core.Vec2, count)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(count)
		points[i] = spawn.Add(core.FromAngle(angle).Scale(radius))
	}
	return points
}

func idleDuration(cfg config.EnemiesConfig, rng *rand.Rand) float64 {
	return uniform(rng, cfg.IdleMin, cfg.IdleMax)
}

// uniform draws from [lo, hi]. Without a source it returns lo.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if rng == nil || hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Kind implements collision.Body.
func (e *Enemy) Kind() core.Kind { return core.KindEnemy }

// Kinematics implements physics.Mobile.
func (e *Enemy) Kinematics() *physics.Kinematic { return e.Kin }

// Attach registers the enemy with the collision world.
func (e *Enemy) Attach(w World) {
	e.world = w
	w.Register(e)
}

// Position returns the top-left corner. Patrol points are in the same frame.
func (e *Enemy) Position() core.Vec2 {
	return core.V(e.X, e.Y)
}

// Dead reports whether the enemy is in the terminal state.
func (e *Enemy) Dead() bool {
	return e.State == StateDead
}

// Move displaces the enemy through the collision world.
func (e *Enemy) Move(dx, dy float64) {
	e.move(e, dx, dy)
}

// EnterIdle switches to idle with a freshly drawn idle duration.
func (e *Enemy) EnterIdle(rng *rand.Rand) {
	e.State = StateIdle
	e.IdleTime = 0
	if rng != nil {
		e.IdleDuration = idleDuration(e.cfg, rng)
	}
}

// EnterAttack switches to attack, priming the cooldown so the first blow
// lands one attack_rate after contact.
func (e *Enemy) EnterAttack() {
	if e.State != StateAttack {
		e.AttackCooldown = e.Stats.AttackRate
	}
	e.State = StateAttack
}

// TakeDamage lowers health. A surviving enemy is stunned for hurt_duration;
// a dead one ignores further damage.
func (e *Enemy) TakeDamage(amount float64) {
	if e.Dead() || amount <= 0 {
		return
	}
	e.Health = core.ClampF(e.Health-amount, 0, e.MaxHealth)
	if e.Health <= 0 {
		e.Die()
		return
	}
	e.State = StateHurt
	e.HurtTime = e.cfg.HurtDuration
}

// Die enters the dead state and stops colliding. Removal happens after
// death_duration via ShouldRemove.
func (e *Enemy) Die() {
	if e.Dead() {
		return
	}
	e.State = StateDead
	e.Health = 0
	e.DeathTime = e.cfg.DeathDuration
	e.Kin.Stop()
	e.detach(e)
}

// Update advances the animation.
func (e *Enemy) Update(dt float64) {
	// 4 frames at 8 fps
	e.AnimFrame = math.Mod(e.AnimFrame+dt*8, 4)
}

// OnCollision implements collision.Body. Contact alone does nothing; damage
// is dealt by the AI attack state and by projectiles.
func (e *Enemy) OnCollision(core.Kind, core.EntityID) {}

// Sprite returns the enemy's draw call.
func (e *Enemy) Sprite() core.DrawCall {
	c := e.Center()
	return core.DrawCall{
		Texture:  fmt.Sprintf("enemy_%s_%s_%d", e.Type, e.State, int(e.AnimFrame)),
		X:        c.X,
		Y:        c.Y,
		Rotation: -e.Direction * 180 / math.Pi,
		Scale:    1,
	}
}
