// Package ai drives the enemy state machine.
//
// Each tick every enemy is evaluated once: dead enemies only run their death
// timer; otherwise, unless locked in attack or hurt, visibility of the player
// picks chase or attack (or drops a lost chase back to patrol), and then the
// handler for the resulting state runs.
package ai

import (
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/entity"
)

// Target is what enemies hunt.
type Target interface {
	Center() core.Vec2
	TakeDamage(amount float64)
	Dead() bool
}

// Config holds the AI tunables.
type Config struct {
	SightRange      float64
	PatrolTolerance float64
}

type handler func(s *System, e *entity.Enemy, t Target, dt float64)

// System updates enemies. It holds no references between ticks.
type System struct {
	cfg      Config
	rng      *rand.Rand
	handlers map[entity.EnemyState]handler
}

// New creates an AI system. rng draws idle durations.
func New(cfg Config, rng *rand.Rand) *System {
	if cfg.PatrolTolerance <= 0 {
		cfg.PatrolTolerance = 5
	}
	return &System{
		cfg: cfg,
		rng: rng,
		handlers: map[entity.EnemyState]handler{
			entity.StateIdle:   (*System).updateIdle,
			entity.StatePatrol: (*System).updatePatrol,
			entity.StateChase:  (*System).updateChase,
			entity.StateAttack: (*System).updateAttack,
			entity.StateHurt:   (*System).updateHurt,
			entity.StateDead:   (*System).updateDead,
		},
	}
}

// Update runs one tick for every enemy.
func (s *System) Update(t Target, enemies []*entity.Enemy, dt float64) {
	for _, e := range enemies {
		s.updateEnemy(e, t, dt)
	}
}

func (s *System) updateEnemy(e *entity.Enemy, t Target, dt float64) {
	if e.State != entity.StateDead && !e.State.Locked() {
		if s.CanSee(e, t) {
			if s.distance(e, t) < e.Stats.AttackRange {
				e.EnterAttack()
			} else {
				e.State = entity.StateChase
			}
		} else if e.State == entity.StateChase {
			e.LastSeen = t.Center()
			e.HasLastSeen = true
			e.State = entity.StatePatrol
		}
	}

	if h, ok := s.handlers[e.State]; ok {
		h(s, e, t, dt)
	}
}

// CanSee reports whether the target is within sight range. There is no
// occlusion test. Dead targets are never seen.
func (s *System) CanSee(e *entity.Enemy, t Target) bool {
	if t == nil || t.Dead() {
		return false
	}
	return s.distance(e, t) <= s.cfg.SightRange
}

func (s *System) distance(e *entity.Enemy, t Target) float64 {
	return e.Center().DistanceTo(t.Center())
}

func (s *System) updateIdle(e *entity.Enemy, _ Target, dt float64) {
	e.IdleTime += dt
	if e.IdleTime > e.IdleDuration {
		e.IdleTime = 0
		if len(e.Patrol) > 0 {
			e.State = entity.StatePatrol
		}
	}
}

func (s *System) updatePatrol(e *entity.Enemy, _ Target, dt float64) {
	if len(e.Patrol) == 0 {
		e.EnterIdle(s.rng)
		return
	}
	if e.PatrolIndex >= len(e.Patrol) {
		e.PatrolIndex = 0
	}

	delta := e.Patrol[e.PatrolIndex].Sub(e.Position())
	dist := delta.Len()
	if dist < s.cfg.PatrolTolerance {
		e.PatrolIndex = (e.PatrolIndex + 1) % len(e.Patrol)
		e.EnterIdle(s.rng)
		return
	}

	step := delta.Normalized().Scale(e.Speed * dt)
	e.Move(step.X, step.Y)
	e.Direction = delta.Angle()
}

func (s *System) updateChase(e *entity.Enemy, t Target, dt float64) {
	delta := t.Center().Sub(e.Center())
	dist := delta.Len()

	if dist > e.Stats.AttackRange {
		step := delta.Normalized().Scale(e.Speed * dt)
		e.Move(step.X, step.Y)
	} else {
		e.EnterAttack()
	}
	e.Direction = delta.Angle()
}

func (s *System) updateAttack(e *entity.Enemy, t Target, dt float64) {
	if t.Dead() {
		e.EnterIdle(s.rng)
		return
	}

	delta := t.Center().Sub(e.Center())
	e.Direction = delta.Angle()

	if delta.Len() > e.Stats.AttackRange {
		e.State = entity.StateChase
		return
	}

	e.AttackCooldown -= dt
	if e.AttackCooldown <= 0 {
		t.TakeDamage(e.Stats.Damage)
		e.AttackCooldown = e.Stats.AttackRate
	}
}

func (s *System) updateHurt(e *entity.Enemy, t Target, dt float64) {
	e.HurtTime -= dt
	if e.HurtTime > 0 {
		return
	}
	e.HurtTime = 0
	if s.CanSee(e, t) {
		e.State = entity.StateChase
	} else {
		e.State = entity.StatePatrol
	}
}

func (s *System) updateDead(e *entity.Enemy, _ Target, dt float64) {
	if e.ShouldRemove {
		return
	}
	e.DeathTime -= dt
	if e.DeathTime <= 0 {
		e.DeathTime = 0
		e.ShouldRemove = true
	}
}
