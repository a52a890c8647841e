package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-doom/internal/collision"
	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/entity"
)

type dummy struct {
	pos    core.Vec2
	health float64
	hits   int
}

func (d *dummy) Center() core.Vec2 { return d.pos }
func (d *dummy) Dead() bool        { return d.health <= 0 }

func (d *dummy) TakeDamage(amount float64) {
	d.hits++
	d.health -= amount
}

func enemiesConfig() config.EnemiesConfig {
	return config.DefaultDoomConfig().Enemies
}

func newSystem() *System {
	cfg := enemiesConfig()
	return New(Config{SightRange: cfg.SightRange, PatrolTolerance: cfg.PatrolTolerance}, rand.New(rand.NewSource(1)))
}

// newEnemy places a basic enemy so that its centre is at (cx, cy).
func newEnemy(cx, cy float64) *entity.Enemy {
	cfg := enemiesConfig()
	e := entity.NewEnemy(7, cx-cfg.Width/2, cy-cfg.Height/2, "basic", cfg, rand.New(rand.NewSource(2)))
	return e
}

func TestFarTargetIsIgnored(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(900, 0), health: 100}

	for i := 0; i < 400; i++ {
		s.Update(target, []*entity.Enemy{e}, 0.25)
		require.Contains(t, []entity.EnemyState{entity.StateIdle, entity.StatePatrol}, e.State)
	}
	assert.Equal(t, 0, target.hits)
}

func TestSightAndAttackRange(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(400, 0), health: 100}

	s.Update(target, []*entity.Enemy{e}, 0.25)
	assert.Equal(t, entity.StateChase, e.State)

	target.pos = core.V(30, 0)
	s.Update(target, []*entity.Enemy{e}, 0.25)
	assert.Equal(t, entity.StateAttack, e.State)
}

func TestAttackDealsDamageAfterAttackRate(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(30, 0), health: 100}
	enemies := []*entity.Enemy{e}

	s.Update(target, enemies, 0.25)
	require.Equal(t, entity.StateAttack, e.State, "attack within one tick")

	// attack_rate is 1s: three more quarter-second ticks land the first blow.
	s.Update(target, enemies, 0.25)
	s.Update(target, enemies, 0.25)
	assert.Equal(t, 100.0, target.health)

	s.Update(target, enemies, 0.25)
	assert.Equal(t, 100-e.Stats.Damage, target.health)
	assert.Equal(t, 1, target.hits)
	assert.Equal(t, e.Stats.AttackRate, e.AttackCooldown)

	for i := 0; i < 4; i++ {
		s.Update(target, enemies, 0.25)
	}
	assert.Equal(t, 2, target.hits)
}

func TestAttackIsLockedWhileInRange(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(30, 0), health: 100}
	enemies := []*entity.Enemy{e}

	s.Update(target, enemies, 0.25)
	require.Equal(t, entity.StateAttack, e.State)

	// Still within attack range: the visibility check leaves attack alone.
	target.pos = core.V(45, 0)
	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateAttack, e.State)

	// Out of range: only the attack handler releases it.
	target.pos = core.V(200, 0)
	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateChase, e.State)
}

func TestHurtIsLockedUntilTimerExpires(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(300, 0), health: 100}
	enemies := []*entity.Enemy{e}

	e.TakeDamage(5)
	require.Equal(t, entity.StateHurt, e.State)
	e.HurtTime = 0.5

	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateHurt, e.State, "visible target does not break the stun")
	assert.Equal(t, core.V(-16, -16), e.Position(), "hurt enemies do not move")

	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateChase, e.State)
}

func TestHurtFallsBackToPatrolWhenUnseen(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(5000, 0), health: 100}

	e.TakeDamage(5)
	e.HurtTime = 0.25
	s.Update(target, []*entity.Enemy{e}, 0.25)
	assert.Equal(t, entity.StatePatrol, e.State)
}

func TestLosingSightDuringChase(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(400, 0), health: 100}
	enemies := []*entity.Enemy{e}

	s.Update(target, enemies, 0.25)
	require.Equal(t, entity.StateChase, e.State)
	assert.Greater(t, e.Center().X, 0.0, "chasing moves toward the target")

	target.pos = core.V(2000, 0)
	s.Update(target, enemies, 0.25)
	assert.NotEqual(t, entity.StateChase, e.State)
	assert.True(t, e.HasLastSeen)
	assert.Equal(t, core.V(2000, 0), e.LastSeen)
}

func TestPatrolCycle(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	e.Patrol = []core.Vec2{core.V(e.X+12, e.Y), core.V(e.X, e.Y)}
	e.State = entity.StatePatrol
	e.Speed = 40
	target := &dummy{pos: core.V(5000, 0), health: 100}
	enemies := []*entity.Enemy{e}

	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StatePatrol, e.State)
	assert.Equal(t, 0.0, e.Direction, "faces the waypoint")

	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateIdle, e.State, "reaching a waypoint idles")
	assert.Equal(t, 1, e.PatrolIndex)

	e.IdleDuration = 0.5
	for i := 0; i < 3; i++ {
		s.Update(target, enemies, 0.25)
	}
	assert.Equal(t, entity.StatePatrol, e.State)
	assert.Equal(t, 0.0, e.IdleTime)
}

func TestEmptyPatrolRouteIdles(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	e.Patrol = nil
	target := &dummy{pos: core.V(5000, 0), health: 100}

	for i := 0; i < 100; i++ {
		s.Update(target, []*entity.Enemy{e}, 0.25)
		if e.State == entity.StatePatrol {
			t.Fatalf("tick %d: enemy without waypoints left in patrol", i)
		}
	}
	assert.Equal(t, entity.StateIdle, e.State)
	assert.Equal(t, core.V(-16, -16), e.Position())
}

func TestDeadEnemyRemovedAfterDeathTimer(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(10, 0), health: 100}
	enemies := []*entity.Enemy{e}

	e.Die()
	require.Equal(t, 2.0, e.DeathTime)

	for i := 0; i < 7; i++ {
		s.Update(target, enemies, 0.25)
		assert.Equal(t, entity.StateDead, e.State, "dead enemies never re-enter")
		assert.False(t, e.ShouldRemove, "tick %d", i)
	}
	s.Update(target, enemies, 0.25)
	assert.True(t, e.ShouldRemove)

	s.Update(target, enemies, 0.25)
	assert.True(t, e.ShouldRemove, "flag is never cleared")
	assert.Equal(t, 0, target.hits)
}

func TestDeadTargetIsNotAttacked(t *testing.T) {
	s := newSystem()
	e := newEnemy(0, 0)
	target := &dummy{pos: core.V(30, 0), health: 100}
	enemies := []*entity.Enemy{e}

	s.Update(target, enemies, 0.25)
	require.Equal(t, entity.StateAttack, e.State)

	target.health = 0
	s.Update(target, enemies, 0.25)
	assert.Equal(t, entity.StateIdle, e.State)
	assert.False(t, s.CanSee(e, target))
}

func TestChaseIsStoppedByWalls(t *testing.T) {
	tiles := [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{1, 0, 1, 0, 1},
		{1, 1, 1, 1, 1},
	}
	world := collision.New(collision.BuildGrid(tiles, nil, 64))

	s := newSystem()
	e := newEnemy(96, 96)
	e.Attach(world)
	target := &dummy{pos: core.V(224, 96), health: 100}

	for i := 0; i < 20; i++ {
		s.Update(target, []*entity.Enemy{e}, 0.25)
	}
	assert.Equal(t, entity.StateChase, e.State)
	assert.LessOrEqual(t, e.Bounds().Right(), 128.0, "straight-line pursuit does not pass walls")
}
