package doom

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/maps"
	"github.com/vovakirdan/tui-doom/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func resetGlobals(t *testing.T) {
	t.Helper()
	SetMap("")
	SetDifficultyPreset("")
	SetConfigPath("")
	t.Cleanup(func() {
		SetMap("")
		SetDifficultyPreset("")
	})
}

// scriptedInput returns the input for tick i of a fixed script.
func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	switch {
	case i < 60:
		in.Set(core.ActionMoveRight)
	case i < 120:
		in.Set(core.ActionMoveDown)
		in.Set(core.ActionFire)
	case i < 180:
		in.Set(core.ActionMoveLeft)
		in.Set(core.ActionSprint)
	}
	in.SetPointer(float64(400+i), float64(300-i))
	return in
}

func TestDeterminism(t *testing.T) {
	resetGlobals(t)

	for _, mode := range []string{"doom", "doom_survival"} {
		t.Run(mode, func(t *testing.T) {
			cfg := testRuntime(12345)

			g1, _ := registry.Create(mode)
			g2, _ := registry.Create(mode)
			g1.Reset(cfg)
			g2.Reset(cfg)

			for i := 0; i < 300; i++ {
				in := scriptedInput(i)
				g1.Step(in)
				g2.Step(in)
			}

			snap1 := g1.(*Game).Snapshot()
			snap2 := g2.(*Game).Snapshot()

			if snap1.Tick != snap2.Tick {
				t.Errorf("Tick mismatch: %d vs %d", snap1.Tick, snap2.Tick)
			}
			if snap1.PlayerX != snap2.PlayerX || snap1.PlayerY != snap2.PlayerY {
				t.Errorf("Player position mismatch: (%v,%v) vs (%v,%v)",
					snap1.PlayerX, snap1.PlayerY, snap2.PlayerX, snap2.PlayerY)
			}
			if snap1.EnemyCount != snap2.EnemyCount {
				t.Errorf("Enemy count mismatch: %d vs %d", snap1.EnemyCount, snap2.EnemyCount)
			}
			if snap1.Hash() != snap2.Hash() {
				t.Errorf("Hash mismatch: %d vs %d", snap1.Hash(), snap2.Hash())
			}
		})
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	resetGlobals(t)

	g1 := NewSurvival()
	g2 := NewSurvival()
	g1.Reset(testRuntime(1))
	g2.Reset(testRuntime(2))

	in := core.NewInputFrame()
	g1.Step(in)
	g2.Step(in)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() == s2.Hash() {
		t.Error("different seeds produced identical survival runs")
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"doom", "doom_survival"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}

	g, err := registry.Create("doom_survival")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Doom (Survival)" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Doom (Survival)")
	}
	if _, ok := g.(registry.Saver); !ok {
		t.Error("survival game does not implement registry.Saver")
	}
	if _, ok := g.(registry.Pointer); !ok {
		t.Error("survival game does not implement registry.Pointer")
	}
}

func TestTickStats(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(1))

	alive := g.Scene().Alive()
	st := g.TickStats()
	if st.LiveEnemies != alive || st.Kills != 0 || st.PlayerDead {
		t.Errorf("TickStats() = %+v, expected %d live enemies", st, alive)
	}

	g.Scene().Enemies()[0].TakeDamage(1e6)
	g.Scene().Player().TakeDamage(1e6)
	g.Step(core.NewInputFrame())

	st = g.TickStats()
	if st.LiveEnemies != alive-1 || st.Kills != 1 || !st.PlayerDead {
		t.Errorf("TickStats() = %+v after a kill and a death", st)
	}
}

func TestPauseToggle(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(7))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused after pause action")
	}

	ticks := g.Scene().Ticks()
	g.Step(core.NewInputFrame())
	if g.Scene().Ticks() != ticks {
		t.Error("scene advanced while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("expected unpaused after second pause action")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(7))

	g.Scene().Player().TakeDamage(1000)
	g.Step(core.NewInputFrame())

	if !g.State().GameOver || g.Status() != StateGameOver {
		t.Fatalf("State() = %+v, status %q, expected game over", g.State(), g.Status())
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.State().GameOver {
		t.Error("still game over after restart")
	}
	p := g.Scene().Player()
	if p.Dead() || p.Health != p.MaxHealth {
		t.Errorf("restarted player dead=%v health=%v", p.Dead(), p.Health)
	}
}

func TestCampaignAdvancesAndWins(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(3))

	if g.Snapshot().Scene != "e1m1" {
		t.Fatalf("start scene = %q, expected e1m1", g.Snapshot().Scene)
	}
	first := len(g.Scene().Enemies())

	killAll := func() {
		for _, e := range g.Scene().Enemies() {
			e.TakeDamage(e.Health)
		}
	}

	g.Scene().Player().Armor = 40
	killAll()
	idle := core.NewInputFrame()
	for i := 0; i < 300 && g.Snapshot().Scene == "e1m1"; i++ {
		g.Step(idle)
	}

	if g.Snapshot().Scene != "e1m2" {
		t.Fatalf("scene = %q after clearing e1m1, expected e1m2", g.Snapshot().Scene)
	}
	if g.State().Score != first*pointsPerKill {
		t.Errorf("Score = %d, expected %d", g.State().Score, first*pointsPerKill)
	}
	if g.Scene().Player().Armor != 40 {
		t.Errorf("Armor = %v, expected it carried over as 40", g.Scene().Player().Armor)
	}

	killAll()
	for i := 0; i < 300 && g.Status() == StatePlaying; i++ {
		g.Step(idle)
	}
	if g.Status() != StateWin || !g.State().GameOver {
		t.Errorf("status = %q, expected %q", g.Status(), StateWin)
	}
}

func TestSurvivalWaves(t *testing.T) {
	resetGlobals(t)
	g := NewSurvival()
	g.Reset(testRuntime(9))

	g.Step(core.NewInputFrame())
	w := g.Waves()
	if w.Wave != 1 || w.InBreak {
		t.Fatalf("wave %d in break %v, expected wave 1 running", w.Wave, w.InBreak)
	}

	s := g.Scene()
	if n := s.Alive(); n < g.cfg.Waves.BaseCount {
		t.Errorf("wave 1 has %d enemies, expected at least %d", n, g.cfg.Waves.BaseCount)
	}
	pc := s.Player().Center()
	for _, e := range s.Enemies() {
		if d := e.Center().DistanceTo(pc); d < g.cfg.Waves.SpawnMargin-float64(g.cfg.World.TileSize) {
			t.Errorf("enemy spawned %v from the player", d)
		}
		if s.Collision().TileCollision(e.X, e.Y, e.W, e.H) {
			t.Errorf("enemy spawned inside a wall at (%v, %v)", e.X, e.Y)
		}
	}

	for _, e := range s.Enemies() {
		e.TakeDamage(e.Health)
	}
	g.Step(core.NewInputFrame())
	if !w.InBreak || w.BreakLeft != g.cfg.Waves.BreakTime {
		t.Fatalf("in break %v with %v left, expected a %v s break", w.InBreak, w.BreakLeft, g.cfg.Waves.BreakTime)
	}

	w.BreakLeft = 0.001
	g.Step(core.NewInputFrame())
	if w.Wave != 2 || w.InBreak {
		t.Errorf("wave %d in break %v, expected wave 2 running", w.Wave, w.InBreak)
	}
	if s.Alive() <= g.cfg.Waves.BaseCount {
		t.Errorf("wave 2 has %d enemies, expected more than wave 1's base", s.Alive())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(5))

	p := g.Scene().Player()
	p.SetPosition(150, 170)
	p.Health = 55
	p.Armor = 12
	p.GiveWeapon("rifle")
	if i, ok := p.Weapons.Find("rifle"); ok {
		p.Weapons.Select(i)
	}
	p.CurrentWeapon().Ammo = 17

	rec := g.SaveState(2)
	if rec.Slot != 2 || rec.Scene != "e1m1" {
		t.Errorf("SaveState() slot %d scene %q, expected 2, e1m1", rec.Slot, rec.Scene)
	}
	if len(rec.Weapons) != 3 {
		t.Fatalf("saved %d weapons, expected 3", len(rec.Weapons))
	}

	g2 := New()
	g2.Reset(testRuntime(6))
	if err := g2.LoadState(rec); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}

	q := g2.Scene().Player()
	if q.X != 150 || q.Y != 170 {
		t.Errorf("position = (%v, %v), expected (150, 170)", q.X, q.Y)
	}
	if q.Health != 55 || q.Armor != 12 {
		t.Errorf("health, armor = %v, %v, expected 55, 12", q.Health, q.Armor)
	}
	w := q.CurrentWeapon()
	if w == nil || w.Type != "rifle" || w.Ammo != 17 {
		t.Errorf("current weapon = %+v, expected rifle with 17 rounds", w)
	}
	if q.Weapons.Len() != 3 {
		t.Errorf("weapons = %d, expected 3", q.Weapons.Len())
	}

	again := g2.SaveState(2)
	if again.Player != rec.Player {
		t.Errorf("re-saved player %+v, expected %+v", again.Player, rec.Player)
	}
}

func TestLoadStateRejectsOtherMode(t *testing.T) {
	resetGlobals(t)
	campaign := New()
	campaign.Reset(testRuntime(1))
	survival := NewSurvival()
	survival.Reset(testRuntime(1))

	if err := survival.LoadState(campaign.SaveState(1)); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("survival LoadState(campaign save) error = %v, expected ErrModeMismatch", err)
	}
	if err := campaign.LoadState(survival.SaveState(1)); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("campaign LoadState(survival save) error = %v, expected ErrModeMismatch", err)
	}
}

func TestMapSelection(t *testing.T) {
	resetGlobals(t)

	SetMap("no-such-level")
	g := New()
	g.Reset(testRuntime(1))
	if g.Scene().Name != maps.DefaultLevel {
		t.Errorf("unknown map loaded %q, expected fallback %q", g.Scene().Name, maps.DefaultLevel)
	}

	SetMap("e1m2")
	g.Reset(testRuntime(1))
	if g.Scene().Name != maps.DefaultLevel {
		t.Errorf("SetMap changed an existing game to %q", g.Scene().Name)
	}

	g = New()
	g.Reset(testRuntime(1))
	if g.Scene().Name != "e1m2" {
		t.Errorf("SetMap(e1m2) loaded %q", g.Scene().Name)
	}

	opts := g.Options()
	opts.Map = "e1m1"
	g.SetOptions(opts)
	g.Reset(testRuntime(1))
	if g.Scene().Name != "e1m1" {
		t.Errorf("SetOptions(Map: e1m1) loaded %q", g.Scene().Name)
	}
}

func TestDifficultyPresetScalesEnemies(t *testing.T) {
	resetGlobals(t)

	SetDifficultyPreset("nightmare")
	g := New()
	g.Reset(testRuntime(1))

	base := 50.0 // basic health
	if got := g.cfg.Enemies.Types["basic"].Health; got != base*1.5 {
		t.Errorf("basic health = %v, expected %v", got, base*1.5)
	}
}

func TestRender(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Get(40, 12); got != PlayerChar {
		t.Errorf("cell (40,12) = %q, expected the player", got)
	}
	if hud := screen.Row(0); !strings.Contains(hud, "HP 100") || !strings.Contains(hud, "pistol") {
		t.Errorf("HUD = %q, expected health and weapon", hud)
	}

	cam := g.Camera()
	pc := g.Scene().Player().Center()
	col, row := cam.WorldToScreen(pc.X, pc.Y)
	if col != 40 || row != 12 {
		t.Errorf("WorldToScreen(player) = (%d, %d), expected (40, 12)", col, row)
	}
	wx, wy := cam.ScreenToWorld(col, row)
	if c2, r2 := cam.WorldToScreen(wx, wy); c2 != col || r2 != row {
		t.Errorf("ScreenToWorld/WorldToScreen round trip = (%d, %d), expected (%d, %d)", c2, r2, col, row)
	}

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected a too-small message")
	}
}

func TestPauseOverlay(t *testing.T) {
	resetGlobals(t)
	g := New()
	g.Reset(testRuntime(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game does not show the overlay")
	}
}
