package doom

import (
	"math/rand"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
)

// waveRoster lists the enemy types that can appear, unlocked by wave number.
var waveRoster = []struct {
	fromWave int
	typ      string
}{
	{1, "basic"},
	{3, "fast"},
	{5, "heavy"},
}

// Waves drives survival mode: a wave spawns, and once every enemy in it is
// dead a break timer runs before the next, larger wave.
type Waves struct {
	cfg        config.WavesConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	Wave      int     // current wave, 0 before the first
	InBreak   bool    // waiting for the next wave
	BreakLeft float64 // seconds until the next wave
}

// NewWaves creates the wave director. The first wave spawns on the first
// update.
func NewWaves(cfg config.WavesConfig, difficulty *config.DifficultyManager, rng *rand.Rand) *Waves {
	return &Waves{
		cfg:        cfg,
		difficulty: difficulty,
		rng:        rng,
		InBreak:    true,
	}
}

// Update advances the break timer and spawns the next wave when it is due.
// score feeds difficulty progression.
func (w *Waves) Update(s *Scene, score int, dt float64) {
	if !w.InBreak {
		if s.Alive() == 0 {
			w.InBreak = true
			w.BreakLeft = w.cfg.BreakTime
		}
		return
	}

	w.BreakLeft -= dt
	if w.BreakLeft > 0 {
		return
	}
	w.BreakLeft = 0
	w.InBreak = false
	w.Wave++
	n := w.spawn(s, score)
	logger.Info("wave started", "wave", w.Wave, "enemies", n)
}

// spawn places one wave on free tiles at least SpawnMargin away from the
// player and returns how many enemies were spawned.
func (w *Waves) spawn(s *Scene, score int) int {
	ticks := int(s.Ticks()) //#nosec G115 -- tick count fits in int
	n := w.difficulty.WaveSize(w.cfg.BaseCount, w.cfg.Increment, w.Wave, score, ticks)

	cells := w.spawnCells(s)
	if len(cells) == 0 {
		logger.Warn("no free tiles for wave", "wave", w.Wave)
		return 0
	}

	ts := s.collision.Grid().TileSize()
	ew, eh := s.cfg.Enemies.Width, s.cfg.Enemies.Height
	for i := 0; i < n; i++ {
		j := w.rng.Intn(len(cells))
		cell := cells[j]
		if len(cells) > n-i {
			cells = append(cells[:j], cells[j+1:]...)
		}

		x := float64(cell[0])*ts + (ts-ew)/2
		y := float64(cell[1])*ts + (ts-eh)/2
		e := s.SpawnEnemy(x, y, w.pickType())
		e.Speed = w.difficulty.Speed(e.Stats.Speed, score, ticks)
	}
	return n
}

func (w *Waves) spawnCells(s *Scene) [][2]int {
	grid := s.collision.Grid()
	ts := grid.TileSize()
	pc := s.player.Center()

	var far, all [][2]int
	for _, cell := range grid.FreeCells() {
		all = append(all, cell)
		c := core.V((float64(cell[0])+0.5)*ts, (float64(cell[1])+0.5)*ts)
		if c.DistanceTo(pc) >= w.cfg.SpawnMargin {
			far = append(far, cell)
		}
	}
	if len(far) > 0 {
		return far
	}
	return all
}

func (w *Waves) pickType() string {
	var pool []string
	for _, r := range waveRoster {
		if w.Wave >= r.fromWave {
			pool = append(pool, r.typ)
		}
	}
	return pool[w.rng.Intn(len(pool))]
}
