// Package doom is the top-down shooter: a scene of entities advanced by a
// fixed-order tick, wrapped in a registry.Game with campaign and survival
// modes.
package doom

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/entity"
	"github.com/vovakirdan/tui-doom/internal/inventory"
	"github.com/vovakirdan/tui-doom/internal/logging"
	"github.com/vovakirdan/tui-doom/internal/maps"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
	"github.com/vovakirdan/tui-doom/internal/telemetry"
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover" // Player died
	StateWin      = "win"      // Campaign cleared
)

// GameMode selects campaign or survival.
type GameMode int

const (
	ModeCampaign GameMode = iota // Built-in levels in order
	ModeSurvival                 // Generated arena with endless waves
)

const (
	pointsPerKill = 100

	// Generated arena size in tiles.
	arenaCols = 24
	arenaRows = 16

	// arenaScene identifies survival saves.
	arenaScene = "arena"
)

// ErrModeMismatch is returned when a save belongs to the other game mode.
var ErrModeMismatch = errors.New("doom: save belongs to another mode")

// Defaults for new games, set via CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	mapName          string
)

var logger = logging.Discard()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetMap selects the campaign start level: a built-in level name or a
// path to a YAML or JSON level file.
func SetMap(name string) {
	mapName = name
}

// SetLogger routes scene and game events to l. Nil silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// Options select the config file, difficulty and start level of a game.
type Options struct {
	ConfigPath string
	Difficulty config.DifficultyPreset
	Map        string
}

// DefaultOptions returns the options set through the package setters.
func DefaultOptions() Options {
	return Options{ConfigPath: configPath, Difficulty: difficultyPreset, Map: mapName}
}

// Game implements registry.Game.
type Game struct {
	mode GameMode
	opts Options

	scene *Scene
	waves *Waves

	state      string
	score      int
	kills      int // kills from finished levels
	levels     []string
	levelIndex int

	runtime    core.RuntimeConfig
	cfg        config.DoomConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	camera Camera
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign, opts: DefaultOptions()}
}

// NewSurvival creates a survival game.
func NewSurvival() *Game {
	return &Game{mode: ModeSurvival, opts: DefaultOptions()}
}

// SetOptions replaces the game's options. They apply from the next Reset.
func (g *Game) SetOptions(o Options) {
	g.opts = o
}

// Options returns the game's options.
func (g *Game) Options() Options { return g.opts }

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeSurvival {
		return "doom_survival"
	}
	return "doom"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSurvival {
		return "Doom (Survival)"
	}
	return "Doom"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadDoom(g.opts.ConfigPath)
	if err != nil {
		logger.Warn("config unusable, using defaults", "path", g.opts.ConfigPath, "err", err)
		cfg = config.DefaultDoomConfig()
	}
	if g.opts.Difficulty != "" {
		config.ApplyDoomPreset(&cfg, g.opts.Difficulty)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.state = StatePlaying
	g.score = 0
	g.kills = 0
	g.waves = nil

	switch g.mode {
	case ModeSurvival:
		g.levels = []string{arenaScene}
		g.levelIndex = 0
		g.scene = g.loadArena()
		g.waves = NewWaves(cfg.Waves, g.difficulty, g.rng)
	default:
		g.levels, g.levelIndex = campaignLevels(g.opts.Map)
		g.scene = g.loadLevel(g.levels[g.levelIndex])
	}
}

// campaignLevels returns the level sequence and the start index. A built-in
// start level plays on through the later built-in levels; a level file is
// played on its own.
func campaignLevels(start string) ([]string, int) {
	if start == "" {
		start = maps.DefaultLevel
	}
	names := maps.List()
	for i, name := range names {
		if name == start {
			return names, i
		}
	}
	return []string{start}, 0
}

func (g *Game) loadLevel(name string) *Scene {
	m, err := maps.Resolve(name)
	if err != nil {
		logger.Warn("cannot load map, using default", "map", name, "err", err)
		m = maps.Default()
	}
	return NewScene(m, g.cfg, g.rng)
}

func (g *Game) loadArena() *Scene {
	m := maps.GenerateArena(arenaCols, arenaRows, g.cfg.World.TileSize, g.runtime.Seed)
	return NewScene(m, g.cfg, g.rng)
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.DT()
	g.scene.Tick(in, dt)
	if g.waves != nil {
		g.waves.Update(g.scene, g.score, dt)
	}
	g.score = (g.kills + g.scene.Kills()) * pointsPerKill

	switch {
	case g.scene.Player().Dead():
		g.state = StateGameOver
		logger.Info("player died", "scene", g.sceneID(), "score", g.score, "ticks", g.scene.Ticks())
	case g.mode == ModeCampaign && g.scene.Cleared():
		g.advanceLevel()
	}

	return core.StepResult{State: g.State()}
}

// advanceLevel moves to the next campaign level, carrying the player's
// health, armor and weapons. After the last level the game is won.
func (g *Game) advanceLevel() {
	g.kills += g.scene.Kills()
	if g.levelIndex+1 >= len(g.levels) {
		g.state = StateWin
		logger.Info("campaign cleared", "score", g.score)
		return
	}

	carry := g.SaveState(0)
	g.levelIndex++
	g.scene = g.loadLevel(g.levels[g.levelIndex])
	g.restorePlayer(carry, false)
	logger.Info("level cleared", "next", g.sceneID(), "score", g.score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Mode returns the game mode.
func (g *Game) Mode() GameMode { return g.mode }

// Status returns the state name (playing, paused, gameover, win).
func (g *Game) Status() string { return g.state }

// Scene returns the active scene.
func (g *Game) Scene() *Scene { return g.scene }

// Waves returns the wave director, nil outside survival.
func (g *Game) Waves() *Waves { return g.waves }

// TickStats reports the counters sampled by telemetry after each step.
func (g *Game) TickStats() telemetry.TickStats {
	return telemetry.TickStats{
		LiveEnemies: g.scene.Alive(),
		Kills:       g.kills + g.scene.Kills(),
		PlayerDead:  g.scene.Player().Dead(),
	}
}

// Camera returns the camera used by the last Render.
func (g *Game) Camera() Camera { return g.camera }

// ScreenToWorld implements registry.Pointer.
func (g *Game) ScreenToWorld(col, row int) (float64, float64) {
	return g.camera.ScreenToWorld(col, row)
}

func (g *Game) sceneID() string {
	if len(g.levels) == 0 {
		return ""
	}
	return g.levels[g.levelIndex]
}

// SaveState captures what a save slot persists: the scene, the score and the
// player's position, health, armor and weapons with ammo.
func (g *Game) SaveState(slot int) storage.SaveRecord {
	p := g.scene.Player()
	rec := storage.SaveRecord{
		Slot:  slot,
		Scene: g.sceneID(),
		Score: g.score,
		Player: storage.PlayerRecord{
			X:      p.X,
			Y:      p.Y,
			Health: p.Health,
			Armor:  p.Armor,
		},
	}
	if w := p.CurrentWeapon(); w != nil {
		rec.Player.CurrentWeapon = w.Type
	}
	for _, w := range p.Weapons.Items() {
		rec.Weapons = append(rec.Weapons, storage.WeaponRecord{Type: w.Type, Ammo: w.Ammo})
	}
	return rec
}

// LoadState rebuilds the saved scene and restores the player into it.
// Enemies and items respawn from the level data.
func (g *Game) LoadState(rec storage.SaveRecord) error {
	if (rec.Scene == arenaScene) != (g.mode == ModeSurvival) {
		return fmt.Errorf("%w: %s", ErrModeMismatch, rec.Scene)
	}

	if g.mode == ModeSurvival {
		g.scene = g.loadArena()
		g.waves = NewWaves(g.cfg.Waves, g.difficulty, g.rng)
	} else {
		g.levels, g.levelIndex = campaignLevels(rec.Scene)
		g.scene = g.loadLevel(g.levels[g.levelIndex])
	}

	g.restorePlayer(rec, true)
	g.score = rec.Score
	g.kills = rec.Score / pointsPerKill
	g.state = StatePlaying
	logger.Info("game loaded", "scene", rec.Scene, "slot", rec.Slot)
	return nil
}

// GameIDFor returns the registry id of the mode a save belongs to.
func GameIDFor(rec storage.SaveRecord) string {
	if rec.Scene == arenaScene {
		return "doom_survival"
	}
	return "doom"
}

// restorePlayer applies a saved player onto the scene's fresh player.
// Values are clamped to the configured limits.
func (g *Game) restorePlayer(rec storage.SaveRecord, position bool) {
	p := g.scene.Player()
	if position {
		p.SetPosition(rec.Player.X, rec.Player.Y)
	}
	p.Health = core.ClampF(rec.Player.Health, 0, p.MaxHealth)
	p.Armor = core.ClampF(rec.Player.Armor, 0, p.MaxArmor)

	if len(rec.Weapons) > 0 {
		p.Weapons = inventory.New[*entity.Weapon](g.cfg.Player.InventorySlots)
		for _, wr := range rec.Weapons {
			w := entity.NewWeapon(wr.Type, g.cfg.Weapons, p.ID(), g.rng)
			w.Ammo = core.Clamp(wr.Ammo, 0, w.MaxAmmo)
			p.Weapons.Add(w)
		}
		if i, ok := p.Weapons.Find(rec.Player.CurrentWeapon); ok {
			p.Weapons.Select(i)
		}
	}

	if p.Health <= 0 {
		p.Die()
	}
}

func init() {
	registry.Register("doom", func() registry.Game {
		return New()
	})
	registry.Register("doom_survival", func() registry.Game {
		return NewSurvival()
	})
}
