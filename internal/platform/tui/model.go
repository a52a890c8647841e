package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/logging"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
	"github.com/vovakirdan/tui-doom/internal/telemetry"
)

// QuickSlot is the save slot used by quick save and quick load.
const QuickSlot = 1

// statusTTL is how long a status message stays on screen.
const statusTTL = 2 * time.Second

// statsSource is implemented by games that report telemetry counters.
type statsSource interface {
	TickStats() telemetry.TickStats
}

// GameModel is the Bubble Tea model that runs one game: it polls input,
// steps the simulation at a fixed rate and draws the screen buffer.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	palette *Palette
	store   *storage.Store
	metrics *telemetry.Session
	logger  *log.Logger
	config  core.RuntimeConfig
	load    *storage.SaveRecord

	keyMapper  *KeyMapper
	hold       *HoldTracker
	inputFrame core.InputFrame
	pointerCol int
	pointerRow int
	hasPointer bool

	gameState  core.GameState
	status     string
	statusTill time.Time

	exitOnBack bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPalette sets the palette used to draw the screen.
func WithPalette(p *Palette) GameOption {
	return func(m *GameModel) { m.palette = p }
}

// WithTelemetry reports tick timings and counters to s. Games started from
// one menu share s, so a new run resets its kill baseline.
func WithTelemetry(s *telemetry.Session) GameOption {
	return func(m *GameModel) { m.metrics = s }
}

// WithLoad restores rec into the game when it starts.
func WithLoad(rec *storage.SaveRecord) GameOption {
	return func(m *GameModel) { m.load = rec }
}

// WithLogger sets the model's logger.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) { m.logger = l }
}

// NewGameModel creates a model for game. store may be nil, which disables
// scores and save slots.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    defaultPalette,
		store:      store,
		logger:     logging.Discard(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hold:       NewHoldTracker(cfg.TickRate / 5),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if saver, ok := m.game.(registry.Saver); ok && m.load != nil {
		if err := saver.LoadState(*m.load); err != nil {
			m.logger.Warn("cannot restore save, starting fresh", "slot", m.load.Slot, "err", err)
		}
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "f5":
		m.quickSave()
		return m, nil
	case "f9":
		m.quickLoad()
		return m, nil
	}

	actions, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.gameState.GameOver
	for _, a := range actions {
		switch {
		case a == core.ActionBack && (over || m.gameState.Paused):
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
			return m, nil
		case (a == core.ActionReload || a == core.ActionConfirm) && over:
			m.inputFrame.Set(core.ActionRestart)
		case Holdable(a):
			m.hold.Press(a)
		default:
			m.inputFrame.Set(a)
		}
	}

	return m, nil
}

// handleMouse tracks the aim cell, holds fire on the left button and
// switches weapons on the wheel.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointerCol, m.pointerRow = msg.X, msg.Y
	m.hasPointer = true

	switch msg.Button {
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			m.hold.Hold(core.ActionFire)
		case tea.MouseActionRelease:
			m.hold.Release(core.ActionFire)
		}
	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionRelease {
			m.hold.Release(core.ActionFire)
		}
	case tea.MouseButtonWheelUp:
		m.inputFrame.Set(core.ActionPrevWeapon)
	case tea.MouseButtonWheelDown:
		m.inputFrame.Set(core.ActionNextWeapon)
	}
	return m, nil
}

// handleTick builds this tick's input and steps the game.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.inputFrame)
	if p, ok := m.game.(registry.Pointer); ok && m.hasPointer {
		m.inputFrame.SetPointer(p.ScreenToWorld(m.pointerCol, m.pointerRow))
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.hold.Reset()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	start := time.Now()
	result := m.game.Step(m.inputFrame)
	if src, ok := m.game.(statsSource); ok {
		m.metrics.ObserveTick(time.Since(start), src.TickStats())
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
	}
}

func (m *GameModel) quickSave() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		m.setStatus("Saving is not available")
		return
	}
	if m.gameState.GameOver {
		m.setStatus("Cannot save after the game is over")
		return
	}
	rec := saver.SaveState(QuickSlot)
	if err := m.store.SaveGame(&rec); err != nil {
		m.logger.Error("quick save failed", "err", err)
		m.setStatus("Save failed")
		return
	}
	m.logger.Info("game saved", "slot", QuickSlot, "save", rec.SaveID, "scene", rec.Scene)
	m.setStatus(fmt.Sprintf("Saved to slot %d", QuickSlot))
}

func (m *GameModel) quickLoad() {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.store == nil {
		m.setStatus("Loading is not available")
		return
	}
	rec, err := m.store.LoadGame(QuickSlot)
	if errors.Is(err, storage.ErrNoSave) {
		m.setStatus(fmt.Sprintf("Slot %d is empty", QuickSlot))
		return
	}
	if err == nil {
		err = saver.LoadState(*rec)
	}
	if err != nil {
		m.logger.Warn("quick load failed", "err", err)
		m.setStatus("Load failed")
		return
	}
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.hold.Reset()
	m.setStatus(fmt.Sprintf("Loaded slot %d", QuickSlot))
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusTill = time.Now().Add(statusTTL)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tui-doom", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.setStatus("Screenshot saved")
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && time.Now().Before(m.statusTill) {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits or goes back
// to the menu. It reports whether the player asked for the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, opts...)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
