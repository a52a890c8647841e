package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-doom/internal/config"
	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/maps"
	"github.com/vovakirdan/tui-doom/internal/registry"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

// Menu rows, top to bottom.
const (
	rowMode = iota
	rowMap
	rowDifficulty
	rowNewGame
	rowContinue
	menuRows
)

// difficulties in the order the menu cycles through them.
var difficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyNightmare,
	config.DifficultyFixed,
	config.DifficultyEasy,
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuOffStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// MenuSelection is what the player picked in the menu.
type MenuSelection struct {
	GameID   string
	Options  doom.Options
	LoadSlot int // 0 starts a new game
}

// MenuModel is the Bubble Tea model for the start menu: game mode, start
// level and difficulty, then a new game or the quick save.
type MenuModel struct {
	modes      []registry.GameInfo
	levels     []string
	modeIdx    int
	levelIdx   int
	diffIdx    int
	cursor     int
	hasSave    bool
	saveScene  string
	width      int
	height     int
	store      *storage.Store
	config     core.RuntimeConfig
	base       doom.Options
	keyMapper  *KeyMapper
	quitting   bool
	selected   *MenuSelection
	scoreboard bool
}

// NewMenuModel creates a new menu model. base supplies the config path and
// the initial level and difficulty.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, base doom.Options) MenuModel {
	m := MenuModel{
		modes:     registry.List(),
		levels:    maps.List(),
		cursor:    rowNewGame,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		base:      base,
		keyMapper: NewKeyMapper(),
	}
	for i, name := range m.levels {
		if name == base.Map {
			m.levelIdx = i
		}
	}
	for i, d := range difficulties {
		if d == base.Difficulty {
			m.diffIdx = i
		}
	}
	if store != nil {
		if rec, err := store.LoadGame(QuickSlot); err == nil {
			m.hasSave = true
			m.saveScene = rec.Scene
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) survival() bool {
	return len(m.modes) > 0 && m.modes[m.modeIdx].ID == "doom_survival"
}

// rowEnabled reports whether the cursor may rest on row.
func (m MenuModel) rowEnabled(row int) bool {
	switch row {
	case rowMap:
		return !m.survival() && len(m.levels) > 0
	case rowContinue:
		return m.hasSave
	}
	return true
}

func (m *MenuModel) moveCursor(delta int) {
	for next := m.cursor + delta; next >= 0 && next < menuRows; next += delta {
		if m.rowEnabled(next) {
			m.cursor = next
			return
		}
	}
}

func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func (m *MenuModel) change(delta int) {
	switch m.cursor {
	case rowMode:
		m.modeIdx = cycle(m.modeIdx, delta, len(m.modes))
	case rowMap:
		m.levelIdx = cycle(m.levelIdx, delta, len(m.levels))
	case rowDifficulty:
		m.diffIdx = cycle(m.diffIdx, delta, len(difficulties))
	}
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionLeft:
		m.change(-1)

	case MenuActionRight:
		m.change(1)

	case MenuActionSelect:
		if len(m.modes) == 0 {
			return m, nil
		}
		switch m.cursor {
		case rowMode, rowMap, rowDifficulty:
			m.change(1)
			return m, nil
		}
		sel := m.selection()
		m.selected = &sel
		return m, tea.Quit

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) selection() MenuSelection {
	opts := m.base
	opts.Difficulty = difficulties[m.diffIdx]
	opts.Map = ""
	if !m.survival() && len(m.levels) > 0 {
		opts.Map = m.levels[m.levelIdx]
	}
	sel := MenuSelection{GameID: m.modes[m.modeIdx].ID, Options: opts}
	if m.cursor == rowContinue {
		sel.LoadSlot = QuickSlot
	}
	return sel
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("D O O M"), m.width))
	b.WriteString("\n\n")

	mode, level := "-", "-"
	if len(m.modes) > 0 {
		mode = m.modes[m.modeIdx].Title
	}
	if m.survival() {
		level = "generated arena"
	} else if len(m.levels) > 0 {
		level = m.levels[m.levelIdx]
	}

	rows := [menuRows]string{
		rowMode:       fmt.Sprintf("Mode:       < %s >", mode),
		rowMap:        fmt.Sprintf("Map:        < %s >", level),
		rowDifficulty: fmt.Sprintf("Difficulty: < %s >", difficulties[m.diffIdx]),
		rowNewGame:    "New Game",
		rowContinue:   fmt.Sprintf("Continue (slot %d: %s)", QuickSlot, m.saveScene),
	}

	for i, text := range rows {
		line := "  " + text
		style := lipgloss.NewStyle()
		switch {
		case !m.rowEnabled(i):
			style = menuOffStyle
		case i == m.cursor:
			line = "> " + text
			style = menuCurStyle
		}
		if i == rowNewGame {
			b.WriteString("\n")
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Start  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *MenuSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, base doom.Options) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, base), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}

// StartGame creates the selected game with its options applied. When the
// selection continues a save, the game is created in the save's mode and the
// record is returned for loading after the first Reset.
func StartGame(store *storage.Store, sel MenuSelection) (registry.Game, *storage.SaveRecord, error) {
	var rec *storage.SaveRecord
	if sel.LoadSlot != 0 && store != nil {
		var err error
		rec, err = store.LoadGame(sel.LoadSlot)
		if err != nil {
			return nil, nil, fmt.Errorf("load slot %d: %w", sel.LoadSlot, err)
		}
		sel.GameID = doom.GameIDFor(*rec)
	}

	g, err := registry.Create(sel.GameID)
	if err != nil {
		return nil, nil, err
	}
	if dg, ok := g.(*doom.Game); ok {
		dg.SetOptions(sel.Options)
	}
	return g, rec, nil
}
