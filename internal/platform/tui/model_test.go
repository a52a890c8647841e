package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-doom/internal/core"
	"github.com/vovakirdan/tui-doom/internal/games/doom"
	"github.com/vovakirdan/tui-doom/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func startGame(t *testing.T, store *storage.Store) (GameModel, *doom.Game) {
	t.Helper()
	g := doom.New()
	g.SetOptions(doom.Options{})
	m := NewGameModel(g, store, testConfig())
	m.Init()
	return m, g
}

func send(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func tick(m GameModel, n int) GameModel {
	for i := 0; i < n; i++ {
		m = send(m, TickMsg(time.Now()))
	}
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "doom.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKeyPressMovesPlayer(t *testing.T) {
	m, g := startGame(t, nil)
	x0 := g.Scene().Player().X

	m = send(m, runeKey("d"))
	m = tick(m, 5)

	if x := g.Scene().Player().X; x <= x0 {
		t.Errorf("player X = %v, expected it to move right of %v", x, x0)
	}
}

func TestPauseKey(t *testing.T) {
	m, g := startGame(t, nil)

	m = send(m, runeKey("p"))
	m = tick(m, 1)
	if !g.State().Paused {
		t.Fatal("game not paused after p")
	}

	ticks := g.Scene().Ticks()
	m = tick(m, 3)
	if g.Scene().Ticks() != ticks {
		t.Error("scene advanced while paused")
	}

	m = send(m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("b while paused should return to the menu")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := startGame(t, nil)

	next, cmd := m.Update(runeKey("q"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestQuickSaveWithoutStore(t *testing.T) {
	m, _ := startGame(t, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyF5})
	if !strings.Contains(m.View(), "not available") {
		t.Error("expected a message that saving is unavailable")
	}
}

func TestQuickSaveAndLoad(t *testing.T) {
	store := openStore(t)
	m, g := startGame(t, store)
	p := g.Scene().Player()
	p.Health = 64

	m = send(m, tea.KeyMsg{Type: tea.KeyF5})
	rec, err := store.LoadGame(QuickSlot)
	if err != nil {
		t.Fatalf("LoadGame() after quick save failed: %v", err)
	}
	if rec.Player.Health != 64 || rec.Scene != "e1m1" {
		t.Errorf("saved player health %v scene %q, expected 64, e1m1", rec.Player.Health, rec.Scene)
	}

	g.Scene().Player().Health = 10
	m = send(m, tea.KeyMsg{Type: tea.KeyF9})
	if got := g.Scene().Player().Health; got != 64 {
		t.Errorf("health after quick load = %v, expected 64", got)
	}
	if !strings.Contains(m.View(), "Loaded slot 1") {
		t.Error("expected a load confirmation")
	}
}

func TestQuickLoadEmptySlot(t *testing.T) {
	m, _ := startGame(t, openStore(t))

	m = send(m, tea.KeyMsg{Type: tea.KeyF9})
	if !strings.Contains(m.View(), "empty") {
		t.Error("expected an empty slot message")
	}
}

func TestScoreSavedOnGameOver(t *testing.T) {
	store := openStore(t)
	m, g := startGame(t, store)

	e := g.Scene().Enemies()[0]
	e.TakeDamage(e.Health)
	m = tick(m, 1)
	g.Scene().Player().TakeDamage(1e6)
	m = tick(m, 2)

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	best, err := store.HighScore("doom")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != 100 {
		t.Errorf("HighScore() = %d, expected 100", best)
	}

	m = send(m, runeKey("r"))
	m = tick(m, 1)
	if g.State().GameOver {
		t.Error("r after game over should restart")
	}
}

func TestWithLoadRestoresOnInit(t *testing.T) {
	g := doom.New()
	g.SetOptions(doom.Options{})
	g.Reset(testConfig())
	rec := g.SaveState(2)
	rec.Player.Armor = 33

	fresh := doom.New()
	fresh.SetOptions(doom.Options{})
	m := NewGameModel(fresh, nil, testConfig(), WithLoad(&rec))
	m.Init()

	if got := fresh.Scene().Player().Armor; got != 33 {
		t.Errorf("Armor = %v, expected 33 from the save", got)
	}
}
