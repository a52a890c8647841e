package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-doom/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to the actions it triggers.
// Shifted movement keys also sprint. isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	switch key {
	case "w", "up":
		return []core.Action{core.ActionMoveUp}, false
	case "s", "down":
		return []core.Action{core.ActionMoveDown}, false
	case "a", "left":
		return []core.Action{core.ActionMoveLeft}, false
	case "d", "right":
		return []core.Action{core.ActionMoveRight}, false
	case "W", "shift+up":
		return []core.Action{core.ActionMoveUp, core.ActionSprint}, false
	case "S", "shift+down":
		return []core.Action{core.ActionMoveDown, core.ActionSprint}, false
	case "A", "shift+left":
		return []core.Action{core.ActionMoveLeft, core.ActionSprint}, false
	case "D", "shift+right":
		return []core.Action{core.ActionMoveRight, core.ActionSprint}, false
	case " ", "f":
		return []core.Action{core.ActionFire}, false
	case "r":
		return []core.Action{core.ActionReload}, false
	case "]", "tab":
		return []core.Action{core.ActionNextWeapon}, false
	case "[", "shift+tab":
		return []core.Action{core.ActionPrevWeapon}, false
	case "1", "2", "3", "4":
		return []core.Action{core.WeaponSlotActions[key[0]-'1']}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b":
		return []core.Action{core.ActionBack}, false
	case "p", "esc":
		return []core.Action{core.ActionPause}, false
	}

	return nil, false
}

// Holdable reports whether an action stays active while its key repeats.
// Everything else fires once per press.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionMoveUp, core.ActionMoveDown, core.ActionMoveLeft, core.ActionMoveRight,
		core.ActionFire, core.ActionSprint:
		return true
	}
	return false
}

var opposite = map[core.Action]core.Action{
	core.ActionMoveUp:    core.ActionMoveDown,
	core.ActionMoveDown:  core.ActionMoveUp,
	core.ActionMoveLeft:  core.ActionMoveRight,
	core.ActionMoveRight: core.ActionMoveLeft,
}

// HoldTracker turns key presses into held actions. Terminals report key
// repeats but not releases, so a press keeps its action held for a number of
// ticks and each repeat renews it. Mouse buttons report releases and are held
// until released.
type HoldTracker struct {
	ticks int
	left  map[core.Action]int // ticks remaining; -1 held until Release
}

// NewHoldTracker creates a tracker that holds a pressed key for ticks ticks.
func NewHoldTracker(ticks int) *HoldTracker {
	if ticks < 1 {
		ticks = 1
	}
	return &HoldTracker{ticks: ticks, left: make(map[core.Action]int)}
}

// Press renews a holdable action and cancels the opposite direction.
func (h *HoldTracker) Press(a core.Action) {
	if !Holdable(a) {
		return
	}
	if o, ok := opposite[a]; ok {
		delete(h.left, o)
	}
	if h.left[a] >= 0 {
		h.left[a] = h.ticks
	}
}

// Hold keeps an action held until Release.
func (h *HoldTracker) Hold(a core.Action) {
	h.left[a] = -1
}

// Release stops holding an action.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.left, a)
}

// Reset drops every held action.
func (h *HoldTracker) Reset() {
	clear(h.left)
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.left[a]
	return ok
}

// Apply marks the held actions on frame and counts one tick off each.
func (h *HoldTracker) Apply(frame *core.InputFrame) {
	for a, n := range h.left {
		frame.Set(a)
		switch {
		case n < 0:
		case n <= 1:
			delete(h.left, a)
		default:
			h.left[a] = n - 1
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
