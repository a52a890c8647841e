package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionMoveUp            // W, Up arrow
	ActionMoveDown          // S, Down arrow
	ActionMoveLeft          // A, Left arrow
	ActionMoveRight         // D, Right arrow
	ActionFire              // Space, left mouse button
	ActionReload            // R
	ActionInteract          // no key; nothing in the game consumes it
	ActionSprint            // Shift
	ActionNextWeapon        // ], mouse wheel down
	ActionPrevWeapon        // [, mouse wheel up
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B - go back to menu
	ActionRestart           // Enter after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P, Escape - pause/unpause game
	ActionWeapon1           // 1..4 - select inventory slot directly
	ActionWeapon2
	ActionWeapon3
	ActionWeapon4
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionMoveUp:     "MoveUp",
	ActionMoveDown:   "MoveDown",
	ActionMoveLeft:   "MoveLeft",
	ActionMoveRight:  "MoveRight",
	ActionFire:       "Fire",
	ActionReload:     "Reload",
	ActionInteract:   "Interact",
	ActionSprint:     "Sprint",
	ActionNextWeapon: "NextWeapon",
	ActionPrevWeapon: "PrevWeapon",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
	ActionWeapon1:    "Weapon1",
	ActionWeapon2:    "Weapon2",
	ActionWeapon3:    "Weapon3",
	ActionWeapon4:    "Weapon4",
}

// WeaponSlotActions lists the direct slot-select actions in slot order.
var WeaponSlotActions = []Action{ActionWeapon1, ActionWeapon2, ActionWeapon3, ActionWeapon4}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Input is the read-only view of polled input that entities consume.
type Input interface {
	// Held reports whether the action is active this tick.
	Held(a Action) bool
	// Pointer returns the aim point in world coordinates, if any.
	Pointer() (x, y float64, ok bool)
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that are held during this frame plus the pointer position.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	PointerX, PointerY float64
	HasPointer         bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Held implements Input.
func (f InputFrame) Held(a Action) bool {
	return f.Has(a)
}

// SetPointer sets the aim point in world coordinates.
func (f *InputFrame) SetPointer(x, y float64) {
	f.PointerX, f.PointerY = x, y
	f.HasPointer = true
}

// Pointer implements Input.
func (f InputFrame) Pointer() (float64, float64, bool) {
	return f.PointerX, f.PointerY, f.HasPointer
}

// Clear resets all actions for the next frame. The pointer is kept
// because it is a position, not an event.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.PointerX, clone.PointerY, clone.HasPointer = f.PointerX, f.PointerY, f.HasPointer
	return clone
}
