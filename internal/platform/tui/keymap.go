package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotpop/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// It remembers where the left button went down so a release can be
// reported as a full click.
type KeyMapper struct {
	pressed        bool
	pressX, pressY int
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// boardKeys binds key names to board actions. Arrows, WASD and vim keys
// all move the cursor.
var boardKeys = map[string]core.Action{
	"up": core.ActionUp, "w": core.ActionUp, "k": core.ActionUp,
	"down": core.ActionDown, "s": core.ActionDown, "j": core.ActionDown,
	"left": core.ActionLeft, "a": core.ActionLeft, "h": core.ActionLeft,
	"right": core.ActionRight, "d": core.ActionRight, "l": core.ActionRight,
	" ": core.ActionSelect, "enter": core.ActionSelect,
	"esc": core.ActionBack, "b": core.ActionBack,
	"p": core.ActionPause,
	"r": core.ActionRestart,
	"q": core.ActionQuit, "ctrl+c": core.ActionQuit,
}

// MapKey translates a key message to a board action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := boardKeys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records a completed left click in the frame.
// A press only arms the click; the matching release fills frame.Click with
// both positions so the game can check they hit the same token.
// Returns true if the frame received a click.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			km.pressed = false
			return false
		}
		km.pressed = true
		km.pressX, km.pressY = msg.X, msg.Y
		return false

	case tea.MouseActionRelease:
		if !km.pressed {
			return false
		}
		km.pressed = false
		frame.SetRelease(km.pressX, km.pressY, msg.X, msg.Y)
		return true
	}

	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionHistory
	MenuActionQuit
)

var menuKeys = map[string]MenuAction{
	"up": MenuActionUp, "w": MenuActionUp, "k": MenuActionUp,
	"down": MenuActionDown, "s": MenuActionDown, "j": MenuActionDown,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"esc": MenuActionBack, "b": MenuActionBack,
	"tab": MenuActionHistory,
	"q": MenuActionQuit, "ctrl+c": MenuActionQuit,
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
