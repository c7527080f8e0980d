package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionSelect         // Space, Enter - pop the region under the cursor
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - deal a fresh board
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer is a completed click in screen coordinates (row 0 at the top):
// where the button went down and where it came back up.
type Pointer struct {
	PressX, PressY int
	X, Y           int
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is the last pointer press this frame, nil if there was none.
	Click *Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetClick records a click pressed and released at (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Pointer{PressX: x, PressY: y, X: x, Y: y}
}

// SetRelease records a click pressed at (px, py) and released at (x, y).
func (f *InputFrame) SetRelease(px, py, x, y int) {
	f.Click = &Pointer{PressX: px, PressY: py, X: x, Y: y}
}

// Empty reports whether nothing was triggered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Click == nil
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Click != nil {
		p := *f.Click
		clone.Click = &p
	}
	return clone
}
