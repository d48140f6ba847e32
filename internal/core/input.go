package core

// Action represents a semantic game action, abstracted from physical key presses.
// Both the terminal and the window frontends translate their keys into actions.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // Up arrow, W, K - step north
	ActionDown               // Down arrow, S, J - step south
	ActionLeft               // Left arrow, A, H - step west
	ActionRight              // Right arrow, D, L - step east
	ActionRestart            // R - reload the current level
	ActionNextLevel          // N, E - skip to the next level
	ActionPrevLevel          // P - go back one level
	ActionUndo               // U, Z - revert the last step
	ActionToggleMusic        // M - pause/resume background music
	ActionQuit               // Q, Esc, Ctrl+C - leave the game
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
	case ActionRestart:
		return "Restart"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionUndo:
		return "Undo"
	case ActionToggleMusic:
		return "ToggleMusic"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Dir returns the movement direction for a directional action.
// Non-directional actions return DirNone.
func (a Action) Dir() Dir {
	switch a {
	case ActionUp:
		return North
	case ActionDown:
		return South
	case ActionLeft:
		return West
	case ActionRight:
		return East
	default:
		return DirNone
	}
}

// InputFrame holds the actions collected between two simulation steps.
// Actions keep their arrival order: a turn-based game must apply two quick
// key presses as two separate moves, in the order they were typed.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to the frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the queued actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Empty reports whether no action was queued.
func (f InputFrame) Empty() bool {
	return len(f.actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{actions: make([]Action, len(f.actions))}
	copy(clone.actions, f.actions)
	return clone
}
