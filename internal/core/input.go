package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A - shift piece left
	ActionRight           // Right arrow, D - shift piece right
	ActionSoftDrop        // Down arrow, S - move piece down one row
	ActionRotate          // Up arrow, W - rotate clockwise
	ActionHardDrop        // Space - drop and lock
	ActionPause           // P, Escape - pause/unpause game
	ActionRestart         // R key - restart game
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected for a single host frame.
// Actions keep the order in which they were pressed so that, for example,
// "left, rotate" and "rotate, left" can produce different placements.
type InputFrame struct {
	Actions []Action

	// Elapsed is the real time since the previous frame.
	// Zero means the game should assume one nominal tick.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets the frame for reuse, keeping the allocated buffer.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Elapsed: f.Elapsed}
	if len(f.Actions) > 0 {
		clone.Actions = append([]Action(nil), f.Actions...)
	}
	return clone
}
