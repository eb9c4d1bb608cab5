package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLift           // Space, W, Up - impulse the body upward
	ActionConfirm        // Enter - activate the focused button
	ActionBack           // Esc - leave the current screen
	ActionQuit           // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLift:
		return "Lift"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the input collected between two simulation ticks.
// Actions are edge-triggered: a key press sets the action for exactly the
// next tick, and the platform clears the frame after the tick consumes it.
type InputFrame struct {
	Actions map[Action]bool
	// Clicks holds the IDs of buttons activated this frame.
	Clicks map[string]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Clicks:  make(map[string]bool),
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

// Click marks a button as activated for this frame.
func (f *InputFrame) Click(id string) {
	if f.Clicks == nil {
		f.Clicks = make(map[string]bool)
	}
	f.Clicks[id] = true
}

// Clicked returns true if the button was activated this frame.
func (f InputFrame) Clicked(id string) bool {
	if f.Clicks == nil {
		return false
	}
	return f.Clicks[id]
}

// Empty reports whether nothing was pressed or clicked.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	for _, v := range f.Clicks {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions and clicks for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Clicks {
		delete(f.Clicks, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Clicks {
		clone.Clicks[k] = v
	}
	return clone
}
