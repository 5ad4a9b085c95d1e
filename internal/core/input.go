package core

// Action is a key press translated into something a demo understands.
type Action uint8

const (
	ActionNone    Action = iota
	ActionPause          // freeze the simulation, keep presenting frames
	ActionRestart        // reset the demo
	ActionSlow           // quarter frame rate
	ActionBack           // leave for the menu
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{"None", "Pause", "Restart", "Slow", "Back", "Quit"}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame collects the actions pressed since the last tick.
// The zero value is empty and ready to use.
type InputFrame struct {
	pending uint32
}

// NewInputFrame returns an empty input frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set records a.
func (f *InputFrame) Set(a Action) { f.pending |= 1 << a }

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool { return f.pending&(1<<a) != 0 }

// Any reports whether anything was pressed.
func (f InputFrame) Any() bool { return f.pending != 0 }

// Clear forgets all pending actions.
func (f *InputFrame) Clear() { f.pending = 0 }
