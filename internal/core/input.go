package core

// Action is a logical command, independent of the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // Jump; starts the run from the ready screen
	ActionConfirm        // Open score submission
	ActionBack           // Leave to the menu
	ActionRestart        // New run after game over
	ActionQuit           // Exit the program
	ActionPause          // Toggle pause
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionJump:    "jump",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

// String returns the lower-case action name.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// InputFrame collects the actions triggered between two ticks.
// The zero value is an empty frame; ActionNone is never recorded.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records a.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.bits&(1<<a) != 0
}

// Clear forgets every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}
