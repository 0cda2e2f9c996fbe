package editor

// Mode is the persistent, user-toggled interaction tool. The two modes are
// mutually exclusive; switching cancels any in-progress gesture.
type Mode int

const (
	ModeMove    Mode = iota // drags reposition nodes or pan the canvas
	ModeConnect             // drags from an anchor draw a new edge
)

// String returns the mode name for display.
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "MOVE"
	case ModeConnect:
		return "CONNECT"
	default:
		return "UNKNOWN"
	}
}

// State is the transient gesture state driven by pointer events.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateConnecting
	StatePanning
)

// String returns the state name for display.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDragging:
		return "DRAGGING"
	case StateConnecting:
		return "CONNECTING"
	case StatePanning:
		return "PANNING"
	default:
		return "UNKNOWN"
	}
}
