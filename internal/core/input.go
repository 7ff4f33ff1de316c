package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move north
	ActionDown           // move south
	ActionLeft           // move west
	ActionRight          // move east
	ActionFire           // shoot
	ActionConfirm        // Enter
	ActionBack           // Escape
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
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
	case ActionFire:
		return "Fire"
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

// PlayerID identifies a human player slot.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// InputFrame holds the actions one player triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
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
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Merge adds every action of other to the frame.
func (f *InputFrame) Merge(other InputFrame) {
	for a, on := range other.Actions {
		if on {
			f.Set(a)
		}
	}
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	c.Merge(f)
	return c
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Direction returns the movement direction requested by the frame, if any.
// When several are held the first of up, down, left, right wins.
func (f InputFrame) Direction() (Direction, bool) {
	switch {
	case f.Has(ActionUp):
		return DirUp, true
	case f.Has(ActionDown):
		return DirDown, true
	case f.Has(ActionLeft):
		return DirLeft, true
	case f.Has(ActionRight):
		return DirRight, true
	}
	return DirUp, false
}

// MultiInputFrame contains input from all players for a single tick.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{ByPlayer: make(map[PlayerID]InputFrame)}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Any reports whether any player triggered the action.
func (m MultiInputFrame) Any(a Action) bool {
	for _, f := range m.ByPlayer {
		if f.Has(a) {
			return true
		}
	}
	return false
}

// InputLatch turns key presses into per-tick input. Terminals report key
// presses and repeats but never releases, so a movement key keeps the tank
// driving for a few ticks after each press while other actions fire once.
type InputLatch struct {
	hold    int
	dir     Action
	left    int
	pending InputFrame
}

// NewInputLatch creates a latch that holds movement for hold ticks.
func NewInputLatch(hold int) *InputLatch {
	return &InputLatch{hold: max(hold, 1), pending: NewInputFrame()}
}

// Press records the actions of one key event.
// A new direction replaces the held one and restarts the hold.
func (l *InputLatch) Press(f InputFrame) {
	if d, ok := f.Direction(); ok {
		l.dir = directionAction(d)
		l.left = l.hold
	}
	for a, on := range f.Actions {
		if on && !isMove(a) {
			l.pending.Set(a)
		}
	}
}

// Next returns the input for the coming tick and consumes one-shot actions.
func (l *InputLatch) Next() InputFrame {
	out := l.pending.Clone()
	l.pending.Clear()
	if l.left > 0 {
		out.Set(l.dir)
		l.left--
	}
	return out
}

// Release drops the held direction and anything pending.
func (l *InputLatch) Release() {
	l.left = 0
	l.pending.Clear()
}

func isMove(a Action) bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

func directionAction(d Direction) Action {
	switch d {
	case DirDown:
		return ActionDown
	case DirLeft:
		return ActionLeft
	case DirRight:
		return ActionRight
	default:
		return ActionUp
	}
}
