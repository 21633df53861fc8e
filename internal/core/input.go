package core

// Action is an edge-triggered intent delivered once per key press.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow - stage cursor left
	ActionRight          // Right arrow - stage cursor right
	ActionFire           // Space - resume from pause
	ActionConfirm        // Enter - start game / start selected stage
	ActionBack           // Esc - pause, confirm exit, leave stage select
	ActionItem1          // 1..4 - use an item
	ActionItem2
	ActionItem3
	ActionItem4
	ActionOther // Any key without a binding
	ActionQuit  // Ctrl+C, Q
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
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionItem1, ActionItem2, ActionItem3, ActionItem4:
		return "Item"
	case ActionOther:
		return "Other"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ItemSlot returns the zero-based item slot for ActionItem1..4, or -1.
func (a Action) ItemSlot() int {
	if a >= ActionItem1 && a <= ActionItem4 {
		return int(a - ActionItem1)
	}
	return -1
}

// PlayerID identifies a local player.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
)

// MaxPlayers is the number of local players a frame can describe.
const MaxPlayers = 2

// Controls holds the level-triggered state of one player's keys.
type Controls struct {
	Left  bool
	Right bool
	Fire  bool
}

// InputFrame is the frozen input for a single tick.
// Actions carries edge events, Held carries what is pressed right now.
type InputFrame struct {
	Actions map[Action]bool
	Held    [MaxPlayers]Controls
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

// Player returns the held controls for a player. Unknown ids read as idle.
func (f InputFrame) Player(id PlayerID) Controls {
	if id < 0 || int(id) >= MaxPlayers {
		return Controls{}
	}
	return f.Held[id]
}

// Clear resets edge actions and held controls for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Held = [MaxPlayers]Controls{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Held = f.Held
	return clone
}
