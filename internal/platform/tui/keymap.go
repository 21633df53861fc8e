package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Control names one level-triggered key of one player.
type Control int

const (
	ControlNone Control = iota
	ControlLeft
	ControlRight
	ControlFire
)

// Binding is what a single key press means: an edge action for the flow
// logic and, optionally, a held control for a player.
type Binding struct {
	Action  core.Action
	Player  core.PlayerID
	Control Control
}

// DefaultHoldWindow is used when the game does not report its own.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game input.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message. Player 1 moves with the arrows and fires
// with space, player 2 uses a, d and w.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Binding {
	switch msg.String() {
	case "ctrl+c", "q":
		return Binding{Action: core.ActionQuit}
	case "left":
		return Binding{Action: core.ActionLeft, Player: core.Player1, Control: ControlLeft}
	case "right":
		return Binding{Action: core.ActionRight, Player: core.Player1, Control: ControlRight}
	case " ":
		return Binding{Action: core.ActionFire, Player: core.Player1, Control: ControlFire}
	case "a":
		return Binding{Action: core.ActionLeft, Player: core.Player2, Control: ControlLeft}
	case "d":
		return Binding{Action: core.ActionRight, Player: core.Player2, Control: ControlRight}
	case "w":
		return Binding{Action: core.ActionFire, Player: core.Player2, Control: ControlFire}
	case "enter":
		return Binding{Action: core.ActionConfirm}
	case "esc":
		return Binding{Action: core.ActionBack}
	case "1":
		return Binding{Action: core.ActionItem1}
	case "2":
		return Binding{Action: core.ActionItem2}
	case "3":
		return Binding{Action: core.ActionItem3}
	case "4":
		return Binding{Action: core.ActionItem4}
	}
	return Binding{Action: core.ActionOther}
}

// KeyState remembers when each control was last seen. Terminals only
// report presses and auto-repeats, so a control counts as held while its
// last sighting is younger than the hold window.
type KeyState struct {
	window time.Duration
	seen   [core.MaxPlayers][ControlFire + 1]time.Time
}

// NewKeyState creates a key state with the given hold window.
func NewKeyState(window time.Duration) *KeyState {
	ks := &KeyState{}
	ks.SetWindow(window)
	return ks
}

// SetWindow changes the hold window. Non-positive values fall back to
// DefaultHoldWindow.
func (ks *KeyState) SetWindow(window time.Duration) {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	ks.window = window
}

// Window returns the current hold window.
func (ks *KeyState) Window() time.Duration {
	return ks.window
}

// Press records a sighting of the binding's control.
func (ks *KeyState) Press(b Binding, at time.Time) {
	if b.Control == ControlNone || b.Player < 0 || int(b.Player) >= core.MaxPlayers {
		return
	}
	ks.seen[b.Player][b.Control] = at
}

// Release forgets every control, e.g. after a pause or a lost focus.
func (ks *KeyState) Release() {
	ks.seen = [core.MaxPlayers][ControlFire + 1]time.Time{}
}

// Held returns the controls considered pressed at the given instant.
func (ks *KeyState) Held(now time.Time) [core.MaxPlayers]core.Controls {
	var held [core.MaxPlayers]core.Controls
	for p := range held {
		held[p] = core.Controls{
			Left:  ks.fresh(p, ControlLeft, now),
			Right: ks.fresh(p, ControlRight, now),
			Fire:  ks.fresh(p, ControlFire, now),
		}
	}
	return held
}

func (ks *KeyState) fresh(p int, c Control, now time.Time) bool {
	at := ks.seen[p][c]
	if at.IsZero() || at.After(now) {
		return !at.IsZero()
	}
	return now.Sub(at) < ks.window
}

// MapKeyToFrame applies a key press to the frame and the key state.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, keys *KeyState, at time.Time) bool {
	b := km.MapKey(msg)
	if b.Action == core.ActionQuit {
		return true
	}
	frame.Set(b.Action)
	if keys != nil {
		keys.Press(b, at)
	}
	return false
}
