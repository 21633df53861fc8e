package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Binding
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, Binding{Action: core.ActionLeft, Player: core.Player1, Control: ControlLeft}},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, Binding{Action: core.ActionRight, Player: core.Player1, Control: ControlRight}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Binding{Action: core.ActionFire, Player: core.Player1, Control: ControlFire}},
		{"p2 left", runeKey("a"), Binding{Action: core.ActionLeft, Player: core.Player2, Control: ControlLeft}},
		{"p2 right", runeKey("d"), Binding{Action: core.ActionRight, Player: core.Player2, Control: ControlRight}},
		{"p2 fire", runeKey("w"), Binding{Action: core.ActionFire, Player: core.Player2, Control: ControlFire}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Binding{Action: core.ActionConfirm}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, Binding{Action: core.ActionBack}},
		{"item 1", runeKey("1"), Binding{Action: core.ActionItem1}},
		{"item 4", runeKey("4"), Binding{Action: core.ActionItem4}},
		{"quit", runeKey("q"), Binding{Action: core.ActionQuit}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, Binding{Action: core.ActionQuit}},
		{"unbound", runeKey("x"), Binding{Action: core.ActionOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyStateHoldWindow(t *testing.T) {
	ks := NewKeyState(100 * time.Millisecond)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ks.Press(Binding{Player: core.Player1, Control: ControlLeft}, base)
	ks.Press(Binding{Player: core.Player2, Control: ControlFire}, base)

	held := ks.Held(base.Add(50 * time.Millisecond))
	if !held[core.Player1].Left || held[core.Player1].Right {
		t.Errorf("player 1 should hold only left, got %+v", held[core.Player1])
	}
	if !held[core.Player2].Fire {
		t.Error("player 2 fire should be held inside the window")
	}

	held = ks.Held(base.Add(100 * time.Millisecond))
	if held[core.Player1].Left || held[core.Player2].Fire {
		t.Errorf("controls should expire after the window, got %+v", held)
	}

	// An auto-repeat extends the hold.
	ks.Press(Binding{Player: core.Player1, Control: ControlLeft}, base.Add(90*time.Millisecond))
	if !ks.Held(base.Add(150 * time.Millisecond))[core.Player1].Left {
		t.Error("repeat should keep the key held")
	}
}

func TestKeyStatePressAfterTick(t *testing.T) {
	ks := NewKeyState(DefaultHoldWindow)
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ks.Press(Binding{Player: core.Player1, Control: ControlFire}, tick.Add(time.Millisecond))
	if !ks.Held(tick)[core.Player1].Fire {
		t.Error("a press stamped after the tick should count as held")
	}
}

func TestKeyStateIgnoresEdgeOnlyBindings(t *testing.T) {
	ks := NewKeyState(DefaultHoldWindow)
	now := time.Now()

	ks.Press(Binding{Action: core.ActionConfirm}, now)
	ks.Press(Binding{Player: core.PlayerID(5), Control: ControlLeft}, now)

	if held := ks.Held(now); held != [core.MaxPlayers]core.Controls{} {
		t.Errorf("expected nothing held, got %+v", held)
	}
}

func TestKeyStateRelease(t *testing.T) {
	ks := NewKeyState(DefaultHoldWindow)
	now := time.Now()

	ks.Press(Binding{Player: core.Player1, Control: ControlRight}, now)
	ks.Release()

	if ks.Held(now)[core.Player1].Right {
		t.Error("Release should drop held controls")
	}
}

func TestKeyStateWindowDefault(t *testing.T) {
	ks := NewKeyState(0)
	if ks.Window() != DefaultHoldWindow {
		t.Errorf("expected default window, got %v", ks.Window())
	}
	ks.SetWindow(40 * time.Millisecond)
	if ks.Window() != 40*time.Millisecond {
		t.Errorf("expected 40ms window, got %v", ks.Window())
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	ks := NewKeyState(DefaultHoldWindow)
	frame := core.NewInputFrame()
	now := time.Now()

	if km.MapKeyToFrame(runeKey("w"), &frame, ks, now) {
		t.Fatal("w is not a quit key")
	}
	if !frame.Has(core.ActionFire) {
		t.Error("w should set the fire edge")
	}
	if !ks.Held(now)[core.Player2].Fire {
		t.Error("w should hold player 2 fire")
	}

	if !km.MapKeyToFrame(runeKey("q"), &frame, ks, now) {
		t.Error("q should request quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is handled by the host, not placed in the frame")
	}
}
