package registry

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct {
	id      string
	players int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Players() int                         { return g.players }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_two", func() Game { return &stubGame{id: "zz_stub_two", players: 2} })

	if !Exists("zz_stub_two") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub_two")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_two" {
		t.Errorf("expected id zz_stub_two, got %q", g.ID())
	}

	var found *GameInfo
	for _, info := range List() {
		if info.ID == "zz_stub_two" {
			found = &info
		}
	}
	if found == nil {
		t.Fatal("List() is missing the registered game")
	}
	if found.Players != 2 || found.Title != "Stub zz_stub_two" {
		t.Errorf("unexpected info %+v", *found)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no_such_game") {
		t.Error("unknown game should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })
}

func TestListSorted(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
