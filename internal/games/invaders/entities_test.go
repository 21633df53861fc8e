package invaders

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestCollisionsDispatchedOncePerPair(t *testing.T) {
	m := NewEntityManager()
	a := newRecorder(0, 0)
	b := newRecorder(5, 5)
	c := newRecorder(100, 100)
	m.Add(a)
	m.Add(b)
	m.Add(c)

	if pairs := m.CheckCollisions(); pairs != 1 {
		t.Fatalf("pairs = %d, want 1", pairs)
	}
	if a.hits[b.ID()] != 1 || b.hits[a.ID()] != 1 {
		t.Errorf("asymmetric dispatch: a saw %d, b saw %d", a.hits[b.ID()], b.hits[a.ID()])
	}
	if len(c.hits) != 0 {
		t.Errorf("distant recorder was hit: %v", c.hits)
	}
}

func TestAlienCountTracksSweep(t *testing.T) {
	m := NewEntityManager()
	a1 := basicAlien(100, 100)
	a2 := basicAlien(200, 100)
	ship := NewShip(core.Player1, 370, 550, 28, 16, 10, 750)
	m.Add(a1)
	m.Add(ship)
	m.Add(a2)

	if m.AlienCount() != 2 {
		t.Fatalf("AlienCount = %d, want 2", m.AlienCount())
	}

	m.RequestRemoval(a1)
	m.RequestRemoval(a1)
	if removed := m.RemoveDeadEntities(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if m.AlienCount() != 1 {
		t.Errorf("AlienCount = %d, want 1", m.AlienCount())
	}

	got := m.Entities()
	if len(got) != 2 || got[0] != Entity(ship) || got[1] != Entity(a2) {
		t.Errorf("sweep did not keep order: %v", got)
	}
	if m.IsPending(a1) {
		t.Error("pending set not cleared by sweep")
	}
}

func TestMoveEntitiesOnlyWhilePlaying(t *testing.T) {
	m := NewEntityManager()
	a := basicAlien(300, 100)
	m.Add(a)

	for _, flow := range []FlowState{FlowWaitingForKeyPress, FlowStageSelect, FlowPaused, FlowTransitioning} {
		m.MoveEntities(time.Second, flow)
	}
	if a.X != 300 {
		t.Fatalf("alien moved outside of Playing: x = %v", a.X)
	}

	m.MoveEntities(time.Second, FlowPlaying)
	if a.X != 225 {
		t.Errorf("x = %v after one second, want 225", a.X)
	}
}

func TestProcessEntityLogicRunsOnce(t *testing.T) {
	m := NewEntityManager()
	a := basicAlien(300, 100)
	m.Add(a)

	if events := m.ProcessEntityLogic(); events != nil || a.Y != 100 {
		t.Fatal("logic ran without being requested")
	}

	m.UpdateLogic()
	m.ProcessEntityLogic()
	m.ProcessEntityLogic()

	if a.Y != 110 {
		t.Errorf("y = %v, want a single step down to 110", a.Y)
	}
	if m.LogicRequired() {
		t.Error("logic flag not cleared")
	}
}

func TestSpeedUpAliensSkipsPending(t *testing.T) {
	m := NewEntityManager()
	a1 := basicAlien(100, 100)
	a2 := basicAlien(200, 100)
	m.Add(a1)
	m.Add(a2)
	m.RequestRemoval(a1)

	m.SpeedUpAliens(2)

	if a1.DX != -75 {
		t.Errorf("pending alien sped up: dx = %v", a1.DX)
	}
	if a2.DX != -150 {
		t.Errorf("dx = %v, want -150", a2.DX)
	}
}

func TestClearDropsEverything(t *testing.T) {
	m := NewEntityManager()
	m.Add(basicAlien(100, 100))
	m.Add(NewShip(core.Player1, 370, 550, 28, 16, 10, 750))
	m.UpdateLogic()

	m.Clear()

	if m.Len() != 0 || m.AlienCount() != 0 || m.LogicRequired() {
		t.Errorf("Clear left len=%d aliens=%d logic=%v", m.Len(), m.AlienCount(), m.LogicRequired())
	}
	if m.Ship(core.Player1) != nil {
		t.Error("ship survived Clear")
	}
}
