package invaders

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

func newTestState(store *memStore, players int) *StateManager {
	s := NewStateManager(config.DefaultInvadersConfig(), NewEntityManager(), players)
	s.profile = NewProfile(store, nil)
	return s
}

func TestPlayerDamageClamps(t *testing.T) {
	tests := []struct {
		name       string
		health     int
		damage     int
		wantHealth int
		wantDied   bool
	}{
		{"one point", 3, 1, 2, false},
		{"zero counts as one", 3, 0, 2, false},
		{"negative counts as one", 3, -4, 2, false},
		{"overkill clamps", 2, 10, 0, true},
		{"already dead", 0, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlayerState{Active: true, Health: tt.health, MaxHealth: 3}
			died := p.Damage(tt.damage)
			if p.Health != tt.wantHealth || died != tt.wantDied {
				t.Errorf("health = %d died = %v, want %d %v", p.Health, died, tt.wantHealth, tt.wantDied)
			}
		})
	}
}

func TestPlayerHealCapped(t *testing.T) {
	p := PlayerState{Active: true, Health: 3, MaxHealth: 3}
	p.Heal(1)
	if p.Health != 3 {
		t.Errorf("health = %d, want capped at 3", p.Health)
	}

	dead := PlayerState{Active: true, Health: 0, MaxHealth: 3}
	dead.Heal(1)
	if dead.Health != 0 {
		t.Error("dead player healed")
	}
}

func TestStageCursorClamped(t *testing.T) {
	store := newMemStore()
	store.maxCleared = 2
	s := newTestState(store, 1)
	s.flow = FlowStageSelect
	s.selected = 1

	for range 10 {
		s.MoveCursor(1)
	}
	if s.SelectedStage() != 3 {
		t.Errorf("cursor = %d, want 3 (max cleared + 1)", s.SelectedStage())
	}
	for range 10 {
		s.MoveCursor(-1)
	}
	if s.SelectedStage() != 1 {
		t.Errorf("cursor = %d, want 1", s.SelectedStage())
	}

	store.maxCleared = 9
	s.profile = NewProfile(store, nil)
	if got := s.ClampStage(42); got != 5 {
		t.Errorf("ClampStage(42) = %d, want final stage 5", got)
	}
}

func TestBeginStageAppliesUpgrades(t *testing.T) {
	store := newMemStore()
	store.levels[UpgradeHealth] = 2
	store.levels[UpgradeSpeed] = 1
	store.levels[UpgradeAttack] = 1
	s := newTestState(store, 2)

	s.BeginStage(1, "run")

	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		p := s.Player(id)
		if !p.Active || p.Health != 5 || p.MaxHealth != 5 {
			t.Errorf("player %d: %+v, want 5/5 active", id, p)
		}
		if math.Abs(p.Speed-336) > 1e-9 {
			t.Errorf("player %d speed = %v, want 336", id, p.Speed)
		}
		if p.FireInterval.Milliseconds() != 425 {
			t.Errorf("player %d interval = %v, want 425ms", id, p.FireInterval)
		}
	}
}

func TestSinglePlayerHasOnePool(t *testing.T) {
	s := newTestState(newMemStore(), 1)
	s.BeginStage(1, "run")

	if s.Player(core.Player2).Active {
		t.Error("second player active in a single-player game")
	}
	s.NotifyPlayerHit(core.Player2, 1)
	if s.Flow() != FlowPlaying {
		t.Error("hit on an inactive player changed the flow")
	}
}

func TestTwoPlayerDeathNeedsBothDown(t *testing.T) {
	store := newMemStore()
	s := newTestState(store, 2)
	s.BeginStage(2, "run")
	s.entities.Add(NewShip(core.Player1, 370, 550, 28, 16, 10, 750))
	s.entities.Add(NewShip(core.Player2, 450, 550, 28, 16, 10, 750))

	s.NotifyPlayerHit(core.Player1, lethalDamage)
	if s.Flow() != FlowPlaying {
		t.Fatalf("flow = %v after one player died, want playing", s.Flow())
	}
	if s.entities.Ship(core.Player1) != nil {
		t.Error("dead player's ship still live")
	}
	if s.entities.Ship(core.Player2) == nil {
		t.Error("surviving player's ship removed")
	}

	s.NotifyPlayerHit(core.Player2, 1)
	s.NotifyPlayerHit(core.Player2, 1)
	if s.Flow() != FlowPlaying {
		t.Fatal("run ended while player 2 had health left")
	}
	s.NotifyPlayerHit(core.Player2, 1)
	if s.Flow() != FlowTransitioning {
		t.Fatalf("flow = %v, want transitioning once both are down", s.Flow())
	}
	if store.maxCleared != 1 {
		t.Errorf("max cleared = %d, want 1 after dying on stage 2", store.maxCleared)
	}
}

func TestHitsIgnoredOutsidePlaying(t *testing.T) {
	s := newTestState(newMemStore(), 1)
	s.BeginStage(1, "run")
	s.Pause()

	s.NotifyPlayerHit(core.Player1, 1)
	if s.Player(core.Player1).Health != 3 {
		t.Error("paused player took damage")
	}
}

func TestInvincibleIgnoresHits(t *testing.T) {
	store := newMemStore()
	store.items = []string{ItemInvincibility}
	s := newTestState(store, 1)
	items := NewItemManager(s.cfg.Items, s.profile)
	s.buffs = items
	s.BeginStage(1, "run")
	items.Load()
	items.Use(2)

	s.NotifyPlayerHit(core.Player1, 1)
	if s.Player(core.Player1).Health != 3 {
		t.Error("invincible player took damage")
	}
}

func TestKillScoring(t *testing.T) {
	s := newTestState(newMemStore(), 1)
	s.BeginStage(3, "run")

	s.NotifyAlienKilled(10)
	if s.Score() != 30 {
		t.Errorf("score = %d, want 10 x stage 3", s.Score())
	}
	s.NotifyBossKilled()
	if s.Score() != 330 {
		t.Errorf("score = %d, want 30 + 100 x 3", s.Score())
	}
}

func TestKillSpeedsUpSurvivors(t *testing.T) {
	tests := []struct {
		name  string
		stage int
	}{
		{"stage 1", 1},
		{"stage 2", 2},
		{"stage 5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(newMemStore(), 1)
			s.BeginStage(tt.stage, "run")

			stats := AlienStats{Health: 1, Score: 10, Speed: 75}
			geom := AlienGeometry{W: 20, H: 20}
			a := NewAlien(AlienBasic, 100, 100, stats, geom, nil)
			b := NewAlien(AlienBasic, 200, 100, stats, geom, nil)
			s.entities.Add(a)
			s.entities.Add(b)

			before := b.Speed()
			s.NotifyAlienKilled(10)

			want := before * config.NewScaling(config.DefaultInvadersConfig()).KillSpeedup(tt.stage)
			if math.Abs(b.Speed()-want) > 1e-9 {
				t.Errorf("speed after kill = %v, want %v", b.Speed(), want)
			}
			if math.Abs(b.DX+want) > 1e-9 {
				t.Errorf("DX after kill = %v, want %v", b.DX, -want)
			}

			after := b.Speed()
			s.NotifyBossKilled()
			if b.Speed() != after {
				t.Errorf("boss kill changed speed from %v to %v", after, b.Speed())
			}
		})
	}
}

func TestNotificationsIgnoredWhileTransitioning(t *testing.T) {
	store := newMemStore()
	s := newTestState(store, 1)
	s.BeginStage(1, "run")
	s.NotifyAlienKilled(10)

	s.NotifyDeath()
	s.NotifyAlienKilled(10)
	s.NotifyWin()
	s.NotifyDeath()

	if s.FinalScore() != 10 {
		t.Errorf("final score = %d, want 10", s.FinalScore())
	}
	if len(store.runs) != 1 {
		t.Errorf("recorded %d runs, want 1", len(store.runs))
	}
	if store.maxCleared != 0 {
		t.Errorf("late win cleared a stage: %d", store.maxCleared)
	}
}

func TestDeathBanksScore(t *testing.T) {
	store := newMemStore()
	store.points = 40
	store.maxCleared = 1
	s := newTestState(store, 1)
	s.BeginStage(3, "run")
	s.score = 120
	s.players[0].Health = 1

	s.NotifyDeath()
	if !s.FinishTransition() {
		t.Fatal("no transition to finish")
	}

	if s.Flow() != FlowStageSelect {
		t.Errorf("flow = %v, want stage select", s.Flow())
	}
	if store.points != 160 || store.highest != 120 {
		t.Errorf("points = %d highest = %d, want 160 and 120", store.points, store.highest)
	}
	if store.maxCleared != 2 {
		t.Errorf("max cleared = %d, want 2", store.maxCleared)
	}
	if s.SelectedStage() != 3 || s.Score() != 0 {
		t.Errorf("selected = %d score = %d, want 3 and 0", s.SelectedStage(), s.Score())
	}
	if s.Player(core.Player1).Health != 3 {
		t.Error("health not reset after death")
	}
}

func TestWinMidGameCarriesScore(t *testing.T) {
	store := newMemStore()
	s := newTestState(store, 1)
	s.BeginStage(2, "run")
	s.score = 50

	s.NotifyWin()
	s.FinishTransition()

	if s.Flow() != FlowStageSelect || s.SelectedStage() != 3 {
		t.Errorf("flow = %v selected = %d", s.Flow(), s.SelectedStage())
	}
	if store.maxCleared != 2 || store.points != 200 {
		t.Errorf("max cleared = %d points = %d, want 2 and 200", store.maxCleared, store.points)
	}
	if s.Score() != 50 {
		t.Errorf("score = %d, want it carried over", s.Score())
	}
}

func TestFinalWinResets(t *testing.T) {
	store := newMemStore()
	store.maxCleared = 4
	s := newTestState(store, 1)
	s.BeginStage(5, "run")
	s.score = 900

	s.NotifyWin()
	s.FinishTransition()

	if s.Flow() != FlowWaitingForKeyPress {
		t.Errorf("flow = %v, want waiting", s.Flow())
	}
	if s.Stage() != 1 || s.Score() != 0 {
		t.Errorf("stage = %d score = %d, want 1 and 0", s.Stage(), s.Score())
	}
	if store.points != 900 || store.highest != 900 {
		t.Errorf("points = %d highest = %d", store.points, store.highest)
	}
}

func TestPauseConfirmExitBanksScore(t *testing.T) {
	store := newMemStore()
	s := newTestState(store, 1)
	s.BeginStage(1, "run")
	s.score = 70

	s.ConfirmExit()
	if s.ExitRequested() {
		t.Fatal("exit confirmed without pausing first")
	}

	s.Pause()
	s.ConfirmExit()
	if !s.ExitRequested() {
		t.Fatal("exit not requested")
	}
	if store.points != 70 {
		t.Errorf("points = %d, want 70", store.points)
	}
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	store := newMemStore()
	store.failAll = true
	s := newTestState(store, 1)
	s.BeginStage(2, "run")
	s.score = 10

	s.NotifyWin()
	s.FinishTransition()

	if s.Flow() != FlowStageSelect {
		t.Errorf("flow = %v, want stage select", s.Flow())
	}
	if s.MaxClearedStage() != 2 {
		t.Errorf("local max cleared = %d, want 2", s.MaxClearedStage())
	}
}
