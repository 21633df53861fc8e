package invaders

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

func newTestFactory(seed int64) *Factory {
	cfg := config.DefaultInvadersConfig()
	return NewFactory(cfg, config.NewScaling(cfg), seed)
}

func TestFactoryTypeFor(t *testing.T) {
	f := newTestFactory(1)

	tests := []struct {
		stage, row, col int
		want            AlienType
	}{
		{1, 0, 0, AlienBasic},
		{1, 3, 5, AlienBasic},
		{2, 0, 1, AlienFast},
		{2, 1, 0, AlienBasic},
		{3, 0, 0, AlienFast},
		{3, 1, 0, AlienHeavy},
		{3, 2, 0, AlienBasic},
		{4, 0, 0, AlienFast},
		{4, 0, 1, AlienSpecial},
		{4, 1, 1, AlienHeavy},
		{4, 2, 0, AlienBasic},
	}

	for _, tt := range tests {
		got := f.TypeFor(tt.stage, tt.row, tt.col)
		if got != tt.want {
			t.Errorf("TypeFor(%d, %d, %d) = %v, want %v", tt.stage, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestFactoryWeightedTypesLateStages(t *testing.T) {
	f := newTestFactory(7)
	seen := make(map[AlienType]int)
	for range 1000 {
		seen[f.TypeFor(5, 0, 0)]++
	}

	for _, typ := range []AlienType{AlienBasic, AlienFast, AlienHeavy, AlienSpecial} {
		if seen[typ] == 0 {
			t.Errorf("type %v never drawn", typ)
		}
	}
	if seen[AlienBoss] != 0 {
		t.Error("boss must never be drawn from the weighted table")
	}
	if seen[AlienFast] < seen[AlienBasic] {
		t.Errorf("fast (30%%) drawn less than basic (20%%): %v", seen)
	}
}

func TestFactoryFormations(t *testing.T) {
	f := newTestFactory(3)

	tests := []struct {
		stage  int
		aliens int
		boss   bool
	}{
		{1, 1, false},
		{2, 2, false},
		{3, 4, false},
		{4, 4, false},
		{5, 3, true},
		{9, 3, true},
	}

	for _, tt := range tests {
		aliens := f.CreateFormation(tt.stage)
		if len(aliens) != tt.aliens {
			t.Errorf("stage %d: %d aliens, want %d", tt.stage, len(aliens), tt.aliens)
			continue
		}
		hasBoss := aliens[len(aliens)-1].Type == AlienBoss
		if hasBoss != tt.boss {
			t.Errorf("stage %d: boss = %v, want %v", tt.stage, hasBoss, tt.boss)
		}
	}
}

func TestFactoryAppliesStageMultiplier(t *testing.T) {
	f := newTestFactory(1)

	a := f.CreateAlien(3, 1, 0, 100, 100)
	if a.Type != AlienHeavy {
		t.Fatalf("type = %v, want heavy", a.Type)
	}
	if a.StageMultiplier != 3 {
		t.Errorf("multiplier = %v, want 3", a.StageMultiplier)
	}
	if a.Health != 6 {
		t.Errorf("health = %d, want 6", a.Health)
	}
	if a.Speed() != 150 {
		t.Errorf("speed = %v, want 150", a.Speed())
	}
}

func TestFactoryStrategies(t *testing.T) {
	f := newTestFactory(1)

	tests := []struct {
		typ  AlienType
		want string
	}{
		{AlienBasic, "normal"},
		{AlienFast, "zigzag"},
		{AlienHeavy, "normal"},
		{AlienSpecial, "teleport"},
		{AlienBoss, "boss"},
	}

	for _, tt := range tests {
		a := f.build(tt.typ, 100, 100, 1)
		if got := a.Movement().Name(); got != tt.want {
			t.Errorf("%v movement = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestFactoryStrategiesAreNotShared(t *testing.T) {
	f := newTestFactory(1)
	a := f.build(AlienFast, 100, 100, 1)
	b := f.build(AlienFast, 200, 100, 1)

	if a.Movement() == b.Movement() {
		t.Error("two aliens share one movement strategy")
	}
}

func TestFactoryBossStepsDownLess(t *testing.T) {
	f := newTestFactory(1)
	boss := f.CreateBoss(350, 100, 5)
	var out Outbox
	boss.DoLogic(&out)

	if boss.Y != 105 {
		t.Errorf("boss y = %v after logic, want 105", boss.Y)
	}
}
