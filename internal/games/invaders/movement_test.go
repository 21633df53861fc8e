package invaders

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

func TestZigzagFlipsOnInterval(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Movement.Zigzag
	m := NewZigzagMovement(cfg)
	a := basicAlien(300, 100)

	for range 7 {
		m.Apply(a, 100*time.Millisecond)
	}
	if a.DY != cfg.Speed {
		t.Fatalf("DY = %v before the interval, want %v", a.DY, cfg.Speed)
	}

	m.Apply(a, 100*time.Millisecond)
	if a.DY != -cfg.Speed {
		t.Fatalf("DY = %v at the interval, want %v", a.DY, -cfg.Speed)
	}

	m.Reset()
	m.Apply(a, time.Millisecond)
	if a.DY != cfg.Speed {
		t.Errorf("DY = %v after reset, want %v", a.DY, cfg.Speed)
	}
}

func TestPursuitAnchorsOnFirstApply(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Movement.Wave
	m := NewWaveMovement(cfg)
	a := basicAlien(300, 140)

	if _, ok := m.Anchor(); ok {
		t.Fatal("anchor captured before first apply")
	}

	m.Apply(a, 16*time.Millisecond)
	anchor, ok := m.Anchor()
	if !ok || anchor != 140 {
		t.Fatalf("anchor = %v, %v; want 140, true", anchor, ok)
	}
	if a.DY <= 0 {
		t.Errorf("DY = %v, want positive while the target rises above the anchor", a.DY)
	}

	a.Y = 300
	m.Apply(a, 16*time.Millisecond)
	if anchor, _ := m.Anchor(); anchor != 140 {
		t.Errorf("anchor moved to %v after the first apply", anchor)
	}
	if a.DY >= 0 {
		t.Errorf("DY = %v, want negative when far below the target", a.DY)
	}
}

func TestPursuitResetByStageMultiplier(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Movement.Boss
	m := NewBossMovement(cfg)
	stats := AlienStats{Health: 5, Score: 100, Speed: 90}
	a := NewAlien(AlienBoss, 350, 100, stats, testGeometry(), m)

	m.Apply(a, 16*time.Millisecond)
	a.SetStageMultiplier(5)

	if _, ok := m.Anchor(); ok {
		t.Error("stage multiplier should reset the pursuit anchor")
	}
	if m.Name() != "boss" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestPursuitTargetClampedToMaxDepth(t *testing.T) {
	cfg := config.PursuitConfig{Frequency: 0.005, Amplitude: 100, MaxDepth: 120, Gain: 1}
	m := NewWaveMovement(cfg)
	a := basicAlien(300, 100)

	// sin peaks at t = pi/2 / 0.005 ~ 314ms
	m.Apply(a, 314*time.Millisecond)
	if a.DY > 20+1e-6 {
		t.Errorf("DY = %v, target should be clamped to max depth 120", a.DY)
	}
}

func TestTeleportStaysInBounds(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Movement.Teleport

	for seed := range int64(50) {
		m := NewTeleportMovement(cfg, seed)
		a := basicAlien(300, 60)

		m.Apply(a, 2499*time.Millisecond)
		if a.X != 300 || a.Y != 60 {
			t.Fatalf("seed %d: teleported before the interval", seed)
		}

		m.Apply(a, time.Millisecond)
		if a.X < cfg.MinX || a.X > cfg.MaxX {
			t.Errorf("seed %d: x = %v outside [%v, %v]", seed, a.X, cfg.MinX, cfg.MaxX)
		}
		if a.Y < cfg.MinY || a.Y > cfg.MaxY {
			t.Errorf("seed %d: y = %v outside [%v, %v]", seed, a.Y, cfg.MinY, cfg.MaxY)
		}
		if a.DY != 0 {
			t.Errorf("seed %d: DY = %v, teleport never drifts vertically", seed, a.DY)
		}
	}
}

func TestTeleportReversesSometimes(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Movement.Teleport
	reversed := 0

	for seed := range int64(100) {
		m := NewTeleportMovement(cfg, seed)
		a := basicAlien(300, 200)
		m.Apply(a, 2500*time.Millisecond)
		if a.DX > 0 {
			reversed++
		}
	}
	if reversed == 0 || reversed == 100 {
		t.Errorf("reversed %d of 100 teleports, want some but not all", reversed)
	}
}
