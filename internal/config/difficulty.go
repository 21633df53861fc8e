package config

import (
	"math"
	"time"
)

// Scaling turns stage numbers, alive counts and upgrade levels into the
// numbers the simulation plays with.
type Scaling struct {
	cfg InvadersConfig
}

// NewScaling creates scaling formulas for a config.
func NewScaling(cfg InvadersConfig) *Scaling {
	return &Scaling{cfg: cfg}
}

// StageMultiplier is the speed/health multiplier applied to aliens at construction.
func (s *Scaling) StageMultiplier(stage int) float64 {
	if stage < 1 {
		stage = 1
	}
	return 1 + float64(stage-1)*s.cfg.Scaling.StageStep
}

// EnemyFireInterval returns the shared enemy cooldown for a stage and alive count.
// Fewer survivors shorten the interval until the density floor, the stage
// term shortens it further, and the result never drops below the minimum.
func (s *Scaling) EnemyFireInterval(stage, alive int) time.Duration {
	f := s.cfg.Firing
	stageFactor := 1 - float64(stage)*f.StageReduction
	density := f.DensityFloor
	if f.DensityDivisor > 0 {
		density = math.Max(f.DensityFloor, float64(alive)/f.DensityDivisor)
	}
	ms := math.Max(f.EnemyMinIntervalMs, f.EnemyBaseIntervalMs*stageFactor*density)
	return msToDuration(ms)
}

// KillSpeedup is the factor applied to surviving aliens' horizontal speed per kill.
func (s *Scaling) KillSpeedup(stage int) float64 {
	return s.cfg.Scoring.SpeedupBase + float64(stage)*s.cfg.Scoring.SpeedupPerStage
}

// PlayerFireInterval returns the base player cooldown for an attack upgrade level.
func (s *Scaling) PlayerFireInterval(attackLevel int) time.Duration {
	ms := s.cfg.Firing.PlayerIntervalMs * math.Pow(s.cfg.Firing.AttackFactor, float64(attackLevel))
	return msToDuration(ms)
}

// ShipSpeed returns ship speed in px/s for a speed upgrade level.
func (s *Scaling) ShipSpeed(speedLevel int) float64 {
	return s.cfg.Player.BaseSpeed * math.Pow(s.cfg.Player.SpeedGrowth, float64(speedLevel))
}

// MaxHealth returns the health pool size for a health upgrade level.
func (s *Scaling) MaxHealth(healthLevel int) int {
	return s.cfg.Player.BaseHealth + healthLevel
}

// UpgradeCost returns the price of the next level, or -1 when maxed out.
func (s *Scaling) UpgradeCost(kind string, currentLevel int) int {
	if currentLevel >= s.cfg.Upgrades.MaxLevel {
		return -1
	}
	base, ok := s.cfg.Upgrades.BaseCosts[kind]
	if !ok {
		base = 500
	}
	return base * (currentLevel + 1)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
