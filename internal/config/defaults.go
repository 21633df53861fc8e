package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the built-in configuration.
// It must stay in sync with defaults/invaders.yaml.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			DeathLine:  520,
			FinalStage: 5,
		},
		Player: PlayerConfig{
			Width:       28,
			Height:      16,
			StartX:      [2]float64{370, 450},
			StartY:      550,
			LeftBound:   10,
			RightBound:  750,
			BaseSpeed:   300,
			SpeedGrowth: 1.12,
			BaseHealth:  3,
		},
		Shots: ShotConfig{
			Width:        4,
			Height:       12,
			PlayerSpeed:  300,
			EnemySpeed:   250,
			PlayerTop:    -100,
			PlayerOffset: Offset{X: 10, Y: -30},
			EnemyOffset:  Offset{X: 10, Y: 20},
		},
		Aliens: AlienConfig{
			Width:        28,
			Height:       20,
			LeftBound:    10,
			RightBound:   750,
			StepDown:     10,
			BossStepDown: 5,
			Types: map[string]AlienTypeConfig{
				"basic":   {Health: 1, Score: 10, Speed: 75, Movement: "normal", FireWeight: 1.0, Shots: 1},
				"fast":    {Health: 1, Score: 20, Speed: 120, Movement: "zigzag", FireWeight: 0.7, Shots: 1},
				"heavy":   {Health: 2, Score: 30, Speed: 50, Movement: "normal", FireWeight: 1.5, Shots: 1},
				"special": {Health: 1, Score: 25, Speed: 60, Movement: "teleport", FireWeight: 1.2, Shots: 2, SpreadDeg: 15},
				"boss":    {Health: 5, Score: 100, Speed: 90, Movement: "boss", FireWeight: 2.5, Shots: 3, SpreadDeg: 30},
			},
		},
		Movement: MovementConfig{
			Zigzag: ZigzagConfig{IntervalMs: 800, Speed: 25},
			Wave:   PursuitConfig{Frequency: 0.005, Amplitude: 30, MaxDepth: 500, Gain: 1.5},
			Boss:   PursuitConfig{Frequency: 0.0075, Amplitude: 50, MaxDepth: 400, Gain: 1.2},
			Teleport: TeleportConfig{
				IntervalMs:    2500,
				MinX:          50,
				MaxX:          750,
				MinY:          50,
				MaxY:          500,
				JitterY:       30,
				ReverseChance: 0.3,
			},
		},
		Formations: []FormationConfig{
			{Stage: 1, Rows: 1, Cols: 1, StartX: 350, StartY: 100, SpacingX: 50, SpacingY: 30},
			{Stage: 2, Rows: 1, Cols: 2, StartX: 300, StartY: 100, SpacingX: 100, SpacingY: 30},
			{Stage: 3, Rows: 2, Cols: 2, StartX: 250, StartY: 80, SpacingX: 150, SpacingY: 40},
			{Stage: 4, Rows: 2, Cols: 2, StartX: 250, StartY: 80, SpacingX: 150, SpacingY: 40},
			{Stage: 5, Rows: 1, Cols: 2, StartX: 200, StartY: 120, SpacingX: 200, SpacingY: 35, Boss: &Offset{X: 350, Y: 100}},
		},
		Firing: FiringConfig{
			PlayerIntervalMs:    500,
			AttackFactor:        0.85,
			EnemyBaseIntervalMs: 1200,
			EnemyMinIntervalMs:  400,
			EnemyCheckMs:        1000,
			StageReduction:      0.1,
			DensityDivisor:      10,
			DensityFloor:        0.5,
		},
		Scoring: ScoringConfig{
			AlienKillPoints: 10,
			BossFactor:      10,
			StageBonus:      100,
			SpeedupBase:     1.02,
			SpeedupPerStage: 0.005,
		},
		Items: ItemsConfig{
			AmmoMs:             10000,
			DoubleScoreMs:      10000,
			InvincibilityMs:    5000,
			FireRateMultiplier: 0.6,
			ScoreMultiplier:    2.0,
			Prices: map[string]int{
				"plus_life":     1000,
				"double_score":  2000,
				"invincibility": 3000,
				"ammo":          5000,
			},
		},
		Upgrades: UpgradesConfig{
			MaxLevel: 5,
			BaseCosts: map[string]int{
				"attack": 300,
				"health": 400,
				"speed":  350,
			},
		},
		Input: InputConfig{
			HoldMs: 150,
		},
		Scaling: ScalingConfig{
			StageStep: 1.0,
		},
	}
}
